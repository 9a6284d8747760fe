package api

// VerificationRequest is the body of POST /api/email/verification.
type VerificationRequest struct {
	Email    string `json:"email"`
	Language string `json:"language"`

	// Anti-spam shadow fields set by the front-end form.
	Hp          string `json:"hp"`
	FormStartMs int64  `json:"formStartMs"`
}

// MessageResponse is the envelope every JSON endpoint answers with.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// RedeemResponse is the success body of GET /api/email/verify/{token}.
type RedeemResponse struct {
	Success bool   `json:"success"`
	Email   string `json:"email"`
}
