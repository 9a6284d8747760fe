package api

// ConsultationBody is the body of POST /api/email/consultation.
type ConsultationBody struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Company  string `json:"company"`
	Message  string `json:"message"`
	Language string `json:"language"`

	// Anti-spam shadow fields set by the front-end form.
	Hp          string `json:"hp"`
	FormStartMs int64  `json:"formStartMs"`
}

// ConfirmationBody is the body of POST /api/email/confirmation.
type ConfirmationBody struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Language string `json:"language"`
}

// MessageResponse is the envelope every JSON endpoint answers with.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
