// Package emailverification implements the one-time email-proof flow
// behind the contact form.
//
// A verification request stores an opaque, unguessable token bound to
// the submitted address with a fixed expiry, then emails a redemption
// link. Redemption is single-use and destructive: consuming a token
// deletes it, and an expired token is deleted by the attempt that finds
// it expired. Tokens live only in process memory.
//
// # Flow
//
//	repo := emailverification.NewInMemoryTokenRepository()
//	service := emailverification.NewService(repo, mailer, baseURL, publicBaseURL,
//		emailverification.WithTokenExpiry(15*time.Minute),
//	)
//
//	// Step 1: issue a token and send the verification email
//	err := service.IssueVerification(ctx, "a@b.com", i18n.LocalePL)
//
//	// Step 2: the emailed link hits /verify?token=..., which redeems it
//	email, err := service.Redeem(ctx, token)
//
// A given email may have multiple outstanding tokens; older ones remain
// valid until their own expiry. If the notification email fails to send
// the token stays stored, so at-most-once redemption holds regardless.
package emailverification
