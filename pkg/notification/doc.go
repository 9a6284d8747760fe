// Package notification is the outbound mail layer for the contact site.
//
// It provides:
//   - A Sender interface with two implementations: SMTPSender for a real
//     SMTP service and PreviewSender for local development, where messages
//     are spooled to disk and a preview link is logged instead of delivered.
//   - A startup-time factory (NewSender) that selects the transport from
//     the configured credential shape exactly once.
//   - A Manager holding the registered notice templates (verification,
//     consultation request, receipt confirmation) in both supported
//     locales, rendering them and handing the result to the transport.
//
// # Basic Usage
//
//	sender, err := notification.NewSender(smtpConfig)
//	if err != nil {
//		return err
//	}
//	mailer, err := notification.NewManager(sender, notification.WithDefaultTemplates())
//	if err != nil {
//		return err
//	}
//
//	err = mailer.Send(ctx, notification.ConfirmationNotice, i18n.LocaleEN, notification.Data{
//		To:     "jo@x.com",
//		Fields: map[string]string{"Name": "Jo", "ContactEmail": "contact@example.com"},
//	})
//
// Sends are synchronous and bounded by the caller's context plus the
// transport's own 30s timeout; there is no retry queue. A transient
// transport failure is a terminal failure for that request.
package notification
