package notification

import (
	"embed"
	"log/slog"

	"github.com/meridianadvisors/contact-api/pkg/i18n"
)

//go:embed templates/email/*.html
var templateFiles embed.FS

func loadTemplate(filename string) string {
	content, err := templateFiles.ReadFile(filename)
	if err != nil {
		slog.Error("Error reading template file!", "err", err, "filename", filename)
		return ""
	}
	return string(content)
}

func registerBoth(m *Manager, notice NoticeType, subjectID, basename string) error {
	for _, locale := range []i18n.Locale{i18n.LocalePL, i18n.LocaleEN} {
		err := m.Register(notice, locale, NoticeTemplate{
			SubjectID: subjectID,
			HTML:      loadTemplate("templates/email/" + basename + "." + string(locale) + ".html"),
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// WithVerificationTemplate registers the verification email in both locales.
func WithVerificationTemplate() ManagerOption {
	return func(m *Manager) error {
		return registerBoth(m, VerificationNotice, "verification_email_subject", "verification")
	}
}

// WithConsultationTemplate registers the consultation-request email in both locales.
func WithConsultationTemplate() ManagerOption {
	return func(m *Manager) error {
		return registerBoth(m, ConsultationNotice, "consultation_email_subject", "consultation")
	}
}

// WithConfirmationTemplate registers the receipt-confirmation email in both locales.
func WithConfirmationTemplate() ManagerOption {
	return func(m *Manager) error {
		return registerBoth(m, ConfirmationNotice, "confirmation_email_subject", "confirmation")
	}
}

// WithDefaultTemplates registers every notice template the site sends.
func WithDefaultTemplates() ManagerOption {
	return func(m *Manager) error {
		for _, opt := range []ManagerOption{
			WithVerificationTemplate(),
			WithConsultationTemplate(),
			WithConfirmationTemplate(),
		} {
			if err := opt(m); err != nil {
				return err
			}
		}
		return nil
	}
}
