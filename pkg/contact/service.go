// Package contact sends the two notification emails behind the
// consultation form: the request relayed to the firm's inbox and the
// receipt confirmation returned to the submitter.
package contact

import (
	"context"
	"errors"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/meridianadvisors/contact-api/pkg/i18n"
	"github.com/meridianadvisors/contact-api/pkg/notification"
	"github.com/meridianadvisors/contact-api/pkg/validation"
)

// ConsultationRequest is a validated consultation-form submission.
type ConsultationRequest struct {
	Name    string `validate:"required"`
	Email   string `validate:"required,contact_email"`
	Company string
	Message string `validate:"required"`
}

// Service relays contact-form submissions as email.
type Service struct {
	mailer        *notification.Manager
	contactEmail  string
	maxMessageLen int
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithMaxMessageLength sets the upper bound on message length, in runes.
func WithMaxMessageLength(n int) ServiceOption {
	return func(s *Service) {
		s.maxMessageLen = n
	}
}

// NewService creates a contact service. contactEmail is the firm's
// inbox consultation requests are relayed to.
func NewService(mailer *notification.Manager, contactEmail string, opts ...ServiceOption) *Service {
	s := &Service{
		mailer:        mailer,
		contactEmail:  contactEmail,
		maxMessageLen: 1000,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SendConsultation validates the submission and relays it to the firm's
// inbox, with the submitter as Reply-To.
func (s *Service) SendConsultation(ctx context.Context, req ConsultationRequest, locale i18n.Locale) error {
	if err := validation.Struct(req); err != nil {
		return mapFieldError(err)
	}
	if utf8.RuneCountInString(req.Message) > s.maxMessageLen {
		return ErrMessageTooLong
	}

	dateLayout := "02.01.2006 15:04"
	if locale == i18n.LocaleEN {
		dateLayout = "Jan 2, 2006 15:04"
	}

	err := s.mailer.Send(ctx, notification.ConsultationNotice, locale, notification.Data{
		To:      s.contactEmail,
		ReplyTo: req.Email,
		Fields: map[string]string{
			"Name":    req.Name,
			"Email":   req.Email,
			"Company": req.Company,
			"Message": req.Message,
			"Date":    time.Now().Format(dateLayout),
		},
	})
	if err != nil {
		slog.Error("Failed to send consultation request", "email", req.Email, "err", err)
		return err
	}

	slog.Info("Consultation request relayed", "from", req.Email)
	return nil
}

// SendConfirmation sends the receipt confirmation to the submitter.
func (s *Service) SendConfirmation(ctx context.Context, email, name string, locale i18n.Locale) error {
	if email == "" || name == "" {
		return ErrMissingFields
	}
	if !validation.ValidEmail(email) {
		return ErrInvalidEmail
	}

	err := s.mailer.Send(ctx, notification.ConfirmationNotice, locale, notification.Data{
		To: email,
		Fields: map[string]string{
			"Name":         name,
			"ContactEmail": s.contactEmail,
		},
	})
	if err != nil {
		slog.Error("Failed to send confirmation email", "email", email, "err", err)
		return err
	}

	slog.Info("Confirmation email sent", "to", email)
	return nil
}

// mapFieldError converts validator output to the package's sentinel
// errors, first failing field wins.
func mapFieldError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	for _, fe := range fieldErrs {
		if fe.Tag() == validation.EmailTag {
			return ErrInvalidEmail
		}
		return ErrMissingFields
	}
	return err
}
