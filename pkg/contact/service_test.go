package contact

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridianadvisors/contact-api/pkg/i18n"
	"github.com/meridianadvisors/contact-api/pkg/notification"
)

const firmInbox = "contact@meridianadvisors.eu"

func newTestService(t *testing.T, mock *notification.MockSender, opts ...ServiceOption) *Service {
	t.Helper()
	require.NoError(t, i18n.Init())
	mailer, err := notification.NewManager(mock,
		notification.WithConsultationTemplate(),
		notification.WithConfirmationTemplate())
	require.NoError(t, err)
	return NewService(mailer, firmInbox, opts...)
}

func validRequest() ConsultationRequest {
	return ConsultationRequest{
		Name:    "Jan Kowalski",
		Email:   "jan@example.com",
		Company: "Kowalski Sp. z o.o.",
		Message: "Chciałbym umówić konsultację.",
	}
}

func TestSendConsultation(t *testing.T) {
	mock := &notification.MockSender{}
	s := newTestService(t, mock)

	require.NoError(t, s.SendConsultation(context.Background(), validRequest(), i18n.LocalePL))

	msg, ok := mock.Last()
	require.True(t, ok)
	assert.Equal(t, firmInbox, msg.To)
	assert.Equal(t, "jan@example.com", msg.ReplyTo)
	assert.Equal(t, "Nowe zapytanie o konsultację - Jan Kowalski", msg.Subject)
	assert.Contains(t, msg.HTML, "Kowalski Sp. z o.o.")
	assert.Contains(t, msg.HTML, "Chciałbym umówić konsultację.")
}

func TestSendConsultation_MissingFields(t *testing.T) {
	mock := &notification.MockSender{}
	s := newTestService(t, mock)

	tests := []struct {
		name    string
		mutate  func(*ConsultationRequest)
		wantErr error
	}{
		{"empty name", func(r *ConsultationRequest) { r.Name = "" }, ErrMissingFields},
		{"empty email", func(r *ConsultationRequest) { r.Email = "" }, ErrMissingFields},
		{"empty message", func(r *ConsultationRequest) { r.Message = "" }, ErrMissingFields},
		{"malformed email", func(r *ConsultationRequest) { r.Email = "jan@@example" }, ErrInvalidEmail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)
			err := s.SendConsultation(context.Background(), req, i18n.LocalePL)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v, want %v", err, tt.wantErr)
		})
	}
	assert.Empty(t, mock.Sent)
}

func TestSendConsultation_CompanyOptional(t *testing.T) {
	mock := &notification.MockSender{}
	s := newTestService(t, mock)

	req := validRequest()
	req.Company = ""
	require.NoError(t, s.SendConsultation(context.Background(), req, i18n.LocaleEN))

	msg, _ := mock.Last()
	assert.Contains(t, msg.HTML, "Not provided")
}

func TestSendConsultation_MessageLengthBoundary(t *testing.T) {
	mock := &notification.MockSender{}
	s := newTestService(t, mock)

	req := validRequest()
	req.Message = strings.Repeat("a", 1000)
	assert.NoError(t, s.SendConsultation(context.Background(), req, i18n.LocalePL))

	req.Message = strings.Repeat("a", 1001)
	err := s.SendConsultation(context.Background(), req, i18n.LocalePL)
	assert.True(t, errors.Is(err, ErrMessageTooLong))
}

func TestSendConsultation_LengthCountsRunes(t *testing.T) {
	mock := &notification.MockSender{}
	s := newTestService(t, mock)

	// 1000 multi-byte characters are still 1000 characters.
	req := validRequest()
	req.Message = strings.Repeat("ż", 1000)
	assert.NoError(t, s.SendConsultation(context.Background(), req, i18n.LocalePL))

	req.Message = strings.Repeat("ż", 1001)
	err := s.SendConsultation(context.Background(), req, i18n.LocalePL)
	assert.True(t, errors.Is(err, ErrMessageTooLong))
}

func TestSendConfirmation(t *testing.T) {
	mock := &notification.MockSender{}
	s := newTestService(t, mock)

	require.NoError(t, s.SendConfirmation(context.Background(), "jan@example.com", "Jan", i18n.LocaleEN))

	msg, ok := mock.Last()
	require.True(t, ok)
	assert.Equal(t, "jan@example.com", msg.To)
	assert.Equal(t, "Request Confirmation - MERIDIAN ADVISORS", msg.Subject)
	assert.Contains(t, msg.HTML, "Jan")
	assert.Contains(t, msg.HTML, firmInbox)
}

func TestSendConfirmation_Invalid(t *testing.T) {
	mock := &notification.MockSender{}
	s := newTestService(t, mock)
	ctx := context.Background()

	assert.True(t, errors.Is(s.SendConfirmation(ctx, "", "Jan", i18n.LocalePL), ErrMissingFields))
	assert.True(t, errors.Is(s.SendConfirmation(ctx, "jan@example.com", "", i18n.LocalePL), ErrMissingFields))
	assert.True(t, errors.Is(s.SendConfirmation(ctx, "broken@", "Jan", i18n.LocalePL), ErrInvalidEmail))
	assert.Empty(t, mock.Sent)
}

func TestSendConsultation_TransportError(t *testing.T) {
	mock := &notification.MockSender{Err: errors.New("smtp unreachable")}
	s := newTestService(t, mock)

	err := s.SendConsultation(context.Background(), validRequest(), i18n.LocalePL)
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrMissingFields))
	assert.False(t, errors.Is(err, ErrInvalidEmail))
}
