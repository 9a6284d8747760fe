package notification

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/meridianadvisors/contact-api/pkg/i18n"
)

// NoticeType identifies one of the outbound email kinds.
type NoticeType string

const (
	VerificationNotice NoticeType = "verification"
	ConsultationNotice NoticeType = "consultation"
	ConfirmationNotice NoticeType = "confirmation"
)

var (
	mailSentTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "contact_mail_sent_total",
		Help: "Outbound emails successfully handed to the transport.",
	}, []string{"notice"})

	mailFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "contact_mail_failed_total",
		Help: "Outbound emails the transport failed to accept.",
	}, []string{"notice"})
)

// NoticeTemplate pairs a localized subject with an HTML body template.
type NoticeTemplate struct {
	// SubjectID is the i18n message ID for the subject line. It may
	// reference the same template data as the body.
	SubjectID string
	// HTML is the html/template source for the body.
	HTML string
}

type parsedTemplate struct {
	subjectID string
	body      *template.Template
}

// Data carries the per-send parameters for a notice.
type Data struct {
	To      string
	ReplyTo string
	// Fields referenced by the subject and body templates.
	Fields map[string]string
}

// Manager renders registered notice templates and hands the result to
// the configured transport.
type Manager struct {
	sender   Sender
	registry map[NoticeType]map[i18n.Locale]parsedTemplate
}

// ManagerOption configures a Manager at construction time.
type ManagerOption func(*Manager) error

// NewManager creates a template manager bound to the given transport.
func NewManager(sender Sender, opts ...ManagerOption) (*Manager, error) {
	m := &Manager{
		sender:   sender,
		registry: make(map[NoticeType]map[i18n.Locale]parsedTemplate),
	}
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Register adds a notice template for a locale. The HTML source is
// parsed once here, not per send.
func (m *Manager) Register(notice NoticeType, locale i18n.Locale, tmpl NoticeTemplate) error {
	if notice == "" || tmpl.SubjectID == "" || tmpl.HTML == "" {
		return fmt.Errorf("notice type, subject ID and HTML cannot be empty")
	}

	body, err := template.New(string(notice) + "." + string(locale)).Parse(tmpl.HTML)
	if err != nil {
		return fmt.Errorf("parsing %s template for %s: %w", notice, locale, err)
	}

	if _, ok := m.registry[notice]; !ok {
		m.registry[notice] = make(map[i18n.Locale]parsedTemplate)
	}
	m.registry[notice][locale] = parsedTemplate{subjectID: tmpl.SubjectID, body: body}
	return nil
}

// Send renders the notice in the requested locale and dispatches it.
// A locale without a registered template falls back to the default
// locale; beyond that the send fails.
func (m *Manager) Send(ctx context.Context, notice NoticeType, locale i18n.Locale, data Data) error {
	if data.To == "" {
		return fmt.Errorf("notice %s requires a recipient", notice)
	}

	locales, ok := m.registry[notice]
	if !ok {
		return fmt.Errorf("no templates registered for notice type %s", notice)
	}
	tmpl, ok := locales[locale]
	if !ok {
		tmpl, ok = locales[i18n.DefaultLocale]
		if !ok {
			return fmt.Errorf("no template registered for notice %s in locale %s", notice, locale)
		}
	}

	subjectData := make(map[string]any, len(data.Fields))
	for k, v := range data.Fields {
		subjectData[k] = v
	}
	subject := i18n.TData(locale, tmpl.subjectID, subjectData)

	var buf bytes.Buffer
	if err := tmpl.body.Execute(&buf, data.Fields); err != nil {
		return fmt.Errorf("rendering %s body: %w", notice, err)
	}

	err := m.sender.Send(ctx, Message{
		To:      data.To,
		ReplyTo: data.ReplyTo,
		Subject: subject,
		HTML:    buf.String(),
	})
	if err != nil {
		mailFailedTotal.WithLabelValues(string(notice)).Inc()
		return err
	}

	mailSentTotal.WithLabelValues(string(notice)).Inc()
	return nil
}
