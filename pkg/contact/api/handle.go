package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/meridianadvisors/contact-api/pkg/antispam"
	"github.com/meridianadvisors/contact-api/pkg/contact"
	"github.com/meridianadvisors/contact-api/pkg/i18n"
)

// Handler serves the consultation and confirmation endpoints.
type Handler struct {
	service *contact.Service
}

// NewHandler creates a new contact API handler.
func NewHandler(service *contact.Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router mounted under /api/email.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/consultation", h.Consultation)
	r.Post("/confirmation", h.Confirmation)
	return r
}

// Consultation handles POST /api/email/consultation.
func (h *Handler) Consultation(w http.ResponseWriter, r *http.Request) {
	var body ConsultationBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, MessageResponse{Message: i18n.T(i18n.DefaultLocale, "missing_fields")})
		return
	}
	locale := i18n.ParseLocale(body.Language)

	if antispam.SpamLike(antispam.Signals{Honeypot: body.Hp, FormStartMs: body.FormStartMs}, time.Now()) {
		render.Status(r, http.StatusTooManyRequests)
		render.JSON(w, r, MessageResponse{Message: i18n.T(locale, "spam_suspected")})
		return
	}

	req := contact.ConsultationRequest{
		Name:    body.Name,
		Email:   body.Email,
		Company: body.Company,
		Message: body.Message,
	}
	if err := h.service.SendConsultation(r.Context(), req, locale); err != nil {
		h.renderError(w, r, locale, err)
		return
	}

	render.JSON(w, r, MessageResponse{Success: true, Message: i18n.T(locale, "consultation_sent")})
}

// Confirmation handles POST /api/email/confirmation.
func (h *Handler) Confirmation(w http.ResponseWriter, r *http.Request) {
	var body ConfirmationBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, MessageResponse{Message: i18n.T(i18n.DefaultLocale, "missing_fields")})
		return
	}
	locale := i18n.ParseLocale(body.Language)

	if err := h.service.SendConfirmation(r.Context(), body.Email, body.Name, locale); err != nil {
		h.renderError(w, r, locale, err)
		return
	}

	render.JSON(w, r, MessageResponse{Success: true, Message: i18n.T(locale, "confirmation_sent")})
}

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, locale i18n.Locale, err error) {
	status := http.StatusBadRequest
	var messageID string

	switch {
	case errors.Is(err, contact.ErrMissingFields):
		messageID = "missing_fields"
	case errors.Is(err, contact.ErrInvalidEmail):
		messageID = "invalid_email"
	case errors.Is(err, contact.ErrMessageTooLong):
		messageID = "message_too_long"
	default:
		slog.Error("Contact send failed", "err", err)
		status = http.StatusInternalServerError
		messageID = "server_error"
	}

	render.Status(r, status)
	render.JSON(w, r, MessageResponse{Message: i18n.T(locale, messageID)})
}
