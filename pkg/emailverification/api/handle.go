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
	"github.com/meridianadvisors/contact-api/pkg/emailverification"
	"github.com/meridianadvisors/contact-api/pkg/i18n"
)

// Handler serves the email-verification endpoints.
type Handler struct {
	service *emailverification.Service
}

// NewHandler creates a new verification API handler.
func NewHandler(service *emailverification.Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router mounted under /api/email.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/verification", h.RequestVerification)
	r.Get("/verify/{token}", h.Redeem)
	return r
}

// RequestVerification handles POST /api/email/verification.
func (h *Handler) RequestVerification(w http.ResponseWriter, r *http.Request) {
	var req VerificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, MessageResponse{Message: i18n.T(i18n.DefaultLocale, "invalid_email")})
		return
	}
	locale := i18n.ParseLocale(req.Language)

	if antispam.SpamLike(antispam.Signals{Honeypot: req.Hp, FormStartMs: req.FormStartMs}, time.Now()) {
		render.Status(r, http.StatusTooManyRequests)
		render.JSON(w, r, MessageResponse{Message: i18n.T(locale, "spam_suspected")})
		return
	}

	err := h.service.IssueVerification(r.Context(), req.Email, locale)
	if err != nil {
		status := http.StatusInternalServerError
		messageID := "server_error"

		if errors.Is(err, emailverification.ErrInvalidEmail) {
			status = http.StatusBadRequest
			messageID = "invalid_email"
		} else {
			slog.Error("Failed to issue verification", "err", err)
		}

		render.Status(r, status)
		render.JSON(w, r, MessageResponse{Message: i18n.T(locale, messageID)})
		return
	}

	render.JSON(w, r, MessageResponse{Success: true, Message: i18n.T(locale, "verification_sent")})
}

// Redeem handles GET /api/email/verify/{token}, returning the verified
// email as JSON.
func (h *Handler) Redeem(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	email, err := h.service.Redeem(r.Context(), token)
	if err != nil {
		status := http.StatusBadRequest
		messageID := "invalid_token"

		switch {
		case errors.Is(err, emailverification.ErrTokenNotFound):
		case errors.Is(err, emailverification.ErrTokenExpired):
			messageID = "token_expired"
		default:
			slog.Error("Failed to redeem token", "err", err)
			status = http.StatusInternalServerError
			messageID = "server_error"
		}

		render.Status(r, status)
		render.JSON(w, r, MessageResponse{Message: i18n.T(i18n.DefaultLocale, messageID)})
		return
	}

	render.JSON(w, r, RedeemResponse{Success: true, Email: email})
}

// RedeemRedirect handles GET /verify?token=..., the browser-facing path
// reached from the emailed link. Success responds with a redirect to
// the front end carrying the verified email; failures render plain text
// since there is no page to show JSON on.
func (h *Handler) RedeemRedirect(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")

	email, err := h.service.Redeem(r.Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, emailverification.ErrTokenExpired):
			http.Error(w, "Link expired", http.StatusBadRequest)
		case errors.Is(err, emailverification.ErrTokenNotFound):
			http.Error(w, "Invalid or expired link", http.StatusBadRequest)
		default:
			slog.Error("Failed to redeem token via redirect", "err", err)
			http.Error(w, "Error", http.StatusInternalServerError)
		}
		return
	}

	http.Redirect(w, r, h.service.RedirectURL(email), http.StatusFound)
}
