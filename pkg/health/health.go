// Package health exposes a liveness endpoint for load balancers and
// uptime monitors.
package health

import (
	"net/http"
	"time"

	"github.com/go-chi/render"
)

type StatusResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

type Handler struct {
	now func() time.Time
}

func NewHandler() *Handler {
	return &Handler{now: time.Now}
}

// Check reports the service as alive. It performs no dependency probes;
// mail transport failures surface on the mail endpoints themselves.
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, StatusResponse{
		Status:    "OK",
		Timestamp: h.now().UTC().Format(time.RFC3339),
	})
}
