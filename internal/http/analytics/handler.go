package analytics

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rangehq/rangefin/internal/analytics"
)

type Handler struct {
	svc *analytics.Service
}

func NewHandler(svc *analytics.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/summary", h.summary)
	r.Get("/by-category", h.byCategory)
	r.Get("/timeline", h.timeline)
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	s, err := h.svc.Summary(r.Context())
	if err != nil {
		slog.Error("failed to compute summary", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	writeJSON(w, s)
}

func (h *Handler) byCategory(w http.ResponseWriter, r *http.Request) {
	breakdown, err := h.svc.ByCategory(r.Context())
	if err != nil {
		slog.Error("failed to compute category breakdown", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	if breakdown == nil {
		breakdown = []analytics.CategorySpending{}
	}

	writeJSON(w, breakdown)
}

func (h *Handler) timeline(w http.ResponseWriter, r *http.Request) {
	timeline, err := h.svc.Timeline(r.Context())
	if err != nil {
		slog.Error("failed to compute timeline", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	if timeline == nil {
		timeline = []analytics.TimelinePoint{}
	}

	writeJSON(w, timeline)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
