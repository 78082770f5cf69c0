// Package proxy implements the thin upload forwarder that sits in front of
// the API for the dashboard: the multipart body is relayed unchanged and the
// backend's status and body pass straight back to the caller.
package proxy

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	backendURL string
	client     *http.Client
}

func NewHandler(backendURL string) *Handler {
	return &Handler{
		backendURL: backendURL,
		client:     &http.Client{},
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/api/transactions/upload", h.forward)
}

func (h *Handler) forward(w http.ResponseWriter, r *http.Request) {
	req, err := http.NewRequestWithContext(
		r.Context(),
		http.MethodPost,
		h.backendURL+"/api/transactions/upload",
		r.Body,
	)
	if err != nil {
		h.fail(w, err)
		return
	}

	// The multipart boundary lives in the Content-Type header; it must
	// travel with the body.
	req.Header.Set("Content-Type", r.Header.Get("Content-Type"))
	req.ContentLength = r.ContentLength

	resp, err := h.client.Do(req)
	if err != nil {
		h.fail(w, err)
		return
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); ct != "" {
		w.Header().Set("Content-Type", ct)
	}

	w.WriteHeader(resp.StatusCode)

	if _, err := io.Copy(w, resp.Body); err != nil {
		slog.Error("failed to relay response body", "error", err)
	}
}

// fail substitutes the generic failure payload when the forward itself
// breaks; backend error responses are relayed verbatim instead.
func (h *Handler) fail(w http.ResponseWriter, err error) {
	slog.Error("upload forward failed", "error", err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)

	if _, err := w.Write([]byte(`{"success":false,"message":"Internal server error"}`)); err != nil {
		slog.Error("failed to write failure response", "error", err)
	}
}
