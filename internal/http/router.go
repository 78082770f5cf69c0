package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"

	"github.com/rangehq/rangefin/internal/http/analytics"
	"github.com/rangehq/rangefin/internal/http/transaction"
	"github.com/rangehq/rangefin/internal/http/upload"
)

// Options tunes the router's middleware.
type Options struct {
	AllowedOrigins []string
	// UploadLimiter throttles the upload endpoint. Nil disables throttling.
	UploadLimiter *rate.Limiter
}

func New(
	transactionsV1 *transaction.Handler,
	uploadV1 *upload.Handler,
	analyticsV1 *analytics.Handler,
	opts Options,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
	}))

	router.Get("/", root)
	router.Get("/health", health)

	router.Route("/api", func(r chi.Router) {
		r.Route("/transactions", func(r chi.Router) {
			r.Route("/upload", func(r chi.Router) {
				r.Use(RateLimit(opts.UploadLimiter))
				uploadV1.Routes(r)
			})

			transactionsV1.Routes(r)
		})

		r.Route("/analytics", analyticsV1.Routes)
	})

	return router
}

func root(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, map[string]string{
		"message": "Rangefin API",
		"version": "0.1.0",
		"status":  "healthy",
	})
}

func health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, map[string]string{"status": "healthy"})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
