package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/rangehq/rangefin/internal/config"
	"github.com/rangehq/rangefin/internal/http/proxy"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	proxy.NewHandler(cfg.Backend.URL).Routes(router)

	port := fmt.Sprintf(":%d", cfg.Proxy.Port)
	slog.Info("starting upload proxy", "port", port, "backend", cfg.Backend.URL)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("proxy failed", "error", err)
		os.Exit(1)
	}
}
