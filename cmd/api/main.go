package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/time/rate"

	"github.com/rangehq/rangefin/internal/analytics"
	"github.com/rangehq/rangefin/internal/config"
	"github.com/rangehq/rangefin/internal/database"
	rangeHttp "github.com/rangehq/rangefin/internal/http"
	analyticsHandler "github.com/rangehq/rangefin/internal/http/analytics"
	txHandler "github.com/rangehq/rangefin/internal/http/transaction"
	uploadHandler "github.com/rangehq/rangefin/internal/http/upload"
	"github.com/rangehq/rangefin/internal/importer"
	"github.com/rangehq/rangefin/internal/transaction"
	txStore "github.com/rangehq/rangefin/internal/transaction/store"
)

func main() {
	// Missing .env is fine; everything has defaults.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.RunMigrations(cfg.ConnectionString()); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	var (
		transactionService = transaction.NewService(txStore.New(db))
		analyticsService   = analytics.NewService(transactionService)
		importService      = importer.NewService()
	)

	var (
		transactionH = txHandler.NewHandler(transactionService)
		uploadH      = uploadHandler.NewHandler(importService, transactionService, cfg.Upload.MaxBytes)
		analyticsH   = analyticsHandler.NewHandler(analyticsService)
	)

	router := rangeHttp.New(transactionH, uploadH, analyticsH, rangeHttp.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		UploadLimiter:  rate.NewLimiter(rate.Every(100*time.Millisecond), 30),
	})

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "app", cfg.App.Name, "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
