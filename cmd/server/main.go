package main

import (
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/derrick868/notes-app/internal/config"
	"github.com/derrick868/notes-app/internal/database"
	"github.com/derrick868/notes-app/internal/handlers"
	"github.com/derrick868/notes-app/internal/notes"
	"github.com/derrick868/notes-app/internal/session"
	"github.com/derrick868/notes-app/internal/uploads"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	cfg := config.Load()
	if cfg.InsecureSecret() {
		logger.Warn("SECRET_KEY is the insecure built-in default; set it before deploying")
	}

	db, err := database.InitDB(cfg.DatabasePath)
	if err != nil {
		logger.Error("failed to initialize database", "path", cfg.DatabasePath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	sessions := session.NewStore(cfg.SecretKey, session.DefaultTTL)
	noteService := notes.NewService(db, uploads.NewStore(cfg.UploadDir))

	app, err := handlers.NewApp(cfg, logger, db, sessions, noteService)
	if err != nil {
		logger.Error("failed to build application", "error", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           app.Routes(),
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	logger.Info("server starting", "port", cfg.Port, "database", cfg.DatabasePath, "uploads", cfg.UploadDir)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
