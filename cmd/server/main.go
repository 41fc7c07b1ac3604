package main

import (
	"log/slog"
	"net/http"

	"github.com/bookboxapp/bookbox/internal/app"
	"github.com/bookboxapp/bookbox/internal/config"
	"github.com/bookboxapp/bookbox/internal/logger"
	"github.com/bookboxapp/bookbox/internal/routes"
)

func main() {
	cfg := config.Load()

	logger.Init(cfg.IsDevelopment(), cfg.SentryDSN)
	defer logger.Flush()

	app, err := app.New(cfg)
	if err != nil {
		slog.Error("failed to initialize app", "error", err)
		panic(err)
	}
	defer func() {
		closeErr := app.Close()
		if closeErr != nil {
			slog.Error("failed to close app", "error", closeErr)
		}
	}()

	err = app.ContentService.LoadPages()
	if err != nil {
		slog.Warn("failed to load content pages", "error", err)
	}

	handler := routes.SetupRoutes(app)
	slog.Info("server starting", "port", cfg.Port, "env", cfg.AppEnv, "url", "http://localhost:"+cfg.Port)

	err = http.ListenAndServe(":"+cfg.Port, handler)
	if err != nil {
		slog.Error("server failed", "error", err)
		panic(err)
	}
}
