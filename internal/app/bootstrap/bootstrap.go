package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	pollengine "livepoll/contexts/engagement/poll-engine"
	postgresadapter "livepoll/contexts/engagement/poll-engine/adapters/postgres"
	"livepoll/internal/platform/config"
	"livepoll/internal/platform/db"
	"livepoll/internal/platform/httpserver"
	"livepoll/internal/platform/realtime"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	secret := strings.TrimSpace(cfg.TokenSecret)
	if secret == "" {
		return nil, errors.New("TOKEN_SECRET is required")
	}

	hub := realtime.NewHub(cfg.AllowedOrigins, logger)

	var (
		module pollengine.Module
		pg     *db.Postgres
	)
	if strings.TrimSpace(cfg.PostgresDSN) != "" {
		pg, err = db.Connect(cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		repo := postgresadapter.NewRepository(pg.DB, logger)
		if err := repo.Migrate(); err != nil {
			_ = pg.Close()
			return nil, err
		}
		module = pollengine.NewModule(pollengine.Dependencies{
			Polls:       repo,
			Publisher:   hub,
			Clock:       postgresadapter.SystemClock{},
			IDGen:       postgresadapter.UUIDGenerator{},
			TokenSecret: []byte(secret),
			Logger:      logger,
		})
	} else {
		// DSN-less runs keep everything in process; useful for local
		// development, never for multi-instance deployments.
		logger.Warn("POSTGRES_DSN not set, using in-memory poll store",
			"event", "bootstrap_memory_store",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
		module = pollengine.NewInMemoryModule(nil, hub, []byte(secret), logger)
	}

	server := httpserver.New(module, hub, logger, normalizeAddr(cfg.HTTPPort), cfg.AllowedOrigins, cfg.Production())
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
