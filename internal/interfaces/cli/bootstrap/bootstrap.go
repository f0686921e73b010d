// Package bootstrap assembles a trial gate Service from the application
// configuration, shared by the CLI commands.
package bootstrap

import (
	"fmt"

	"guestgate/internal/application/gate"
	"guestgate/internal/infrastructure/backend"
	"guestgate/internal/infrastructure/config"
	"guestgate/internal/infrastructure/network"
	"guestgate/internal/infrastructure/storage"
	"guestgate/internal/shared/clock"
	"guestgate/internal/shared/logger"
)

// Setup loads configuration, initializes logging, and wires a Service.
func Setup() (*gate.Service, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.NewLogger()

	var store storage.KeyValueStore
	store, err = storage.NewSQLiteStore(cfg.Storage.Path)
	if err != nil {
		// Durable storage is a nice-to-have: degrade to in-memory state for
		// this session rather than refusing to start.
		log.Warnw("failed to open local store, state will not survive restart",
			"path", cfg.Storage.Path,
			"error", err,
		)
		store = storage.NewMemoryStore()
	}

	var observer network.Observer
	if cfg.Network.ProbeURL != "" {
		observer = network.NewProbeObserver(cfg.Network.ProbeURL, cfg.Network.ProbeInterval(), log)
	} else {
		observer = network.NewStaticObserver(true)
	}

	api := backend.NewClient(cfg.Backend.BaseURL, backend.WithTimeout(cfg.Backend.Timeout()))

	service := gate.NewService(gate.Deps{
		API:        api,
		Store:      store,
		Observer:   observer,
		Clock:      clock.System(),
		Logger:     log,
		MaxRetries: cfg.Retry.MaxRetries,
		BaseDelay:  cfg.Retry.BaseDelay(),
	})

	return service, cfg, nil
}
