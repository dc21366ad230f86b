package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/rpggio/personalos/internal/app"
	"github.com/rpggio/personalos/internal/config"
	"github.com/rpggio/personalos/internal/logging"
	"github.com/rpggio/personalos/internal/sqlite"
)

type runtime struct {
	cfg    config.Config
	logger *slog.Logger
	db     *sqlite.DB
	app    *app.App
	closer io.Closer
}

// loadConfig reads the process configuration and applies command-line overrides.
func loadConfig(deps commandDeps) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, &ExitError{Code: ExitCodeUsage, Err: fmt.Errorf("config: %w", err)}
	}
	if deps.globals.DBPath != "" {
		cfg.DB.Path = deps.globals.DBPath
	}
	if deps.globals.LogLevel != "" {
		cfg.Log.Level = deps.globals.LogLevel
	}
	return cfg, nil
}

// openRuntime builds the logger, opens the store and wires the services.
// Logs go to deps.errOut so stdout carries only command output.
func openRuntime(ctx context.Context, deps commandDeps, cfg config.Config) (*runtime, error) {
	logger, closer, err := logging.New(cfg.Log, deps.errOut)
	if err != nil {
		return nil, fmt.Errorf("log file: %w", err)
	}

	db, err := sqlite.Open(ctx, cfg.DB.Path, logger)
	if err != nil {
		closer.Close()
		return nil, classify(err)
	}

	return &runtime{
		cfg:    cfg,
		logger: logger,
		db:     db,
		app:    app.New(db, logger),
		closer: closer,
	}, nil
}

func (r *runtime) Close() error {
	return errors.Join(r.db.Close(), r.closer.Close())
}

// withRuntime loads configuration, opens the runtime, runs fn and releases it.
func withRuntime(ctx context.Context, deps commandDeps, fn func(ctx context.Context, rt *runtime) error) error {
	cfg, err := loadConfig(deps)
	if err != nil {
		return err
	}
	rt, err := openRuntime(ctx, deps, cfg)
	if err != nil {
		return err
	}
	defer rt.Close()
	return classify(fn(ctx, rt))
}
