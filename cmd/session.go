package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/inovacc/clientdb/internal/config"
	"github.com/inovacc/clientdb/internal/kv"
	"github.com/inovacc/clientdb/internal/logging"
	"github.com/inovacc/clientdb/internal/store"
	"github.com/spf13/cobra"
)

// session holds what a single command invocation opened.
type session struct {
	cfg     config.Config
	logger  *slog.Logger
	backend kv.Backend
	store   *store.SlotStore
	closers []io.Closer
}

var current *session

func setupSession(cmd *cobra.Command, _ []string) error {
	closeSession()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	overrides.Apply(&cfg, cmd.Flags())

	s := &session{cfg: cfg}

	// the TUI owns the terminal, so it only logs to a file
	if !cmd.HasParent() && cfg.Log.File == "" {
		s.logger = logging.Discard()
	} else {
		logger, closer, err := logging.Open(cfg.Log.File, cfg.Log.Level, cfg.Log.Format)
		if err != nil {
			return err
		}

		s.logger = logger
		s.closers = append(s.closers, closer)
	}

	current = s

	return nil
}

// openStore opens the configured backend on first use.
func openStore(ctx context.Context) (*store.SlotStore, error) {
	if current == nil {
		return nil, fmt.Errorf("session not initialized")
	}

	if current.store != nil {
		return current.store, nil
	}

	opts := current.cfg.BackendOptions()

	backend, err := kv.Open(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("opening %s backend: %w", opts.Driver, err)
	}

	current.logger.Debug("backend opened", "driver", opts.Driver, "path", opts.Path, "key", current.cfg.Storage.Key)

	current.backend = backend
	current.closers = append(current.closers, backend)
	current.store = store.New(backend,
		store.WithKey(current.cfg.Storage.Key),
		store.WithLogger(current.logger),
	)

	return current.store, nil
}

func closeSession() {
	if current == nil {
		return
	}

	// backend first, log file last
	for i := len(current.closers) - 1; i >= 0; i-- {
		_ = current.closers[i].Close()
	}

	current = nil
}
