package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"listkeep/internal/config"
	"listkeep/internal/items"
	"listkeep/internal/listview"
	"listkeep/internal/logging"
	"listkeep/internal/storage"
)

// session is everything one command invocation needs: config, logger, storage
// and the controller built on top of them.
type session struct {
	cfg      config.Config
	log      *slog.Logger
	closeLog func() error
	adapter  *storage.Adapter
	store    *items.Store
	ctrl     *listview.Controller
}

func loadConfig(app *App) (config.Config, error) {
	path := app.ConfigPath
	if path == "" {
		path = config.Path()
	}
	cfg, err := config.LoadFrom(path)
	if err != nil {
		return cfg, err
	}
	if v := strings.TrimSpace(app.Dir); v != "" {
		cfg.Storage.Dir = v
	}
	if v := strings.TrimSpace(app.Backend); v != "" {
		cfg.Storage.Backend = strings.ToLower(v)
	}
	if v := strings.TrimSpace(app.Key); v != "" {
		cfg.Storage.Key = v
	}
	return cfg, cfg.Validate()
}

func openSession(ctx context.Context, app *App) (*session, error) {
	cfg, err := loadConfig(app)
	if err != nil {
		return nil, err
	}

	log, closeLog, err := logging.New(logging.Options{Path: cfg.Log.Path, Level: cfg.Log.Level}.FromEnv())
	if err != nil {
		return nil, err
	}

	kv, err := storage.Open(ctx, cfg.Storage.Backend, cfg.Storage.Dir)
	if err != nil {
		_ = closeLog()
		return nil, fmt.Errorf("open storage: %w", err)
	}
	adapter := storage.NewAdapter(kv, cfg.Storage.Key, log)
	st := items.Open(ctx, adapter)

	opts := cfg.ControllerOptions()
	opts.Log = log
	return &session{
		cfg:      cfg,
		log:      log,
		closeLog: closeLog,
		adapter:  adapter,
		store:    st,
		ctrl:     listview.New(st, opts),
	}, nil
}

func (s *session) Close() error {
	return errors.Join(s.adapter.Close(), s.closeLog())
}

// findExact resolves a label typed on the command line to an item.
func (s *session) findExact(label string) (string, error) {
	it, ok := s.store.FindLabel(label)
	if !ok {
		return "", fmt.Errorf("%q: %w", label, listview.ErrUnknownItem)
	}
	return it.ID, nil
}
