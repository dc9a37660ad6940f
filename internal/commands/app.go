package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/cleared-dev/ledgerview/internal/config"
	"github.com/cleared-dev/ledgerview/internal/engine"
	"github.com/cleared-dev/ledgerview/internal/export"
	"github.com/cleared-dev/ledgerview/internal/logging"
	"github.com/cleared-dev/ledgerview/internal/snapshot"
	"github.com/cleared-dev/ledgerview/internal/store"
	"github.com/cleared-dev/ledgerview/internal/trading"
)

// app is the wiring shared by one command invocation.
type app struct {
	dir       string
	cfg       *config.Config
	format    export.Format
	logger    *zap.Logger
	publisher *trading.Publisher
	closeFn   func() error
}

func (o *rootOptions) open(ctx context.Context) (*app, error) {
	dir, err := filepath.Abs(o.dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	format, err := export.ParseFormat(o.format)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Resolve(dir, o.configPath)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}

	scalars, closeStore, err := store.Open(ctx, store.Backend(cfg.Store.Backend), cfg.Store.RedisAddr, cfg.Store.KeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	return &app{
		dir:       dir,
		cfg:       cfg,
		format:    format,
		logger:    logger,
		publisher: trading.NewPublisher(scalars, logger),
		closeFn:   closeStore,
	}, nil
}

func (a *app) Close() error {
	_ = a.logger.Sync()
	return a.closeFn()
}

// load reads the snapshot from the configured data directory.
func (a *app) load(ctx context.Context) (*engine.Engine, error) {
	dataDir := a.cfg.DataPath(a.dir)
	if _, err := os.Stat(dataDir); err != nil {
		return nil, fmt.Errorf("data directory: %w", err)
	}

	snap, err := snapshot.NewLoader(os.DirFS(dataDir), a.logger).Load(ctx)
	if err != nil {
		return nil, err
	}
	if failed := snap.FailedFiles(); len(failed) > 0 {
		a.logger.Warn("reporting over a partial snapshot", zap.Strings("failed", failed))
	}

	e := engine.New(engine.Options{
		Tenant:      a.cfg.Tenant(),
		FiscalStart: a.cfg.FiscalStart(),
		Segmenter:   a.cfg.Segmenter(),
	}, a.publisher, a.logger)
	e.Update(snap)
	return e, nil
}

func (a *app) write(w io.Writer, tables ...export.Table) error {
	return export.Write(w, a.format, tables...)
}

// withEngine opens the app, loads the snapshot and runs fn.
func (o *rootOptions) withEngine(ctx context.Context, fn func(*app, *engine.Engine) error) error {
	a, err := o.open(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	e, err := a.load(ctx)
	if err != nil {
		return err
	}
	return fn(a, e)
}
