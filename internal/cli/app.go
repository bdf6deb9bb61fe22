package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jonboulle/clockwork"
	"github.com/sandeepkv93/routined/internal/config"
	"github.com/sandeepkv93/routined/internal/logging"
	"github.com/sandeepkv93/routined/internal/scheduler"
	"github.com/sandeepkv93/routined/internal/session"
	"github.com/sandeepkv93/routined/internal/storage"
	"github.com/sandeepkv93/routined/internal/store"
	"github.com/sandeepkv93/routined/internal/tracker"
)

// App wires storage, the store and the tracker for one process run.
type App struct {
	Config  config.Runtime
	Logger  *slog.Logger
	Clock   clockwork.Clock
	Repo    storage.Repository
	Store   *store.Store
	Tracker *tracker.Tracker

	closeLog func() error
}

// OpenApp restores the persisted session, rehydrated to the current time.
func OpenApp(ctx context.Context, cfg config.Runtime, clock clockwork.Clock) (*App, error) {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	logger, closeLog, err := logging.OpenFile(cfg.LogFile, logging.ParseLevel(cfg.LogLevel))
	if err != nil {
		return nil, err
	}
	repo, err := storage.Open(cfg.StorageDriver, cfg.StoragePath())
	if err != nil {
		_ = closeLog()
		return nil, err
	}
	logger.Info("storage opened", logging.Driver(cfg.StorageDriver), logging.Path(cfg.StoragePath()))

	state, err := session.Restore(ctx, repo, clock.Now(), logger)
	if err != nil {
		_ = repo.Close()
		_ = closeLog()
		return nil, err
	}
	st := store.New(state, logger)
	return &App{
		Config:   cfg,
		Logger:   logger,
		Clock:    clock,
		Repo:     repo,
		Store:    st,
		Tracker:  tracker.New(st, scheduler.NewLoop(clock), logger),
		closeLog: closeLog,
	}, nil
}

// Save stops the tick loop, leaving tracking flags intact, and persists the
// state with the current time as the close timestamp.
func (a *App) Save(ctx context.Context) error {
	a.Tracker.Shutdown()
	if err := session.Save(ctx, a.Repo, a.Store.State(), a.Clock.Now()); err != nil {
		a.Logger.Error("save failed", logging.Err(err))
		return err
	}
	a.Logger.Info("session saved", logging.Count(len(a.Store.State().Routines)))
	return nil
}

func (a *App) Close() error {
	a.Tracker.Shutdown()
	var errs []error
	if err := a.Repo.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close storage: %w", err))
	}
	if a.closeLog != nil {
		if err := a.closeLog(); err != nil {
			errs = append(errs, fmt.Errorf("close log: %w", err))
		}
	}
	return errors.Join(errs...)
}
