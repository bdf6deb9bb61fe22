// Package tracker drives the 100ms tick while a routine is tracking and keeps
// the tick loop from outliving the state it updates.
package tracker

import (
	"log/slog"
	"time"

	"github.com/sandeepkv93/routined/internal/logging"
	"github.com/sandeepkv93/routined/internal/model"
	"github.com/sandeepkv93/routined/internal/scheduler"
	"github.com/sandeepkv93/routined/internal/store"
)

// Ticker is the timer port the tracker schedules its tick on.
// *scheduler.Loop is the production implementation.
type Ticker interface {
	Start(period time.Duration, fn func() bool)
	Cancel()
	Active() bool
}

var _ Ticker = (*scheduler.Loop)(nil)

type Tracker struct {
	store  *store.Store
	loop   Ticker
	logger *slog.Logger

	// OnComplete runs on the tick goroutine for a routine that a tick
	// finished. It must not call back into the Tracker.
	OnComplete func(model.Routine)
}

func New(st *store.Store, loop Ticker, logger *slog.Logger) *Tracker {
	if logger == nil {
		logger = slog.Default()
	}
	if loop == nil {
		loop = scheduler.NewLoop(nil)
	}
	return &Tracker{store: st, loop: loop, logger: logger}
}

// Start makes id the tracked routine and (re)starts the tick loop.
func (t *Tracker) Start(id string) model.State {
	t.loop.Cancel()
	state := t.store.Dispatch(store.StartTracker{ID: id})
	r, ok := store.Tracking(state.Routines)
	if !ok || r.ID != id {
		t.logger.Warn("tracker not started", logging.RoutineID(id))
		return state
	}
	t.logger.Info("tracker started", logging.RoutineID(r.ID), logging.Routine(r.Name))
	t.loop.Start(store.TickStep, func() bool { return t.tick(r.ID) })
	return state
}

// Resume restarts the loop for a routine rehydration left tracking.
func (t *Tracker) Resume() bool {
	r, ok := store.Tracking(t.store.State().Routines)
	if !ok {
		return false
	}
	t.logger.Info("tracker resumed", logging.RoutineID(r.ID), logging.Routine(r.Name))
	t.loop.Start(store.TickStep, func() bool { return t.tick(r.ID) })
	return true
}

func (t *Tracker) Stop() model.State {
	t.loop.Cancel()
	return t.store.Dispatch(store.StopTracker{})
}

// Dispatch applies any other action and cancels the loop when nothing is
// left tracking afterwards.
func (t *Tracker) Dispatch(a store.Action) model.State {
	state := t.store.Dispatch(a)
	if _, ok := store.Tracking(state.Routines); !ok && t.loop.Active() {
		t.loop.Cancel()
		t.logger.Debug("tick loop cancelled", logging.Action(kindOf(a)))
	}
	return state
}

func (t *Tracker) Running() bool { return t.loop.Active() }

// Shutdown cancels the loop without touching state, so the tracking flag
// survives into the persisted snapshot.
func (t *Tracker) Shutdown() { t.loop.Cancel() }

func (t *Tracker) tick(id string) bool {
	state := t.store.Dispatch(store.Tick{})
	if cur, ok := store.Tracking(state.Routines); ok && cur.ID == id {
		return true
	}
	r, found := store.FindByID(state.Routines, id)
	if found && r.IsDone && r.ShouldNotify {
		t.logger.Info("routine completed", logging.RoutineID(r.ID), logging.Routine(r.Name))
		if t.OnComplete != nil {
			t.OnComplete(r)
		}
	}
	return false
}

func kindOf(a store.Action) string {
	if a == nil {
		return ""
	}
	return string(a.Kind())
}
