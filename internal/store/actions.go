// Package store holds the routine state machine: a closed set of actions,
// a pure reducer over model.State, selectors, and a serialized container.
package store

import (
	"github.com/google/uuid"
	"github.com/sandeepkv93/routined/internal/model"
)

type Kind string

const (
	KindAdd                Kind = "add"
	KindEdit               Kind = "edit"
	KindDelete             Kind = "delete"
	KindStartTracker       Kind = "start_tracker"
	KindTick               Kind = "tick"
	KindStopTracker        Kind = "stop_tracker"
	KindResetTracker       Kind = "reset_tracker"
	KindMarkDone           Kind = "mark_done"
	KindResetAll           Kind = "reset_all"
	KindClearNotifications Kind = "clear_notifications"
	KindAcknowledge        Kind = "acknowledge"
	KindSetRoutines        Kind = "set_routines"
	KindMove               Kind = "move"
	KindToggleSorting      Kind = "toggle_sorting"
)

// Action is implemented only by the types in this file.
type Action interface {
	Kind() Kind
	sealed()
}

type Add struct {
	Routine model.Routine
}

// NewAdd assigns a fresh id and clears tracking fields on the draft.
func NewAdd(draft model.Routine) Add {
	draft.ID = uuid.NewString()
	draft.TimeLeft = nil
	draft.IsTracking = false
	draft.IsDone = false
	draft.ShouldNotify = false
	return Add{Routine: draft}
}

// Patch fields left nil are preserved by Edit.
type Patch struct {
	Name          *string
	Duration      *model.Span
	ClearDuration bool
	Reminder      *model.TimeOfDay
	ClearReminder bool
}

type Edit struct {
	ID    string
	Patch Patch
}

type Delete struct{ ID string }

type StartTracker struct{ ID string }

type Tick struct{}

type StopTracker struct{}

type ResetTracker struct{ ID string }

type MarkDone struct{ ID string }

type ResetAll struct{}

type ClearNotifications struct{}

type Acknowledge struct{ ID string }

type SetRoutines struct{ Routines []model.Routine }

type Move struct{ From, To int }

type ToggleSorting struct{}

func (Add) Kind() Kind                { return KindAdd }
func (Edit) Kind() Kind               { return KindEdit }
func (Delete) Kind() Kind             { return KindDelete }
func (StartTracker) Kind() Kind       { return KindStartTracker }
func (Tick) Kind() Kind               { return KindTick }
func (StopTracker) Kind() Kind        { return KindStopTracker }
func (ResetTracker) Kind() Kind       { return KindResetTracker }
func (MarkDone) Kind() Kind           { return KindMarkDone }
func (ResetAll) Kind() Kind           { return KindResetAll }
func (ClearNotifications) Kind() Kind { return KindClearNotifications }
func (Acknowledge) Kind() Kind        { return KindAcknowledge }
func (SetRoutines) Kind() Kind        { return KindSetRoutines }
func (Move) Kind() Kind               { return KindMove }
func (ToggleSorting) Kind() Kind      { return KindToggleSorting }

func (Add) sealed()                {}
func (Edit) sealed()               {}
func (Delete) sealed()             {}
func (StartTracker) sealed()       {}
func (Tick) sealed()               {}
func (StopTracker) sealed()        {}
func (ResetTracker) sealed()       {}
func (MarkDone) sealed()           {}
func (ResetAll) sealed()           {}
func (ClearNotifications) sealed() {}
func (Acknowledge) sealed()        {}
func (SetRoutines) sealed()        {}
func (Move) sealed()               {}
func (ToggleSorting) sealed()      {}
