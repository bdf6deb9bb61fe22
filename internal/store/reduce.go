package store

import (
	"time"

	"github.com/sandeepkv93/routined/internal/model"
)

// TickStep is how much one Tick takes off the tracked routine.
const TickStep = 100 * time.Millisecond

// Reduce returns the state that results from applying a to s. It never
// mutates s; ids that match nothing and a nil action leave the state as is.
func Reduce(s model.State, a Action) model.State {
	next := s.Clone()
	switch act := a.(type) {
	case Add:
		if act.Routine.ID == "" {
			return next
		}
		if _, exists := FindByID(next.Routines, act.Routine.ID); exists {
			return next
		}
		next.Routines = append([]model.Routine{act.Routine.Clone()}, next.Routines...)
	case Edit:
		next.Routines = update(next.Routines, act.ID, func(r model.Routine) model.Routine {
			return applyPatch(r, act.Patch)
		})
	case Delete:
		out := make([]model.Routine, 0, len(next.Routines))
		for _, r := range next.Routines {
			if r.ID != act.ID {
				out = append(out, r)
			}
		}
		next.Routines = out
	case StartTracker:
		target, ok := FindByID(next.Routines, act.ID)
		if !ok || !target.Timed() {
			return next
		}
		for i, r := range next.Routines {
			if r.ID == act.ID {
				r.IsTracking = true
				r.IsDone = false
				r.ShouldNotify = false
				if r.TimeLeft == nil {
					r.TimeLeft = r.Duration.Clone()
				}
			} else if r.IsTracking {
				r.IsTracking = false
			}
			next.Routines[i] = r
		}
	case Tick:
		for i, r := range next.Routines {
			if !r.IsTracking {
				continue
			}
			next.Routines[i] = tick(r)
			break
		}
	case StopTracker:
		for i, r := range next.Routines {
			if r.IsTracking {
				r.IsTracking = false
				next.Routines[i] = r
			}
		}
	case ResetTracker:
		next.Routines = update(next.Routines, act.ID, reset)
	case MarkDone:
		next.Routines = update(next.Routines, act.ID, func(r model.Routine) model.Routine {
			r.TimeLeft = nil
			r.IsTracking = false
			r.IsDone = true
			return r
		})
	case ResetAll:
		for i, r := range next.Routines {
			next.Routines[i] = reset(r)
		}
	case ClearNotifications:
		for i := range next.Routines {
			next.Routines[i].ShouldNotify = false
		}
	case Acknowledge:
		next.Routines = update(next.Routines, act.ID, func(r model.Routine) model.Routine {
			r.ShouldNotify = false
			return r
		})
	case SetRoutines:
		next.Routines = model.State{Routines: act.Routines}.Clone().Routines
		if next.Routines == nil {
			next.Routines = []model.Routine{}
		}
	case Move:
		next.Routines = move(next.Routines, act.From, act.To)
	case ToggleSorting:
		next.IsSorting = !next.IsSorting
	}
	return next
}

func update(routines []model.Routine, id string, fn func(model.Routine) model.Routine) []model.Routine {
	for i, r := range routines {
		if r.ID == id {
			routines[i] = fn(r)
			break
		}
	}
	return routines
}

func applyPatch(r model.Routine, p Patch) model.Routine {
	if p.Name != nil {
		r.Name = *p.Name
	}
	if p.Reminder != nil {
		r.Reminder = p.Reminder.Clone()
	} else if p.ClearReminder {
		r.Reminder = nil
	}

	var duration *model.Span
	switch {
	case p.Duration != nil:
		duration = p.Duration.Clone()
	case p.ClearDuration:
		duration = nil
	default:
		return r
	}
	if model.EqualSpans(r.Duration, duration) {
		return r
	}
	r.Duration = duration
	r.TimeLeft = nil
	r.IsTracking = false
	return r
}

func tick(r model.Routine) model.Routine {
	left, ok := r.Remaining()
	if !ok {
		r.IsTracking = false
		return r
	}
	remaining := left.Sub(TickStep)
	if remaining.Exhausted() {
		return complete(r)
	}
	r.TimeLeft = &remaining
	return r
}

func complete(r model.Routine) model.Routine {
	r.TimeLeft = nil
	r.IsTracking = false
	r.IsDone = true
	r.ShouldNotify = true
	return r
}

// Complete marks r as finished by its timer, the same way a final Tick does.
func Complete(r model.Routine) model.Routine { return complete(r) }

func reset(r model.Routine) model.Routine {
	r.TimeLeft = nil
	r.IsTracking = false
	r.IsDone = false
	r.ShouldNotify = false
	return r
}

func move(routines []model.Routine, from, to int) []model.Routine {
	n := len(routines)
	if from < 0 || from >= n || to < 0 || to >= n || from == to {
		return routines
	}
	item := routines[from]
	out := make([]model.Routine, 0, n)
	out = append(out, routines[:from]...)
	out = append(out, routines[from+1:]...)
	out = append(out[:to], append([]model.Routine{item}, out[to:]...)...)
	return out
}
