package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrDoneWhileTracking = errors.New("model: routine cannot be done and tracking")
	ErrUntimedTracking   = errors.New("model: untimed routine cannot track")
	ErrMultipleTracking  = errors.New("model: more than one routine is tracking")
	ErrDuplicateID       = errors.New("model: duplicate routine id")
)

type Routine struct {
	ID           string     `json:"id" yaml:"id"`
	Name         string     `json:"routineName" yaml:"routineName"`
	Duration     *Span      `json:"duration" yaml:"duration"`
	TimeLeft     *Span      `json:"timeLeft" yaml:"timeLeft"`
	IsTracking   bool       `json:"isTracking" yaml:"isTracking"`
	IsDone       bool       `json:"isDone" yaml:"isDone"`
	ShouldNotify bool       `json:"shouldNotify" yaml:"shouldNotify"`
	Reminder     *TimeOfDay `json:"reminder" yaml:"reminder"`
}

// Clone copies the optional fields so the result shares nothing with r.
func (r Routine) Clone() Routine {
	out := r
	out.Duration = r.Duration.Clone()
	out.TimeLeft = r.TimeLeft.Clone()
	out.Reminder = r.Reminder.Clone()
	return out
}

// Remaining is timeLeft when tracking has started, otherwise the full duration.
func (r Routine) Remaining() (Span, bool) {
	if r.TimeLeft != nil {
		return *r.TimeLeft, true
	}
	if r.Duration != nil {
		return *r.Duration, true
	}
	return 0, false
}

func (r Routine) Timed() bool { return r.Duration != nil }

func (r Routine) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return errors.New("model: routine id is required")
	}
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("model: routine name is required")
	}
	if r.TimeLeft != nil && r.Duration == nil {
		return errors.New("model: timeLeft requires a duration")
	}
	if r.IsDone && r.IsTracking {
		return ErrDoneWhileTracking
	}
	if r.IsDone && r.TimeLeft != nil {
		return errors.New("model: timeLeft must be nil when routine is done")
	}
	if r.IsTracking && r.Duration == nil {
		return ErrUntimedTracking
	}
	if r.Reminder != nil {
		if err := r.Reminder.Validate(); err != nil {
			return err
		}
	}
	return nil
}

type State struct {
	Routines  []Routine `json:"routines" yaml:"routines"`
	IsSorting bool      `json:"isSorting" yaml:"isSorting"`
}

func (s State) Clone() State {
	out := State{IsSorting: s.IsSorting}
	if s.Routines != nil {
		out.Routines = make([]Routine, len(s.Routines))
		for i, r := range s.Routines {
			out.Routines[i] = r.Clone()
		}
	}
	return out
}

func (s State) Validate() error {
	seen := make(map[string]bool, len(s.Routines))
	tracking := 0
	for i, r := range s.Routines {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("routine %d: %w", i, err)
		}
		if seen[r.ID] {
			return fmt.Errorf("%w: %q", ErrDuplicateID, r.ID)
		}
		seen[r.ID] = true
		if r.IsTracking {
			tracking++
		}
	}
	if tracking > 1 {
		return fmt.Errorf("%w: %d", ErrMultipleTracking, tracking)
	}
	return nil
}
