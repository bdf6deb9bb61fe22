package model

import (
	"errors"
	"testing"
)

func spanPtr(s Span) *Span { return &s }

func TestRoutineValidateSuccess(t *testing.T) {
	r := Routine{
		ID:         "r-1",
		Name:       "Stretch",
		Duration:   spanPtr(SpanOf(0, 10, 0, 0)),
		TimeLeft:   spanPtr(SpanOf(0, 5, 0, 0)),
		IsTracking: true,
		Reminder:   &TimeOfDay{Hour: 7, Minute: 30},
	}
	if err := r.Validate(); err != nil {
		t.Fatalf("expected valid routine, got %v", err)
	}
}

func TestRoutineValidateInvariants(t *testing.T) {
	base := Routine{ID: "r-1", Name: "Read", Duration: spanPtr(SpanOf(0, 20, 0, 0))}

	done := base
	done.IsDone = true
	done.IsTracking = true
	if err := done.Validate(); !errors.Is(err, ErrDoneWhileTracking) {
		t.Fatalf("expected ErrDoneWhileTracking, got %v", err)
	}

	untimed := base
	untimed.Duration = nil
	untimed.IsTracking = true
	if err := untimed.Validate(); !errors.Is(err, ErrUntimedTracking) {
		t.Fatalf("expected ErrUntimedTracking, got %v", err)
	}

	nameless := base
	nameless.Name = "  "
	if err := nameless.Validate(); err == nil || err.Error() != "model: routine name is required" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestStateValidateSingleTracker(t *testing.T) {
	d := spanPtr(SpanOf(0, 1, 0, 0))
	s := State{Routines: []Routine{
		{ID: "a", Name: "A", Duration: d, IsTracking: true},
		{ID: "b", Name: "B", Duration: d, IsTracking: true},
	}}
	if err := s.Validate(); !errors.Is(err, ErrMultipleTracking) {
		t.Fatalf("expected ErrMultipleTracking, got %v", err)
	}

	s.Routines[1].ID = "a"
	s.Routines[1].IsTracking = false
	if err := s.Validate(); !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
}

func TestStateCloneIsDeep(t *testing.T) {
	s := State{Routines: []Routine{{ID: "a", Name: "A", Duration: spanPtr(SpanOf(0, 1, 0, 0))}}}
	c := s.Clone()
	*c.Routines[0].Duration = SpanOf(2, 0, 0, 0)
	c.Routines[0].Name = "changed"
	if s.Routines[0].Duration.String() != "00:01:00.000" || s.Routines[0].Name != "A" {
		t.Fatalf("clone shares memory with source: %+v", s.Routines[0])
	}
}

func TestRoutineRemaining(t *testing.T) {
	r := Routine{ID: "a", Name: "A"}
	if _, ok := r.Remaining(); ok {
		t.Fatal("untimed routine should have no remaining span")
	}
	r.Duration = spanPtr(SpanOf(0, 2, 0, 0))
	if left, _ := r.Remaining(); left.String() != "00:02:00.000" {
		t.Fatalf("unexpected remaining: %s", left)
	}
	r.TimeLeft = spanPtr(SpanOf(0, 1, 0, 0))
	if left, _ := r.Remaining(); left.String() != "00:01:00.000" {
		t.Fatalf("unexpected remaining: %s", left)
	}
}
