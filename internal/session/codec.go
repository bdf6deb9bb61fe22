// Package session saves the application state at shutdown and restores it at
// startup, fast-forwarding any running tracker by the time the app was closed.
package session

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sandeepkv93/routined/internal/model"
)

const (
	KeyState        = "routined.state"
	KeyLastClosedAt = "routined.lastClosedAt"
)

// TimestampLayout is ISO-8601 with nanoseconds.
const TimestampLayout = time.RFC3339Nano

var ErrMalformedState = errors.New("session: malformed persisted state")

type document struct {
	Routines  *[]model.Routine `json:"routines"`
	IsSorting bool             `json:"isSorting"`
}

func Encode(s model.State) (string, error) {
	routines := s.Routines
	if routines == nil {
		routines = []model.Routine{}
	}
	raw, err := json.Marshal(document{Routines: &routines, IsSorting: s.IsSorting})
	if err != nil {
		return "", fmt.Errorf("encode state: %w", err)
	}
	return string(raw), nil
}

// Decode parses a persisted state and checks its invariants. Any failure is
// reported as ErrMalformedState.
func Decode(raw string) (model.State, error) {
	if strings.TrimSpace(raw) == "" {
		return model.State{}, fmt.Errorf("%w: empty payload", ErrMalformedState)
	}
	var doc document
	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	if err := dec.Decode(&doc); err != nil {
		return model.State{}, fmt.Errorf("%w: %v", ErrMalformedState, err)
	}
	if dec.More() {
		return model.State{}, fmt.Errorf("%w: trailing data", ErrMalformedState)
	}
	if doc.Routines == nil {
		return model.State{}, fmt.Errorf("%w: missing routines", ErrMalformedState)
	}
	s := model.State{Routines: *doc.Routines, IsSorting: doc.IsSorting}
	if err := s.Validate(); err != nil {
		return model.State{}, fmt.Errorf("%w: %v", ErrMalformedState, err)
	}
	return s, nil
}

func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

func ParseTimestamp(raw string) (time.Time, error) {
	t, err := time.Parse(TimestampLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: last close timestamp: %v", ErrMalformedState, err)
	}
	return t, nil
}
