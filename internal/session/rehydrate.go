package session

import (
	"time"

	"github.com/sandeepkv93/routined/internal/model"
	"github.com/sandeepkv93/routined/internal/store"
)

// Rehydrate projects every tracking routine forward by the time between
// lastClosedAt and now. A routine whose remaining time runs out is completed
// and flagged for notification; the rest keep tracking with less time left.
// A lastClosedAt after now counts as no elapsed time.
func Rehydrate(s model.State, lastClosedAt, now time.Time) model.State {
	out := s.Clone()
	elapsed := now.Sub(lastClosedAt)
	if elapsed < 0 {
		elapsed = 0
	}
	for i, r := range out.Routines {
		if !r.IsTracking {
			continue
		}
		wasLeft, ok := r.Remaining()
		if !ok {
			r.IsTracking = false
			out.Routines[i] = r
			continue
		}
		projected := wasLeft.Sub(elapsed)
		if projected.Exhausted() {
			out.Routines[i] = store.Complete(r)
			continue
		}
		r.TimeLeft = &projected
		out.Routines[i] = r
	}
	return out
}

// DecodeAndRehydrate decodes the two persisted values and rehydrates them.
// Malformed input fails with ErrMalformedState and leaves recovery to the caller.
func DecodeAndRehydrate(rawState, rawLastClosedAt string, now time.Time) (model.State, error) {
	s, err := Decode(rawState)
	if err != nil {
		return model.State{}, err
	}
	closedAt, err := ParseTimestamp(rawLastClosedAt)
	if err != nil {
		return model.State{}, err
	}
	return Rehydrate(s, closedAt, now), nil
}
