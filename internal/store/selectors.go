package store

import "github.com/sandeepkv93/routined/internal/model"

func FindByID(routines []model.Routine, id string) (model.Routine, bool) {
	for _, r := range routines {
		if r.ID == id {
			return r, true
		}
	}
	return model.Routine{}, false
}

// PendingNotifications keeps list order, which is oldest first.
func PendingNotifications(routines []model.Routine) []model.Routine {
	out := make([]model.Routine, 0)
	for _, r := range routines {
		if r.ShouldNotify {
			out = append(out, r)
		}
	}
	return out
}

func Tracking(routines []model.Routine) (model.Routine, bool) {
	for _, r := range routines {
		if r.IsTracking {
			return r, true
		}
	}
	return model.Routine{}, false
}

// Progress is the elapsed fraction of the routine's duration in [0, 1].
func Progress(r model.Routine) float64 {
	if r.IsDone {
		return 1
	}
	if r.Duration == nil || r.TimeLeft == nil || r.Duration.Duration() <= 0 {
		return 0
	}
	p := 1 - float64(r.TimeLeft.Duration())/float64(r.Duration.Duration())
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
