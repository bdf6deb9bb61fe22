package transfer

import (
	"github.com/sandeepkv93/routined/internal/model"
	"github.com/sandeepkv93/routined/internal/store"
)

// Dispatcher is satisfied by *store.Store and *tracker.Tracker.
type Dispatcher interface {
	Dispatch(store.Action) model.State
}

// ImportFile validates the file and, only when it is valid, replaces the
// routines through a single SetRoutines action.
func ImportFile(d Dispatcher, path string, fallback Format) (model.State, error) {
	routines, err := ReadFile(path, fallback)
	if err != nil {
		return model.State{}, err
	}
	return d.Dispatch(store.SetRoutines{Routines: routines}), nil
}
