package commands

import (
	"fmt"
	"strconv"

	"github.com/sandeepkv93/routined/internal/model"
)

// Resolve maps a 1-based position or an id to the routine it names.
func Resolve(target string, routines []model.Routine) (model.Routine, error) {
	if n, err := strconv.Atoi(target); err == nil {
		if n >= 1 && n <= len(routines) {
			return routines[n-1], nil
		}
		return model.Routine{}, &CommandError{Code: ErrCodeUnknownTarget, Message: fmt.Sprintf("no routine at position %d", n)}
	}
	for _, r := range routines {
		if r.ID == target {
			return r, nil
		}
	}
	return model.Routine{}, &CommandError{Code: ErrCodeUnknownTarget, Message: fmt.Sprintf("no routine with id %s", target)}
}
