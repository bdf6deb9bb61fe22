package transfer

import (
	"errors"
	"fmt"
	"strings"
)

var ErrSchema = errors.New("transfer: document does not match the routines schema")

type FieldError struct {
	Path    string
	Message string
}

func (f FieldError) String() string { return f.Path + ": " + f.Message }

// ValidationError lists every failing field of an import document.
type ValidationError struct {
	Problems []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		parts = append(parts, p.String())
	}
	return fmt.Sprintf("%s: %s", ErrSchema, strings.Join(parts, "; "))
}

func (e *ValidationError) Is(target error) bool { return target == ErrSchema }

func (e *ValidationError) add(path, format string, args ...any) {
	e.Problems = append(e.Problems, FieldError{Path: path, Message: fmt.Sprintf(format, args...)})
}

func (e *ValidationError) empty() bool { return len(e.Problems) == 0 }
