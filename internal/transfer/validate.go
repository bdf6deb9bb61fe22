package transfer

import (
	"fmt"

	"github.com/sandeepkv93/routined/internal/model"
)

// validate walks a generically decoded document and builds routines only when
// every field is well formed. It reports all problems, not just the first.
func validate(doc any) ([]model.Routine, error) {
	verr := &ValidationError{}
	root, ok := doc.(map[string]any)
	if !ok {
		verr.add("$", "expected an object with a routines list")
		return nil, verr
	}
	rawList, present := root["routines"]
	if !present {
		verr.add("routines", "is required")
		return nil, verr
	}
	list, ok := rawList.([]any)
	if !ok {
		verr.add("routines", "expected a list, got %s", typeName(rawList))
		return nil, verr
	}

	out := make([]model.Routine, 0, len(list))
	seen := make(map[string]int, len(list))
	tracking := 0
	for i, item := range list {
		path := fmt.Sprintf("routines[%d]", i)
		fields, ok := item.(map[string]any)
		if !ok {
			verr.add(path, "expected an object, got %s", typeName(item))
			continue
		}
		r := routineFrom(path, fields, verr)
		if r.ID != "" {
			if first, dup := seen[r.ID]; dup {
				verr.add(path+".id", "duplicates routines[%d].id %q", first, r.ID)
			} else {
				seen[r.ID] = i
			}
		}
		if r.IsTracking {
			tracking++
			if tracking > 1 {
				verr.add(path+".isTracking", "only one routine may be tracking")
			}
		}
		out = append(out, r)
	}
	if !verr.empty() {
		return nil, verr
	}
	return out, nil
}

func routineFrom(path string, fields map[string]any, verr *ValidationError) model.Routine {
	var r model.Routine
	r.ID = requiredString(path+".id", fields["id"], verr)
	r.Name = requiredString(path+".routineName", fields["routineName"], verr)
	r.Duration = optionalSpan(path+".duration", fields["duration"], verr)
	r.TimeLeft = optionalSpan(path+".timeLeft", fields["timeLeft"], verr)
	r.IsTracking = optionalBool(path+".isTracking", fields["isTracking"], verr)
	r.IsDone = optionalBool(path+".isDone", fields["isDone"], verr)
	r.ShouldNotify = optionalBool(path+".shouldNotify", fields["shouldNotify"], verr)
	r.Reminder = optionalTime(path+".reminder", fields["reminder"], verr)

	if r.Duration != nil && r.Duration.Exhausted() {
		verr.add(path+".duration", "must be positive")
	}
	if r.TimeLeft != nil && r.Duration == nil {
		verr.add(path+".timeLeft", "requires a duration")
	}
	if r.IsDone && r.IsTracking {
		verr.add(path+".isTracking", "cannot be true when isDone is true")
	}
	if r.IsDone && r.TimeLeft != nil {
		verr.add(path+".timeLeft", "must be null when isDone is true")
	}
	if r.IsTracking && r.Duration == nil {
		verr.add(path+".isTracking", "requires a duration")
	}
	return r
}

func requiredString(path string, v any, verr *ValidationError) string {
	s, ok := v.(string)
	switch {
	case v == nil:
		verr.add(path, "is required")
	case !ok:
		verr.add(path, "expected a string, got %s", typeName(v))
	case s == "":
		verr.add(path, "must not be empty")
	}
	return s
}

func optionalSpan(path string, v any, verr *ValidationError) *model.Span {
	if v == nil {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		verr.add(path, "expected HH:MM:SS.mmm, got %s", typeName(v))
		return nil
	}
	span, err := model.ParseSpan(s)
	if err != nil {
		verr.add(path, "expected HH:MM:SS.mmm, got %q", s)
		return nil
	}
	return &span
}

func optionalTime(path string, v any, verr *ValidationError) *model.TimeOfDay {
	if v == nil {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		verr.add(path, "expected HH:MM, got %s", typeName(v))
		return nil
	}
	t, err := model.ParseTimeOfDay(s)
	if err != nil {
		verr.add(path, "expected HH:MM, got %q", s)
		return nil
	}
	return &t
}

func optionalBool(path string, v any, verr *ValidationError) bool {
	if v == nil {
		return false
	}
	b, ok := v.(bool)
	if !ok {
		verr.add(path, "expected a boolean, got %s", typeName(v))
	}
	return b
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case int, int64, uint64, float64:
		return "number"
	case []any:
		return "list"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
