package logging

import "log/slog"

// Canonical attribute keys shared by every package that logs.
const (
	KeyRoutineID = "routine_id"
	KeyRoutine   = "routine"
	KeyAction    = "action"
	KeyCount     = "count"
	KeyPath      = "path"
	KeyDriver    = "driver"
	KeyElapsedMS = "elapsed_ms"
	KeyError     = "error"
)

func RoutineID(id string) slog.Attr { return slog.String(KeyRoutineID, id) }
func Routine(name string) slog.Attr { return slog.String(KeyRoutine, name) }
func Action(kind string) slog.Attr  { return slog.String(KeyAction, kind) }
func Count(n int) slog.Attr         { return slog.Int(KeyCount, n) }
func Path(p string) slog.Attr       { return slog.String(KeyPath, p) }
func Driver(d string) slog.Attr     { return slog.String(KeyDriver, d) }
func ElapsedMS(ms int64) slog.Attr  { return slog.Int64(KeyElapsedMS, ms) }
func Err(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
