// Package commands parses the palette input of the TUI into typed commands.
package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sandeepkv93/routined/internal/model"
)

type Type string

const (
	TypeAdd      Type = "add"
	TypeStart    Type = "start"
	TypeStop     Type = "stop"
	TypeDone     Type = "done"
	TypeReset    Type = "reset"
	TypeDelete   Type = "delete"
	TypeMove     Type = "move"
	TypeRename   Type = "rename"
	TypeDuration Type = "duration"
	TypeClear    Type = "clear"
	TypeSort     Type = "sort"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
	ErrCodeUnknownTarget   ErrorCode = "unknown_target"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func invalid(format string, args ...any) error {
	return &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

type AddArgs struct {
	Name     string
	Duration *model.Span
	Reminder *model.TimeOfDay
}

// TargetArgs names a routine by its 1-based list position or its id.
type TargetArgs struct {
	Target string
}

type ResetArgs struct {
	Target string
	All    bool
}

// MoveArgs holds 0-based positions.
type MoveArgs struct {
	From int
	To   int
}

type RenameArgs struct {
	Target string
	Name   string
}

// DurationArgs with a nil Duration removes the duration.
type DurationArgs struct {
	Target   string
	Duration *model.Span
}

type Command struct {
	Type     Type
	Raw      string
	Add      *AddArgs
	Target   *TargetArgs
	Reset    *ResetArgs
	Move     *MoveArgs
	Rename   *RenameArgs
	Duration *DurationArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeStart, TypeDone, TypeDelete:
		return parseTarget(input, Type(head), args)
	case TypeReset:
		return parseReset(input, args)
	case TypeMove:
		return parseMove(input, args)
	case TypeRename:
		return parseRename(input, args)
	case TypeDuration:
		return parseDuration(input, args)
	case TypeStop, TypeClear, TypeSort:
		if len(args) > 0 {
			return Command{}, invalid("%s takes no arguments", head)
		}
		return Command{Type: Type(head), Raw: input}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

// parseAdd reads "add <name> [duration] [@HH:MM]". The optional parts are
// taken from the end so names may contain spaces.
func parseAdd(raw string, args []string) (Command, error) {
	out := AddArgs{}
	if n := len(args); n > 0 && strings.HasPrefix(args[n-1], "@") {
		t, err := model.ParseTimeOfDay(strings.TrimPrefix(args[n-1], "@"))
		if err != nil {
			return Command{}, invalid("reminder must be @HH:MM, got %q", args[n-1])
		}
		out.Reminder = &t
		args = args[:n-1]
	}
	if n := len(args); n > 1 {
		if span, err := model.ParseSpan(args[n-1]); err == nil {
			if span.Exhausted() {
				return Command{}, invalid("duration must be positive")
			}
			out.Duration = &span
			args = args[:n-1]
		}
	}
	out.Name = strings.TrimSpace(strings.Join(args, " "))
	if out.Name == "" {
		return Command{}, invalid("add requires a name")
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &out}, nil
}

func parseTarget(raw string, typ Type, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, invalid("%s requires one routine number or id", typ)
	}
	return Command{Type: typ, Raw: raw, Target: &TargetArgs{Target: args[0]}}, nil
}

func parseReset(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, invalid("reset requires a routine number, id, or all")
	}
	if strings.EqualFold(args[0], "all") {
		return Command{Type: TypeReset, Raw: raw, Reset: &ResetArgs{All: true}}, nil
	}
	return Command{Type: TypeReset, Raw: raw, Reset: &ResetArgs{Target: args[0]}}, nil
}

func parseMove(raw string, args []string) (Command, error) {
	if len(args) != 2 {
		return Command{}, invalid("move requires two positions")
	}
	from, err1 := strconv.Atoi(args[0])
	to, err2 := strconv.Atoi(args[1])
	if err1 != nil || err2 != nil || from < 1 || to < 1 {
		return Command{}, invalid("move positions must be numbers starting at 1")
	}
	return Command{Type: TypeMove, Raw: raw, Move: &MoveArgs{From: from - 1, To: to - 1}}, nil
}

func parseRename(raw string, args []string) (Command, error) {
	if len(args) < 2 {
		return Command{}, invalid("rename requires a routine and a new name")
	}
	return Command{Type: TypeRename, Raw: raw, Rename: &RenameArgs{Target: args[0], Name: strings.Join(args[1:], " ")}}, nil
}

func parseDuration(raw string, args []string) (Command, error) {
	if len(args) != 2 {
		return Command{}, invalid("duration requires a routine and a span or none")
	}
	out := DurationArgs{Target: args[0]}
	if !strings.EqualFold(args[1], "none") {
		span, err := model.ParseSpan(args[1])
		if err != nil {
			return Command{}, invalid("duration must be HH:MM[:SS[.mmm]] or none, got %q", args[1])
		}
		if span.Exhausted() {
			return Command{}, invalid("duration must be positive")
		}
		out.Duration = &span
	}
	return Command{Type: TypeDuration, Raw: raw, Duration: &out}, nil
}
