package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Add      func(AddArgs) (Result, error)
	Start    func(TargetArgs) (Result, error)
	Stop     func() (Result, error)
	Done     func(TargetArgs) (Result, error)
	Reset    func(ResetArgs) (Result, error)
	Delete   func(TargetArgs) (Result, error)
	Move     func(MoveArgs) (Result, error)
	Rename   func(RenameArgs) (Result, error)
	Duration func(DurationArgs) (Result, error)
	Clear    func() (Result, error)
	Sort     func() (Result, error)
}

func missing(t Type) error {
	return &CommandError{Code: ErrCodeHandlerMissing, Message: fmt.Sprintf("%s handler not configured", t)}
}

func noArgs(t Type) error {
	return invalid("%s command has no arguments", t)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, missing(cmd.Type)
		}
		if cmd.Add == nil {
			return Result{}, noArgs(cmd.Type)
		}
		return handlers.Add(*cmd.Add)
	case TypeStart, TypeDone, TypeDelete:
		h := map[Type]func(TargetArgs) (Result, error){
			TypeStart:  handlers.Start,
			TypeDone:   handlers.Done,
			TypeDelete: handlers.Delete,
		}[cmd.Type]
		if h == nil {
			return Result{}, missing(cmd.Type)
		}
		if cmd.Target == nil {
			return Result{}, noArgs(cmd.Type)
		}
		return h(*cmd.Target)
	case TypeReset:
		if handlers.Reset == nil {
			return Result{}, missing(cmd.Type)
		}
		if cmd.Reset == nil {
			return Result{}, noArgs(cmd.Type)
		}
		return handlers.Reset(*cmd.Reset)
	case TypeMove:
		if handlers.Move == nil {
			return Result{}, missing(cmd.Type)
		}
		if cmd.Move == nil {
			return Result{}, noArgs(cmd.Type)
		}
		return handlers.Move(*cmd.Move)
	case TypeRename:
		if handlers.Rename == nil {
			return Result{}, missing(cmd.Type)
		}
		if cmd.Rename == nil {
			return Result{}, noArgs(cmd.Type)
		}
		return handlers.Rename(*cmd.Rename)
	case TypeDuration:
		if handlers.Duration == nil {
			return Result{}, missing(cmd.Type)
		}
		if cmd.Duration == nil {
			return Result{}, noArgs(cmd.Type)
		}
		return handlers.Duration(*cmd.Duration)
	case TypeStop, TypeClear, TypeSort:
		h := map[Type]func() (Result, error){
			TypeStop:  handlers.Stop,
			TypeClear: handlers.Clear,
			TypeSort:  handlers.Sort,
		}[cmd.Type]
		if h == nil {
			return Result{}, missing(cmd.Type)
		}
		return h()
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}
