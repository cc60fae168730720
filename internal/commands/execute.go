package commands

import (
	"fmt"
	"strings"

	"github.com/sandeepkv93/taskjar/internal/insight"
)

type Result struct {
	Message string
}

type Handlers struct {
	Add     func(AddArgs) (Result, error)
	Done    func(Ref) (Result, error)
	Remove  func(Ref) (Result, error)
	Shift   func(Ref) (Result, error)
	Drop    func(Ref) (Result, error)
	Emoji   func(EmojiArgs) (Result, error)
	Layout  func(insight.Layout) (Result, error)
	Focus   func(FocusArgs) (Result, error)
	Mood    func(insight.Mood) (Result, error)
	Premium func() (Result, error)
	Help    func() (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, handlerMissing(cmd.Type)
		}
		return handlers.Add(*cmd.Add)
	case TypeDone, TypeRemove, TypeShift, TypeDrop:
		fn := map[Type]func(Ref) (Result, error){
			TypeDone:   handlers.Done,
			TypeRemove: handlers.Remove,
			TypeShift:  handlers.Shift,
			TypeDrop:   handlers.Drop,
		}[cmd.Type]
		if fn == nil {
			return Result{}, handlerMissing(cmd.Type)
		}
		return fn(*cmd.Target)
	case TypeEmoji:
		if handlers.Emoji == nil {
			return Result{}, handlerMissing(cmd.Type)
		}
		return handlers.Emoji(*cmd.Emoji)
	case TypeLayout:
		if handlers.Layout == nil {
			return Result{}, handlerMissing(cmd.Type)
		}
		return handlers.Layout(cmd.Layout)
	case TypeFocus:
		if handlers.Focus == nil {
			return Result{}, handlerMissing(cmd.Type)
		}
		return handlers.Focus(*cmd.Focus)
	case TypeMood:
		if handlers.Mood == nil {
			return Result{}, handlerMissing(cmd.Type)
		}
		return handlers.Mood(cmd.Mood)
	case TypePremium:
		if handlers.Premium == nil {
			return Result{}, handlerMissing(cmd.Type)
		}
		return handlers.Premium()
	case TypeHelp:
		if handlers.Help == nil {
			return Result{Message: HelpText()}, nil
		}
		return handlers.Help()
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}

func handlerMissing(t Type) error {
	return &CommandError{Code: ErrCodeHandlerMissing, Message: fmt.Sprintf("%s handler not configured", t)}
}

// HelpText lists the usage of every command, one per line.
func HelpText() string {
	lines := make([]string, 0, len(Types))
	for _, t := range Types {
		lines = append(lines, Usage(t))
	}
	return strings.Join(lines, "\n")
}
