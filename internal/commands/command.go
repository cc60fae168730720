// Package commands parses the slash commands typed into the TUI palette.
package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sandeepkv93/taskjar/internal/insight"
	"github.com/sandeepkv93/taskjar/internal/model"
)

type Type string

const (
	TypeAdd     Type = "add"
	TypeDone    Type = "done"
	TypeRemove  Type = "rm"
	TypeShift   Type = "shift"
	TypeDrop    Type = "drop"
	TypeEmoji   Type = "emoji"
	TypeLayout  Type = "layout"
	TypeFocus   Type = "focus"
	TypeMood    Type = "mood"
	TypePremium Type = "premium"
	TypeHelp    Type = "help"
)

// Types lists every command in help order.
var Types = []Type{TypeAdd, TypeDone, TypeRemove, TypeShift, TypeDrop, TypeEmoji, TypeLayout, TypeFocus, TypeMood, TypePremium, TypeHelp}

var usage = map[Type]string{
	TypeAdd:     "/add <title> [@YYYY-MM-DD] [!high|!medium|!low] [#bucket] [~effort]",
	TypeDone:    "/done <n|id>",
	TypeRemove:  "/rm <n|id>",
	TypeShift:   "/shift <n|id>",
	TypeDrop:    "/drop <n|id>",
	TypeEmoji:   "/emoji <n|id> <glyph>",
	TypeLayout:  "/layout <name>",
	TypeFocus:   "/focus <n|id>|off",
	TypeMood:    "/mood normal|tired",
	TypePremium: "/premium",
	TypeHelp:    "/help",
}

func Usage(t Type) string { return usage[t] }

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeMissingArgument ErrorCode = "missing_argument"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Ref points at a task either by its 1-based position in the visible
// agenda or by id (or unique id prefix).
type Ref struct {
	Index int
	ID    string
}

func (r Ref) String() string {
	if r.Index > 0 {
		return "#" + strconv.Itoa(r.Index)
	}
	return r.ID
}

type AddArgs struct {
	Title    string
	Date     model.Date
	Priority model.Priority
	Bucket   model.Bucket
	Effort   *int
}

// Input converts the arguments into a task input with form defaults.
func (a AddArgs) Input() model.TaskInput {
	in := model.NewTaskInput(a.Title)
	in.Date = a.Date
	in.Priority = a.Priority
	in.Bucket = a.Bucket
	if a.Effort != nil {
		in.Effort = *a.Effort
	}
	return in
}

type EmojiArgs struct {
	Target Ref
	Emoji  string
}

type FocusArgs struct {
	Target Ref
	Off    bool
}

type Command struct {
	Type   Type
	Raw    string
	Add    *AddArgs
	Target *Ref
	Emoji  *EmojiArgs
	Layout insight.Layout
	Focus  *FocusArgs
	Mood   insight.Mood
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := Type(strings.ToLower(parts[0]))
	args := parts[1:]

	switch head {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeDone, TypeRemove, TypeShift, TypeDrop:
		ref, err := parseTarget(head, args)
		if err != nil {
			return Command{}, err
		}
		return Command{Type: head, Raw: input, Target: &ref}, nil
	case TypeEmoji:
		return parseEmoji(input, args)
	case TypeLayout:
		return parseLayout(input, args)
	case TypeFocus:
		return parseFocus(input, args)
	case TypeMood:
		return parseMood(input, args)
	case TypePremium, TypeHelp:
		return Command{Type: head, Raw: input}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func missing(t Type, what string) error {
	return &CommandError{Code: ErrCodeMissingArgument, Message: fmt.Sprintf("%s requires %s (usage: %s)", t, what, Usage(t))}
}

func invalid(format string, args ...any) error {
	return &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

func parseAdd(raw string, args []string) (Command, error) {
	out := AddArgs{}
	title := make([]string, 0, len(args))
	for _, arg := range args {
		switch {
		case len(arg) > 1 && arg[0] == '@':
			d, err := model.ParseDate(arg[1:])
			if err != nil {
				return Command{}, invalid("date %q must be YYYY-MM-DD", arg[1:])
			}
			out.Date = d
		case len(arg) > 1 && arg[0] == '!':
			p := model.Priority(strings.ToLower(arg[1:]))
			if !p.IsValid() {
				return Command{}, invalid("priority %q must be high, medium or low", arg[1:])
			}
			out.Priority = p
		case len(arg) > 1 && arg[0] == '#':
			b := model.Bucket(strings.ToLower(arg[1:]))
			if !b.IsValid() {
				return Command{}, invalid("bucket %q must be health, paisa, family or growth", arg[1:])
			}
			out.Bucket = b
		case len(arg) > 1 && arg[0] == '~':
			n, err := strconv.Atoi(arg[1:])
			if err != nil || n < 0 || n > 100 {
				return Command{}, invalid("effort %q must be between 0 and 100", arg[1:])
			}
			out.Effort = &n
		default:
			title = append(title, arg)
		}
	}
	out.Title = strings.TrimSpace(strings.Join(title, " "))
	if out.Title == "" {
		return Command{}, missing(TypeAdd, "a title")
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &out}, nil
}

func parseRef(arg string) (Ref, error) {
	arg = strings.TrimPrefix(arg, "#")
	if arg == "" {
		return Ref{}, invalid("task reference is empty")
	}
	if n, err := strconv.Atoi(arg); err == nil {
		if n <= 0 {
			return Ref{}, invalid("task number %d must be positive", n)
		}
		return Ref{Index: n}, nil
	}
	return Ref{ID: arg}, nil
}

func parseTarget(t Type, args []string) (Ref, error) {
	if len(args) == 0 {
		return Ref{}, missing(t, "a task")
	}
	if len(args) > 1 {
		return Ref{}, invalid("%s takes a single task, got %d", t, len(args))
	}
	return parseRef(args[0])
}

func parseEmoji(raw string, args []string) (Command, error) {
	if len(args) < 2 {
		return Command{}, missing(TypeEmoji, "a task and a glyph")
	}
	ref, err := parseRef(args[0])
	if err != nil {
		return Command{}, err
	}
	return Command{Type: TypeEmoji, Raw: raw, Emoji: &EmojiArgs{Target: ref, Emoji: strings.Join(args[1:], " ")}}, nil
}

func parseLayout(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, missing(TypeLayout, "a layout name")
	}
	layout, err := insight.ParseLayout(strings.ToLower(args[0]))
	if err != nil {
		return Command{}, invalid("unknown layout %q", args[0])
	}
	return Command{Type: TypeLayout, Raw: raw, Layout: layout}, nil
}

func parseMood(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, missing(TypeMood, "a mood")
	}
	mood, err := insight.ParseMood(strings.ToLower(args[0]))
	if err != nil {
		return Command{}, invalid("unknown mood %q", args[0])
	}
	return Command{Type: TypeMood, Raw: raw, Mood: mood}, nil
}

func parseFocus(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, missing(TypeFocus, "a task or off")
	}
	if strings.EqualFold(args[0], "off") {
		return Command{Type: TypeFocus, Raw: raw, Focus: &FocusArgs{Off: true}}, nil
	}
	ref, err := parseTarget(TypeFocus, args)
	if err != nil {
		return Command{}, err
	}
	return Command{Type: TypeFocus, Raw: raw, Focus: &FocusArgs{Target: ref}}, nil
}
