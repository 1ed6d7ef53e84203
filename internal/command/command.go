package command

import (
	"bytes"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/yndnr/redikv/internal/resp"
)

// ErrInvalidArguments is matched by every argument validation failure.
var ErrInvalidArguments = errors.New("invalid arguments")

// ArgumentError describes why a recognized command was rejected.
type ArgumentError struct {
	Command string
	Reason  string
}

// Error implements the error interface.
func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s for '%s' command", e.Reason, e.Command)
}

// Unwrap returns ErrInvalidArguments.
func (e *ArgumentError) Unwrap() error {
	return ErrInvalidArguments
}

// Backend is the storage a command executes against.
type Backend interface {
	Get(key string) (resp.Frame, bool)
	Set(key string, value resp.Frame)
	HGet(key, field string) (resp.Frame, bool)
	HSet(key, field string, value resp.Frame)
	HGetAll(key string) (map[string]resp.Frame, bool)
}

// Command is a validated client request. The set of implementations is
// closed: *Get, *Set, *HGet, *HSet, *HGetAll and *Unknown.
type Command interface {
	// Name returns the command name used for logging and metrics.
	Name() string
	// Execute runs the command and returns the reply frame.
	Execute(b Backend) resp.Frame

	sealed()
}

type constructor func(args []resp.Frame) (Command, error)

var constructors = map[string]constructor{
	"get":     wrap(NewGet),
	"set":     wrap(NewSet),
	"hget":    wrap(NewHGet),
	"hset":    wrap(NewHSet),
	"hgetall": wrap(NewHGetAll),
}

// wrap adapts a typed constructor so a failed parse yields a nil Command.
func wrap[C Command](fn func([]resp.Frame) (C, error)) constructor {
	return func(args []resp.Frame) (Command, error) {
		c, err := fn(args)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
}

// Parse converts a top-level request frame into a Command.
//
// f is an Array whose first element is a bulk string naming the command;
// the remaining elements are its arguments. Frames of any other shape, and
// unrecognized names, produce *Unknown rather than an error.
func Parse(f resp.Frame) (Command, error) {
	if f.Kind != resp.KindArray || len(f.Elems) == 0 {
		return &Unknown{}, nil
	}

	head := f.Elems[0]
	if head.Kind != resp.KindBulkString {
		return &Unknown{}, nil
	}

	name := string(head.Bulk)
	newCmd, ok := constructors[name]
	if !ok {
		return &Unknown{Command: name}, nil
	}
	return newCmd(f.Elems)
}

// checkArity verifies the element count, name included.
func checkArity(name string, args []resp.Frame, want int) error {
	if len(args) != want {
		return &ArgumentError{Command: name, Reason: "wrong number of arguments"}
	}
	return nil
}

// textArg returns args[i] as a UTF-8 string.
func textArg(name string, args []resp.Frame, i int, what string) (string, error) {
	a := args[i]
	if a.Kind != resp.KindBulkString {
		return "", &ArgumentError{Command: name, Reason: what + " must be a bulk string"}
	}
	if !utf8.Valid(a.Bulk) {
		return "", &ArgumentError{Command: name, Reason: what + " must be valid UTF-8"}
	}
	return string(a.Bulk), nil
}

// fieldArg returns args[i] as a hash field name. Fields come back as map
// keys in HGETALL replies, so they must not contain CR or LF.
func fieldArg(name string, args []resp.Frame, i int) (string, error) {
	field, err := textArg(name, args, i, "field")
	if err != nil {
		return "", err
	}
	if bytes.ContainsAny(args[i].Bulk, "\r\n") {
		return "", &ArgumentError{Command: name, Reason: "field must not contain CR or LF"}
	}
	return field, nil
}

// valueArg returns args[i] as a stored value.
func valueArg(name string, args []resp.Frame, i int) (resp.Frame, error) {
	a := args[i]
	if a.Kind != resp.KindBulkString {
		return resp.Frame{}, &ArgumentError{Command: name, Reason: "value must be a bulk string"}
	}
	return a, nil
}
