package interpreter

import (
	"errors"
	"fmt"

	"github.com/paytoncavanagh1/f25-starter/pkg/runtime"
)

// ErrorKind classifies the fatal errors a program can raise.
type ErrorKind int

const (
	NameError ErrorKind = iota + 1
	TypeError
)

func (k ErrorKind) String() string {
	switch k {
	case NameError:
		return "NameError"
	case TypeError:
		return "TypeError"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is a Name or Type failure. It always ends the run.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

var (
	// ErrInvalidInput marks an inputi line that is not a base-10 integer.
	ErrInvalidInput = errors.New("input is not an integer")
	// ErrEndOfInput marks an inputi read after the input source is exhausted.
	ErrEndOfInput = errors.New("end of input")
)

func nameErrorf(format string, args ...any) *Error {
	return &Error{Kind: NameError, Message: fmt.Sprintf(format, args...)}
}

func typeErrorf(format string, args ...any) *Error {
	return &Error{Kind: TypeError, Message: fmt.Sprintf(format, args...)}
}

// fromEnvironment lifts binding failures into Name errors.
func fromEnvironment(err error) error {
	var nameErr *runtime.NameError
	if errors.As(err, &nameErr) {
		return &Error{Kind: NameError, Message: nameErr.Message}
	}
	return err
}

// ErrorKindOf reports the kind of a Name/Type failure; ok is false for
// generic failures such as unparsable input.
func ErrorKindOf(err error) (ErrorKind, bool) {
	var runErr *Error
	if errors.As(err, &runErr) {
		return runErr.Kind, true
	}
	return 0, false
}
