// Package apperr defines the error taxonomy shared by the ADP and TalentLMS
// clients, the reconciler and the command line tools.
package apperr

import (
	"errors"
	"fmt"
)

// Code identifies a class of failure. Codes are strings so they read well in logs.
type Code string

const (
	CodeAuth       Code = "AUTH"
	CodeNotFound   Code = "NOT_FOUND"
	CodeDuplicate  Code = "DUPLICATE"
	CodeValidation Code = "VALIDATION"
	CodeTransient  Code = "TRANSIENT_NETWORK"
	CodeConfig     Code = "CONFIG"
	CodeUnknown    Code = "UNKNOWN"
)

// Error carries a Code plus the operation that failed.
type Error struct {
	Code Code
	Op   string
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if msg == "" {
		msg = string(e.Code)
	}
	if e.Op == "" {
		return msg
	}
	return e.Op + ": " + msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error with the same Code, so callers can write
// errors.Is(err, apperr.ErrNotFound).
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

var (
	ErrAuth       = &Error{Code: CodeAuth}
	ErrNotFound   = &Error{Code: CodeNotFound}
	ErrDuplicate  = &Error{Code: CodeDuplicate}
	ErrValidation = &Error{Code: CodeValidation}
	ErrTransient  = &Error{Code: CodeTransient}
	ErrConfig     = &Error{Code: CodeConfig}
)

func New(code Code, op, msg string) error {
	return &Error{Code: code, Op: op, Msg: msg}
}

func Newf(code Code, op, format string, args ...any) error {
	return &Error{Code: code, Op: op, Msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code to err. An err that already carries a code keeps it.
func Wrap(code Code, op string, err error) error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return &Error{Code: ae.Code, Op: op, Err: err}
	}
	return &Error{Code: code, Op: op, Err: err}
}

// CodeOf returns the outermost code in err's chain, or CodeUnknown.
func CodeOf(err error) Code {
	if err == nil {
		return ""
	}
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code
	}
	return CodeUnknown
}

// ExitCode maps an error onto the process exit status used by the commands.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	switch CodeOf(err) {
	case CodeAuth:
		return 2
	case CodeNotFound:
		return 3
	case CodeConfig:
		return 4
	default:
		return 1
	}
}
