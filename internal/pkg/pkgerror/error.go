package pkgerror

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound is returned by storage layers when a keyed row does not exist.
var ErrNotFound = errors.New("resource not found")

// Type groups errors by who is at fault.
type Type int

const (
	TypeServer Type = iota
	TypeBusiness
	TypeValidation
)

var typeNames = [...]string{
	TypeServer:     "server",
	TypeBusiness:   "business",
	TypeValidation: "validation",
}

func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return "unknown"
	}
	return typeNames[t]
}

// Code is the machine readable part of an error response.
type Code int

const (
	CodeInternal Code = iota
	CodeInvalidFormat
	CodeInvalidInput
	CodeNotFound
	CodeConflict
	CodeUnauthorized
	CodeUnavailable
)

type codeInfo struct {
	name      string
	status    int
	retryable bool
}

var codes = map[Code]codeInfo{
	CodeInternal:      {"internal", http.StatusInternalServerError, false},
	CodeInvalidFormat: {"invalid_format", http.StatusBadRequest, false},
	CodeInvalidInput:  {"invalid_input", http.StatusUnprocessableEntity, false},
	CodeNotFound:      {"not_found", http.StatusNotFound, false},
	CodeConflict:      {"conflict", http.StatusConflict, false},
	CodeUnauthorized:  {"unauthorized", http.StatusUnauthorized, false},
	CodeUnavailable:   {"unavailable", http.StatusServiceUnavailable, true},
}

func (c Code) info() codeInfo {
	if info, ok := codes[c]; ok {
		return info
	}
	return codes[CodeInternal]
}

func (c Code) String() string { return c.info().name }

// Error carries a client-facing message plus a classification. The optional
// cause stays available to errors.Is/As and to logs but is never rendered to
// clients.
type Error struct {
	cause error
	msg   string
	kind  Type
	code  Code
}

func (e *Error) Error() string {
	switch {
	case e.cause != nil:
		return e.cause.Error()
	case e.msg != "":
		return e.msg
	default:
		return e.kind.String() + " error"
	}
}

// String is the log form of the error.
func (e *Error) String() string {
	return fmt.Sprintf("%s/%s: %s (cause: %v)", e.kind, e.code, e.msg, e.cause)
}

func (e *Error) Msg() string   { return e.msg }
func (e *Error) Type() Type    { return e.kind }
func (e *Error) Code() Code    { return e.code }
func (e *Error) Unwrap() error { return e.cause }

// Is matches any *Error with the same classification and message, so a
// sentinel still matches after Wrap attached a cause to a copy of it.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && e.kind == t.kind && e.code == t.code && e.msg == t.msg
}

// Retryable reports whether the same call may succeed later.
func (e *Error) Retryable() bool { return e.code.info().retryable }

func (e *Error) StatusCode() int { return e.code.info().status }

// IsRetryable unwraps err looking for a retryable *Error.
func IsRetryable(err error) bool {
	var perr *Error
	return errors.As(err, &perr) && perr.Retryable()
}

func build(cause error, msg string, kind Type, code Code) error {
	return &Error{cause: cause, msg: msg, kind: kind, code: code}
}

func NewServer(err error) error {
	return build(err, "Internal server error", TypeServer, CodeInternal)
}

func NewBusiness(msg string, code Code) error {
	return build(nil, msg, TypeBusiness, code)
}

func NewValidation(msg string) error {
	return build(nil, msg, TypeValidation, CodeInvalidInput)
}

func NewInvalidFormat() error {
	return build(nil, "invalid request body", TypeValidation, CodeInvalidFormat)
}

func NewUnauthorized(msg string) error {
	return build(nil, msg, TypeBusiness, CodeUnauthorized)
}

// NewUnavailable marks a dependency failure the client may retry.
func NewUnavailable(msg string, err error) error {
	return build(err, msg, TypeServer, CodeUnavailable)
}

// Wrap attaches err as the cause of a copy of sentinel. A sentinel that is
// not an *Error degrades to NewServer(err).
func Wrap(sentinel, err error) error {
	var perr *Error
	if !errors.As(sentinel, &perr) {
		return NewServer(err)
	}
	return build(err, perr.msg, perr.kind, perr.code)
}
