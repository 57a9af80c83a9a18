// Package apperr classifies request failures so handlers can return them
// and a single error handler can render the response envelope.
package apperr

import (
	"fmt"
	"net/http"
)

// Kind is the category of a failure.
type Kind int

const (
	// Internal is an unexpected failure; the store has been rolled back.
	Internal Kind = iota
	// NotFound covers a missing row, an empty page or an empty category.
	NotFound
	// InvalidInput is a missing or malformed required field.
	InvalidInput
	// Unprocessable is a well-formed request whose values cannot be applied,
	// such as a show for an unknown venue or a quiz without a category.
	Unprocessable
	// Conflict is a write that would duplicate a unique value.
	Conflict
)

// Status returns the HTTP status code for the kind.
func (k Kind) Status() int {
	switch k {
	case NotFound:
		return http.StatusNotFound
	case InvalidInput:
		return http.StatusBadRequest
	case Unprocessable, Conflict:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (k Kind) String() string {
	switch k {
	case NotFound:
		return "not_found"
	case InvalidInput:
		return "invalid_input"
	case Unprocessable:
		return "unprocessable"
	case Conflict:
		return "conflict"
	default:
		return "internal"
	}
}

// Error carries a Kind, an optional client-facing message and the
// underlying cause, which is logged but never sent to the client.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Message != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	case e.Message != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error { return e.Err }

func New(k Kind, msg string) *Error { return &Error{Kind: k, Message: msg} }

func Wrap(k Kind, err error, msg string) *Error { return &Error{Kind: k, Message: msg, Err: err} }

func NotFoundf(format string, a ...any) *Error {
	return New(NotFound, fmt.Sprintf(format, a...))
}

func Invalidf(format string, a ...any) *Error {
	return New(InvalidInput, fmt.Sprintf(format, a...))
}

func Unprocessablef(format string, a ...any) *Error {
	return New(Unprocessable, fmt.Sprintf(format, a...))
}
