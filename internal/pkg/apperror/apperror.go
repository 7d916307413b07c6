package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindServer Kind = iota
	KindValidation
	KindAuth
	KindConflict
	KindUnsupportedDatabase
	KindGeneration
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuth:
		return "auth"
	case KindConflict:
		return "conflict"
	case KindUnsupportedDatabase:
		return "unsupported_database"
	case KindGeneration:
		return "generation"
	default:
		return "server"
	}
}

// Status is the HTTP status a kind is surfaced as.
func (k Kind) Status() int {
	switch k {
	case KindValidation, KindUnsupportedDatabase:
		return http.StatusBadRequest
	case KindAuth:
		return http.StatusUnauthorized
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Error carries the operation that failed so the error handler can log it.
// Message is what the client sees; Err stays server-side.
type Error struct {
	Kind    Kind
	Op      string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(op, message string) *Error {
	return &Error{Kind: KindValidation, Op: op, Message: message}
}

func Auth(op, message string, err error) *Error {
	return &Error{Kind: KindAuth, Op: op, Message: message, Err: err}
}

func Conflict(op, message string) *Error {
	return &Error{Kind: KindConflict, Op: op, Message: message}
}

func UnsupportedDatabase(op, message string) *Error {
	return &Error{Kind: KindUnsupportedDatabase, Op: op, Message: message}
}

func Generation(op string, err error) *Error {
	return &Error{Kind: KindGeneration, Op: op, Message: "Failed to generate query.", Err: err}
}

func Server(op string, err error) *Error {
	return &Error{Kind: KindServer, Op: op, Message: "Server error", Err: err}
}

// KindOf reports KindServer for errors that are not *Error.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindServer
}

func Is(err error, kind Kind) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == kind
}
