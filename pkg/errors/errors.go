package errors

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/lib/pq"
)

// Error represents a typed domain error with HTTP awareness.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Predefined errors for common scenarios.
var (
	ErrUnreachable        = New("DATABASE_UNREACHABLE", http.StatusServiceUnavailable, "database unreachable")
	ErrQuery              = New("QUERY_FAILED", http.StatusInternalServerError, "query failed")
	ErrIntegrity          = New("INTEGRITY_FAILURE", http.StatusInternalServerError, "cascade aborted, transaction rolled back")
	ErrNotFound           = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrConflict           = New("CONFLICT", http.StatusConflict, "conflict")
	ErrValidation         = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrUnauthorized       = New("UNAUTHORIZED", http.StatusUnauthorized, "unauthorized")
	ErrInvalidCredentials = New("INVALID_CREDENTIALS", http.StatusUnauthorized, "invalid email or password")
	ErrInactiveAccount    = New("ACCOUNT_INACTIVE", http.StatusForbidden, "account is inactive")
	ErrInternal           = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}

// FromDB classifies a database error into the service taxonomy: connection
// failures, constraint conflicts (duplicate unique email and friends), and
// plain query failures. sql.ErrNoRows stays a not-found.
func FromDB(err error, message string) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	if errors.Is(err, sql.ErrNoRows) {
		return Clone(ErrNotFound, message)
	}
	if errors.Is(err, driver.ErrBadConn) {
		return Wrap(err, ErrUnreachable.Code, ErrUnreachable.Status, ErrUnreachable.Message)
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return Wrap(err, ErrUnreachable.Code, ErrUnreachable.Status, ErrUnreachable.Message)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch {
		case pqErr.Code.Class() == "08": // connection exception
			return Wrap(err, ErrUnreachable.Code, ErrUnreachable.Status, ErrUnreachable.Message)
		case pqErr.Code == "23505": // unique_violation
			return Wrap(err, ErrConflict.Code, ErrConflict.Status, message)
		case pqErr.Code.Class() == "23": // other integrity constraint violation
			return Wrap(err, ErrConflict.Code, ErrConflict.Status, message)
		}
	}
	return Wrap(err, ErrQuery.Code, ErrQuery.Status, message)
}
