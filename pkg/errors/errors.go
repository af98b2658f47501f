package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error independently of the transport.
type Kind string

const (
	KindValidation  Kind = "validation"
	KindPersistence Kind = "persistence"
	KindNotFound    Kind = "not_found"
	KindInternal    Kind = "internal"
)

// RouteNotFoundMessage is the body message returned for unmatched routes.
const RouteNotFoundMessage = "Rota não encontrada"

// ErrRouteNotFound is returned for any request that matches no route.
var ErrRouteNotFound = NewNotFoundError("route", RouteNotFoundMessage)

// ValidationError represents a request rejected before any store access
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return e.Message
}

// Kind returns KindValidation
func (e *ValidationError) Kind() Kind {
	return KindValidation
}

// HTTPStatus returns the HTTP status for this error
func (e *ValidationError) HTTPStatus() int {
	return http.StatusBadRequest
}

// PersistenceError represents any fault raised by the store: connectivity,
// constraint violations, or an insert that returned no row.
type PersistenceError struct {
	Message string
	Err     error
}

// NewPersistenceError creates a new persistence error. An empty message falls
// back to the message of the innermost cause of err, so wrapping context added
// for logs never reaches the client.
func NewPersistenceError(message string, err error) *PersistenceError {
	return &PersistenceError{
		Message: message,
		Err:     err,
	}
}

// Error implements the error interface
func (e *PersistenceError) Error() string {
	switch {
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return RootCause(e.Err).Error()
	default:
		return "persistence failure"
	}
}

// Unwrap returns the wrapped error
func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Kind returns KindPersistence
func (e *PersistenceError) Kind() Kind {
	return KindPersistence
}

// HTTPStatus returns the HTTP status for this error
func (e *PersistenceError) HTTPStatus() int {
	return http.StatusInternalServerError
}

// NotFoundError represents a resource not found error
type NotFoundError struct {
	Resource string
	Message  string
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource, message string) *NotFoundError {
	return &NotFoundError{
		Resource: resource,
		Message:  message,
	}
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// Kind returns KindNotFound
func (e *NotFoundError) Kind() Kind {
	return KindNotFound
}

// HTTPStatus returns the HTTP status for this error
func (e *NotFoundError) HTTPStatus() int {
	return http.StatusNotFound
}

// RootCause follows the single-error Unwrap chain and returns the innermost error.
func RootCause(err error) error {
	for err != nil {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
	return nil
}

// Kinder is implemented by errors that carry a Kind.
type Kinder interface {
	Kind() Kind
}

// HTTPStatuser is implemented by errors that map to an HTTP status.
type HTTPStatuser interface {
	HTTPStatus() int
}

// KindOf returns the Kind of the first error in err's chain that has one,
// or KindInternal.
func KindOf(err error) Kind {
	var k Kinder
	if errors.As(err, &k) {
		return k.Kind()
	}
	return KindInternal
}

// HTTPStatus returns the HTTP status of the first error in err's chain that
// declares one, or 500.
func HTTPStatus(err error) int {
	var s HTTPStatuser
	if errors.As(err, &s) {
		return s.HTTPStatus()
	}
	return http.StatusInternalServerError
}
