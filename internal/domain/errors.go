package domain

import (
	"errors"
	"fmt"
)

// Error codes for the recoverable failure taxonomy. Every error the engine
// returns to a caller is retryable with corrected input or a new session;
// none is fatal to the process.
const (
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeValidation    = "VALIDATION_ERROR"
	ErrCodeState         = "STATE_ERROR"
	ErrCodeAuthorization = "AUTHORIZATION_ERROR"
	ErrCodeStore         = "STORE_ERROR"
)

// NotFoundError reports an unknown session, question, or resume token. An
// expired store entry is indistinguishable from one that never existed.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}

// ValidationError reports a malformed response, an unsupported variant, or a
// response whose type does not match the question's declared type.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// StateError reports a mutation attempted against a session in the wrong
// lifecycle state, such as recording a response on a completed session.
type StateError struct {
	SessionID string
	Message   string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("session %s: %s", e.SessionID, e.Message)
}

// AuthorizationError reports a bad or expired resume token.
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string {
	return e.Message
}

// StoreError wraps a failure of the backing key-value store, including a
// breaker-open fast failure. Callers may retry after backoff.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func NewNotFound(resource, id string) error {
	return &NotFoundError{Resource: resource, ID: id}
}

func NewValidation(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

func NewState(sessionID, message string) error {
	return &StateError{SessionID: sessionID, Message: message}
}

func NewAuthorization(message string) error {
	return &AuthorizationError{Message: message}
}

func NewStoreError(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}

// ErrorCode maps an error to its taxonomy code for transport-layer responses
// and structured logs.
func ErrorCode(err error) string {
	var nf *NotFoundError
	var ve *ValidationError
	var se *StateError
	var ae *AuthorizationError
	var st *StoreError
	switch {
	case errors.As(err, &nf):
		return ErrCodeNotFound
	case errors.As(err, &ve):
		return ErrCodeValidation
	case errors.As(err, &se):
		return ErrCodeState
	case errors.As(err, &ae):
		return ErrCodeAuthorization
	case errors.As(err, &st):
		return ErrCodeStore
	default:
		return "INTERNAL_ERROR"
	}
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
