// internal/app/system/apperr/apperr.go

// Package apperr defines the typed errors raised by workflow engines and
// stores, and the mapping from each type to an HTTP status code.
//
// The taxonomy:
//   - Validation: malformed or missing input → 400
//   - NotFound: referenced entity absent → 404
//   - Authorization: authenticated but not permitted → 403
//   - Conflict: business rule violated given current state → 400
//
// All four are terminal from the engine's perspective; nothing retries.
// Anything else that reaches the HTTP layer is treated as an internal
// error and surfaces as a generic 500.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind discriminates the error categories.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindAuthorization
	KindConflict
)

// Error is a typed application error with a caller-facing message.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

// Validation reports bad or missing input.
func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// NotFound reports an absent entity, e.g. NotFound("group").
func NotFound(what string) *Error {
	return &Error{Kind: KindNotFound, Message: what + " not found"}
}

// Authorization reports a caller that lacks rights to the resource.
func Authorization(format string, args ...any) *Error {
	return &Error{Kind: KindAuthorization, Message: fmt.Sprintf(format, args...)}
}

// Conflict reports a state-based rule violation (full, already applied,
// inactive).
func Conflict(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the Kind of err, or KindInternal if err is not an
// apperr (storage failures, context cancellations, etc.).
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

// IsValidation reports whether err is a Validation error.
func IsValidation(err error) bool { return KindOf(err) == KindValidation }

// IsNotFound reports whether err is a NotFound error.
func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }

// IsAuthorization reports whether err is an Authorization error.
func IsAuthorization(err error) bool { return KindOf(err) == KindAuthorization }

// IsConflict reports whether err is a Conflict error.
func IsConflict(err error) bool { return KindOf(err) == KindConflict }

// StatusCode maps an error to the HTTP status the JSON layer returns.
func StatusCode(err error) int {
	switch KindOf(err) {
	case KindValidation, KindConflict:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindAuthorization:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
