// Package apperr defines the closed set of error kinds surfaced at the
// HTTP boundary. Handlers and middleware classify failures by kind so
// clients can react without parsing message strings.
package apperr

import (
	"errors"
	"fmt"
)

// Kind tags an error with its boundary classification.
type Kind string

const (
	// KindValidation marks user-fixable input errors.
	KindValidation Kind = "validation"

	// KindNotFound marks lookups for entities that do not exist.
	KindNotFound Kind = "not_found"

	// KindUpstream marks infrastructure failures (database, storage, LLM).
	KindUpstream Kind = "upstream"

	// KindUnauthorized marks authentication and authorization failures,
	// including missing sessions, unverified 2FA and bad CSRF tokens.
	KindUnauthorized Kind = "unauthorized"

	// KindRateLimited marks requests rejected by a rate limiter.
	KindRateLimited Kind = "rate_limited"
)

// Error is a tagged error carrying a sanitized, client-safe message.
// The wrapped cause (if any) is for server-side logs only.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes the cause for errors.Is/As chains.
func (e *Error) Unwrap() error { return e.cause }

// Validation creates a validation-kind error with the given client message.
func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

// NotFound creates a not-found-kind error for the named entity.
func NotFound(entity string) *Error {
	return &Error{Kind: KindNotFound, Message: entity + " not found"}
}

// Upstream wraps an infrastructure failure. The cause is kept for logging;
// the message is what the client sees.
func Upstream(msg string, cause error) *Error {
	return &Error{Kind: KindUpstream, Message: msg, cause: cause}
}

// KindOf returns the kind of err if it is (or wraps) an *Error, and
// KindUpstream otherwise. Unclassified errors are treated as
// infrastructure failures so raw messages never leak to clients.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindUpstream
}

// MessageOf returns the client-safe message for err. Unclassified errors
// collapse to a generic message.
func MessageOf(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Message
	}
	return "unexpected error"
}
