package blog

import (
	"errors"
	"fmt"
)

// ErrorKind classifies every failure produced at the HTTP boundary.
type ErrorKind int

const (
	// KindTransport covers network failures, timeouts and 5xx responses.
	KindTransport ErrorKind = iota
	// KindAuth covers 401 and 403 responses. Only 401 ends the session.
	KindAuth
	// KindValidation covers the remaining 4xx responses and local input checks.
	KindValidation
	// KindNotFound is a 404.
	KindNotFound
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindAuth:
		return "auth"
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error is the tagged error returned by the API client and resource modules.
// Message holds the server-provided message when there was one; Cause holds
// the underlying transport error or a generic status description.
type Error struct {
	Kind    ErrorKind
	Status  int
	Message string
	Cause   error
}

func (e *Error) Error() string {
	switch {
	case e.Message != "" && e.Status != 0:
		return fmt.Sprintf("%s error (%d): %s", e.Kind, e.Status, e.Message)
	case e.Message != "":
		return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
	case e.Cause != nil:
		return fmt.Sprintf("%s error: %v", e.Kind, e.Cause)
	default:
		return e.Kind.String() + " error"
	}
}

func (e *Error) Unwrap() error { return e.Cause }

// ValidationError builds a KindValidation error for input rejected locally.
func ValidationError(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of err and whether err carries one.
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// IsKind reports whether err is a *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

// IsNotFound reports whether err is a 404 from a single-item fetch.
func IsNotFound(err error) bool {
	return IsKind(err, KindNotFound)
}

// Describe returns the human-readable message for err: the server message,
// then the transport message, then fallback.
func Describe(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	var e *Error
	if errors.As(err, &e) {
		if e.Message != "" {
			return e.Message
		}
		if e.Cause != nil {
			return e.Cause.Error()
		}
		return fallback
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}
