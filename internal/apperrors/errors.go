// Package apperrors classifies the failures a sync run can hit. Each kind maps to
// a propagation rule: transport errors are absorbed at the fetch boundary, every
// other kind aborts the run.
package apperrors

import (
	"errors"
	"fmt"
)

// Kind is a string-based error code, readable in logs and run summaries.
type Kind string

const (
	// KindTransport marks a failed page fetch. It truncates a single listing.
	KindTransport Kind = "TRANSPORT_ERROR"

	// KindReferentialIntegrity marks a child persisted before its parent.
	KindReferentialIntegrity Kind = "REFERENTIAL_INTEGRITY_VIOLATION"

	// KindConfiguration marks a missing or invalid configuration value.
	KindConfiguration Kind = "INVALID_CONFIGURATION"

	// KindDatabase marks any other store failure.
	KindDatabase Kind = "DATABASE_ERROR"

	// KindUnexpected is the fallback for unclassified errors.
	KindUnexpected Kind = "UNEXPECTED"
)

// Error carries a Kind and the operation that failed alongside the cause.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New wraps err with the given kind. A nil err yields nil.
func New(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

// Transport wraps err as a transport failure.
func Transport(op string, err error) error {
	return New(KindTransport, op, err)
}

// ReferentialIntegrity wraps err as a foreign key violation.
func ReferentialIntegrity(op string, err error) error {
	return New(KindReferentialIntegrity, op, err)
}

// Configuration builds a configuration error from a message.
func Configuration(format string, args ...any) error {
	return &Error{Kind: KindConfiguration, Err: fmt.Errorf(format, args...)}
}

// Database wraps err as a generic store failure.
func Database(op string, err error) error {
	return New(KindDatabase, op, err)
}

// KindOf returns the kind of the outermost *Error in the chain, or KindUnexpected.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnexpected
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	if err == nil {
		return false
	}
	return KindOf(err) == kind
}
