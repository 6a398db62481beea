package scheduler

import (
	"errors"
	"fmt"
)

// Kind is the machine-readable classification of a scheduling error.
type Kind string

const (
	// KindInvalidRequest rejects a request before any catalog call.
	KindInvalidRequest Kind = "InvalidRequest"
	// KindNoActivitiesFound means the candidate pool was empty after
	// filtering. Terminal.
	KindNoActivitiesFound Kind = "NoActivitiesFound"
	// KindCatalogUnavailable means every theme query failed.
	KindCatalogUnavailable Kind = "CatalogUnavailable"
	// KindPartialCatalogFailure means some theme queries failed. Logged,
	// never fatal.
	KindPartialCatalogFailure Kind = "PartialCatalogFailure"
	// KindActivityNotFound marks a dangling activity reference found during
	// resolution or repair.
	KindActivityNotFound Kind = "ActivityNotFound"
	// KindSchedulingExhausted marks a day that ended up under its item
	// target because the budget ran out. Warning only.
	KindSchedulingExhausted Kind = "SchedulingExhausted"
)

// Error is the structured error returned by the engine.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// IsKind reports whether err is a scheduler Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var se *Error
	return errors.As(err, &se) && se.Kind == kind
}

// KindOf extracts the kind from err, or an empty string for foreign errors.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return ""
}
