package model

import "fmt"

// Kind enumerates the error categories the core distinguishes, per the
// error handling design: invalid input is a caller mistake, infeasible
// is a legitimate solver outcome, invariant violations are bugs.
type Kind int

const (
	// KindInvalidInput covers missing fields, non-positive dimensions,
	// fragile+heavy combinations, and an empty placeable_on set.
	KindInvalidInput Kind = iota
	// KindInfeasible means one or more priority packages could not be
	// placed under any configuration the search tried.
	KindInfeasible
	// KindInvariantViolation means the validator found a broken
	// invariant on a layout that claimed to be valid. Always a bug.
	KindInvariantViolation
	// KindCapacityExceeded means weight or volume overflowed during
	// aggregation.
	KindCapacityExceeded
	// KindIOError covers adapter-level I/O failures (file, network).
	KindIOError
	// KindParseError covers adapter-level parse failures (CSV, JSON).
	KindParseError
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "InvalidInput"
	case KindInfeasible:
		return "Infeasible"
	case KindInvariantViolation:
		return "InvariantViolation"
	case KindCapacityExceeded:
		return "CapacityExceeded"
	case KindIOError:
		return "IOError"
	case KindParseError:
		return "ParseError"
	default:
		return "Unknown"
	}
}

// Error is the typed error the core returns so adapters can branch on
// Kind without string matching.
type Error struct {
	Kind    Kind
	Message string
	Err     error // optional wrapped cause
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// NewError builds an *Error of the given kind.
func NewError(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Wrap builds an *Error of the given kind wrapping a lower-level cause.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

// InfeasibleError carries the best-effort layout and unplaced priority
// ids alongside the Infeasible kind, per the error handling design:
// "Returned together with the best-effort layout and the list of
// unplaced priority ids; the caller decides whether to retry."
type InfeasibleError struct {
	*Error
	UnplacedPriorityIDs []string
}

func NewInfeasibleError(unplacedPriorityIDs []string) *InfeasibleError {
	return &InfeasibleError{
		Error:               NewError(KindInfeasible, "priority packages could not be placed"),
		UnplacedPriorityIDs: unplacedPriorityIDs,
	}
}
