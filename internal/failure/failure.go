// Package failure defines the error taxonomy shared by the stores and the
// transfer engine. Callers branch on it with errors.Is or KindOf.
package failure

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument marks malformed or missing input.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrEntityNotFound marks an id with no matching row.
	ErrEntityNotFound = errors.New("entity not found")

	// ErrInsufficientBalance marks a transfer the sender cannot cover.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrServiceFailure wraps storage faults and internal-consistency anomalies.
	ErrServiceFailure = errors.New("service failure")
)

type Kind int

const (
	KindUnknown Kind = iota
	KindInvalidArgument
	KindEntityNotFound
	KindInsufficientBalance
	KindServiceFailure
)

func (k Kind) String() string {
	switch k {
	case KindInvalidArgument:
		return "invalid_argument"
	case KindEntityNotFound:
		return "entity_not_found"
	case KindInsufficientBalance:
		return "insufficient_balance"
	case KindServiceFailure:
		return "service_failure"
	default:
		return "unknown"
	}
}

// Error carries a kind, a message and an optional cause.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.sentinel(), e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.sentinel(), e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is makes every *Error match the sentinel of its kind.
func (e *Error) Is(target error) bool {
	return target == e.sentinel()
}

func (e *Error) sentinel() error {
	switch e.Kind {
	case KindInvalidArgument:
		return ErrInvalidArgument
	case KindEntityNotFound:
		return ErrEntityNotFound
	case KindInsufficientBalance:
		return ErrInsufficientBalance
	default:
		return ErrServiceFailure
	}
}

func InvalidArgument(format string, args ...any) error {
	return &Error{Kind: KindInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) error {
	return &Error{Kind: KindEntityNotFound, Message: fmt.Sprintf(format, args...)}
}

func InsufficientBalance(format string, args ...any) error {
	return &Error{Kind: KindInsufficientBalance, Message: fmt.Sprintf(format, args...)}
}

// Service wraps cause as a service failure. A nil cause is allowed for
// internal-consistency anomalies that have no underlying driver error.
func Service(cause error, format string, args ...any) error {
	return &Error{Kind: KindServiceFailure, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// KindOf reports the taxonomy kind of err, KindUnknown for foreign errors.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrInvalidArgument):
		return KindInvalidArgument
	case errors.Is(err, ErrEntityNotFound):
		return KindEntityNotFound
	case errors.Is(err, ErrInsufficientBalance):
		return KindInsufficientBalance
	case errors.Is(err, ErrServiceFailure):
		return KindServiceFailure
	default:
		return KindUnknown
	}
}

// Classified reports whether err already belongs to the taxonomy.
func Classified(err error) bool {
	return KindOf(err) != KindUnknown
}
