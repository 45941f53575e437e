package smartdocs

import (
	"errors"

	"smartdocs/internal/hooks"
	"smartdocs/internal/store"
)

// notFoundError reports a missing entity.
type notFoundError struct{ kind, key string }

func (e notFoundError) Error() string { return e.kind + " not found: " + e.key }

// ErrNotFound returns an error for a missing entity of the given kind.
func ErrNotFound(kind, key string) error { return notFoundError{kind: kind, key: key} }

// IsNotFound reports whether err indicates a missing entity.
func IsNotFound(err error) bool {
	var nf notFoundError
	return errors.As(err, &nf) || errors.Is(err, store.ErrNotFound)
}

// invalidError signals a record or request that failed validation (400).
type invalidError struct {
	msg string
	err error
}

func (e invalidError) Error() string {
	if e.err != nil {
		return e.msg + ": " + e.err.Error()
	}
	return e.msg
}

func (e invalidError) Unwrap() error { return e.err }

// ErrInvalid wraps a validation failure.
func ErrInvalid(msg string, err error) error { return invalidError{msg: msg, err: err} }

// IsInvalid reports whether err is a validation failure.
func IsInvalid(err error) bool {
	var ie invalidError
	return errors.As(err, &ie)
}

// conflictError signals a uniqueness violation, e.g. a duplicate model name.
type conflictError struct{ msg string }

func (e conflictError) Error() string { return e.msg }

// IsConflict reports whether err indicates a uniqueness violation.
func IsConflict(err error) bool {
	var ce conflictError
	return errors.As(err, &ce)
}

// IsRejected reports whether an observer failed the operation.
func IsRejected(err error) bool {
	_, ok := hooks.IsObserverError(err)
	return ok
}

// lookupErr maps a store miss to ErrNotFound and passes other errors through.
func lookupErr(err error, kind, key string) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound(kind, key)
	}
	return err
}
