package hooks

import (
	"errors"
	"fmt"
)

// ErrSealed is returned when registering on a sealed Registry.
var ErrSealed = errors.New("hooks: registry is sealed")

// ObserverError reports which observer of which event failed.
type ObserverError struct {
	Event string
	// Index is the observer's position in registration order.
	Index int
	Err   error
}

func (e *ObserverError) Error() string {
	return fmt.Sprintf("hook %s: observer #%d: %v", e.Event, e.Index, e.Err)
}

func (e *ObserverError) Unwrap() error { return e.Err }

// IsObserverError reports whether err came from an observer and returns it.
func IsObserverError(err error) (*ObserverError, bool) {
	var oe *ObserverError
	if errors.As(err, &oe) {
		return oe, true
	}
	return nil, false
}

// typeMismatchError is returned when one event name is registered with two
// different argument types.
type typeMismatchError struct{ name string }

func (e typeMismatchError) Error() string {
	return "hooks: event " + e.name + " registered with a different argument type"
}
