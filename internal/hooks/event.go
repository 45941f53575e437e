package hooks

import "context"

// Event is a typed notification key. A carries the argument tuple every
// observer of the event receives.
type Event[A any] struct{ name string }

// NewEvent declares a notification event with a dotted name.
func NewEvent[A any](name string) Event[A] { return Event[A]{name: name} }

// Name returns the dotted event name, e.g. "method.save.pre".
func (e Event[A]) Name() string { return e.name }

// AlterEvent is a typed key for content-altering events.
type AlterEvent[A any] struct{ name string }

// NewAlterEvent declares a content-altering event with a dotted name.
func NewAlterEvent[A any](name string) AlterEvent[A] { return AlterEvent[A]{name: name} }

// Name returns the dotted event name.
func (e AlterEvent[A]) Name() string { return e.name }

// Observer handles one notification event. Returning an error stops the
// dispatch and hands the error to the lifecycle call site.
type Observer[A any] interface {
	Handle(ctx context.Context, args A) error
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc[A any] func(ctx context.Context, args A) error

func (f ObserverFunc[A]) Handle(ctx context.Context, args A) error { return f(ctx, args) }

// Alterer rewrites the content buffer of an AlterEvent in place.
type Alterer[A any] interface {
	Alter(ctx context.Context, content *string, args A) error
}

// AltererFunc adapts a function to Alterer.
type AltererFunc[A any] func(ctx context.Context, content *string, args A) error

func (f AltererFunc[A]) Alter(ctx context.Context, content *string, args A) error {
	return f(ctx, content, args)
}
