package hooks

import (
	"context"
	"sort"
	"sync"
)

// Tap sees every dispatched event after its typed observers ran, including
// the outcome. Taps must not block; their failures are not reported.
type Tap interface {
	Observe(ctx context.Context, rec Record)
}

// Registry maps event names to ordered observer lists.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string][]any
	taps     []Tap
	sealed   bool
}

// NewRegistry returns an empty, unsealed Registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string][]any)}
}

// Register appends o to the observers of e. The same observer may be
// registered more than once and is then invoked once per registration.
func Register[A any](r *Registry, e Event[A], o Observer[A]) error {
	return r.add(e.name, o, func(h any) bool {
		_, ok := h.(Observer[A])
		return ok
	})
}

// RegisterFunc is Register for a plain function.
func RegisterFunc[A any](r *Registry, e Event[A], fn func(ctx context.Context, args A) error) error {
	return Register[A](r, e, ObserverFunc[A](fn))
}

// RegisterAlter appends a to the alterers of e.
func RegisterAlter[A any](r *Registry, e AlterEvent[A], a Alterer[A]) error {
	return r.add(e.name, a, func(h any) bool {
		_, ok := h.(Alterer[A])
		return ok
	})
}

// RegisterAlterFunc is RegisterAlter for a plain function.
func RegisterAlterFunc[A any](r *Registry, e AlterEvent[A], fn func(ctx context.Context, content *string, args A) error) error {
	return RegisterAlter[A](r, e, AltererFunc[A](fn))
}

func (r *Registry) add(name string, h any, sameType func(any) bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sealed {
		return ErrSealed
	}
	if cur := r.handlers[name]; len(cur) > 0 && !sameType(cur[0]) {
		return typeMismatchError{name: name}
	}
	r.handlers[name] = append(r.handlers[name], h)
	return nil
}

// AddTap attaches a wildcard observer.
func (r *Registry) AddTap(t Tap) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sealed {
		return ErrSealed
	}
	r.taps = append(r.taps, t)
	return nil
}

// Seal makes the registry read-only. Dispatch is unaffected.
func (r *Registry) Seal() {
	r.mu.Lock()
	r.sealed = true
	r.mu.Unlock()
}

// Sealed reports whether Seal was called.
func (r *Registry) Sealed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sealed
}

// Lookup returns a copy of the handlers registered for name, in registration
// order. The result is empty, never nil, when nothing is registered.
func (r *Registry) Lookup(name string) []any {
	if r == nil {
		return []any{}
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]any, len(r.handlers[name]))
	copy(out, r.handlers[name])
	return out
}

// Count returns the number of handlers registered for name.
func (r *Registry) Count(name string) int {
	if r == nil {
		return 0
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.handlers[name])
}

// Names returns the sorted names that have at least one handler.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.handlers))
	for n := range r.handlers {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Observers returns the typed observers of e in registration order.
func Observers[A any](r *Registry, e Event[A]) []Observer[A] {
	hs := r.Lookup(e.name)
	out := make([]Observer[A], 0, len(hs))
	for _, h := range hs {
		if o, ok := h.(Observer[A]); ok {
			out = append(out, o)
		}
	}
	return out
}

// Alterers returns the typed alterers of e in registration order.
func Alterers[A any](r *Registry, e AlterEvent[A]) []Alterer[A] {
	hs := r.Lookup(e.name)
	out := make([]Alterer[A], 0, len(hs))
	for _, h := range hs {
		if a, ok := h.(Alterer[A]); ok {
			out = append(out, a)
		}
	}
	return out
}

func (r *Registry) tapsSnapshot() []Tap {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.taps) == 0 {
		return nil
	}
	out := make([]Tap, len(r.taps))
	copy(out, r.taps)
	return out
}
