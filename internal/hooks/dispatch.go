package hooks

import (
	"context"
	"time"
)

// Dispatch invokes every observer of e, in registration order, with the same
// args, on the calling goroutine. The first observer error stops the dispatch
// and is returned as *ObserverError. With no observers Dispatch is a no-op.
// A nil Registry dispatches nothing.
func Dispatch[A any](ctx context.Context, r *Registry, e Event[A], args A) error {
	start := time.Now()
	var err error
	for i, o := range Observers(r, e) {
		if herr := o.Handle(ctx, args); herr != nil {
			err = &ObserverError{Event: e.name, Index: i, Err: herr}
			break
		}
	}
	observeDispatch(e.name, err, start)
	notifyTaps(ctx, r, e.name, args, err)
	return err
}

// Alter threads content through every alterer of e. Each alterer receives the
// previous one's output; the final buffer is returned. On error the content
// as of the failing alterer is returned along with the error.
func Alter[A any](ctx context.Context, r *Registry, e AlterEvent[A], content string, args A) (string, error) {
	start := time.Now()
	var err error
	for i, a := range Alterers(r, e) {
		if aerr := a.Alter(ctx, &content, args); aerr != nil {
			err = &ObserverError{Event: e.name, Index: i, Err: aerr}
			break
		}
	}
	observeDispatch(e.name, err, start)
	notifyTaps(ctx, r, e.name, args, err)
	return content, err
}

func notifyTaps(ctx context.Context, r *Registry, name string, args any, err error) {
	taps := r.tapsSnapshot()
	if len(taps) == 0 {
		return
	}
	rec := Record{Name: name, Args: args, Err: err, At: time.Now()}
	for _, t := range taps {
		t.Observe(ctx, rec)
	}
}
