package smartdocs

import (
	"context"
	"encoding/json"

	"smartdocs/internal/hooks"
)

// redactedKeys are dropped from event arguments before they leave the
// dispatching goroutine.
var redactedKeys = map[string]bool{
	"clientSecret": true,
	"ClientSecret": true,
}

// snapshotTap freezes the arguments of each record into redacted JSON and
// forwards the record to its taps. Observers may keep mutating the entities
// after dispatch; the snapshot does not change with them.
type snapshotTap []hooks.Tap

func (t snapshotTap) Observe(ctx context.Context, rec hooks.Record) {
	rec.Args = snapshotArgs(rec.Args)
	for _, tap := range t {
		tap.Observe(ctx, rec)
	}
}

func snapshotArgs(args any) json.RawMessage {
	b, err := json.Marshal(args)
	if err != nil {
		return nil
	}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return nil
	}
	out, err := json.Marshal(redact(v))
	if err != nil {
		return nil
	}
	return out
}

func redact(v any) any {
	switch x := v.(type) {
	case map[string]any:
		for k, val := range x {
			if redactedKeys[k] {
				delete(x, k)
				continue
			}
			x[k] = redact(val)
		}
	case []any:
		for i := range x {
			x[i] = redact(x[i])
		}
	}
	return v
}
