package hooks

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_SealRejectsRegistration(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, RegisterFunc(r, ModelUpdate, func(context.Context, ModelUpdateArgs) error { return nil }))
	r.Seal()
	assert.True(t, r.Sealed())
	err := RegisterFunc(r, ModelUpdate, func(context.Context, ModelUpdateArgs) error { return nil })
	assert.True(t, errors.Is(err, ErrSealed))
	assert.ErrorIs(t, r.AddTap(NewRecorder(1)), ErrSealed)
	assert.Equal(t, 1, r.Count(ModelUpdate.Name()))
	// dispatch still works
	assert.NoError(t, Dispatch(context.Background(), r, ModelUpdate, ModelUpdateArgs{}))
}

func TestRegistry_TypeMismatchRejected(t *testing.T) {
	r := NewRegistry()
	a := NewEvent[int]("custom.event")
	b := NewEvent[string]("custom.event")
	require.NoError(t, RegisterFunc(r, a, func(context.Context, int) error { return nil }))
	err := RegisterFunc(r, b, func(context.Context, string) error { return nil })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "custom.event")
}

func TestRegistry_NamesSorted(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, RegisterFunc(r, RevisionSavePost, func(context.Context, RevisionSaveArgs) error { return nil }))
	require.NoError(t, RegisterFunc(r, MethodSavePre, func(context.Context, MethodSaveArgs) error { return nil }))
	assert.Equal(t, []string{"method.save.pre", "revision.save.post"}, r.Names())
}

func TestRegistry_ConcurrentDispatch(t *testing.T) {
	r := NewRegistry()
	var mu sync.Mutex
	n := 0
	require.NoError(t, RegisterFunc(r, ModelUpdate, func(context.Context, ModelUpdateArgs) error {
		mu.Lock()
		n++
		mu.Unlock()
		return nil
	}))
	r.Seal()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = Dispatch(context.Background(), r, ModelUpdate, ModelUpdateArgs{})
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, n)
}

func TestCatalog_ListsEveryEventOnce(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, RegisterFunc(r, MethodSavePre, func(context.Context, MethodSaveArgs) error { return nil }))
	infos := Catalog(r)
	seen := map[string]bool{}
	for _, h := range infos {
		assert.False(t, seen[h.Name], "duplicate %s", h.Name)
		seen[h.Name] = true
		switch h.Name {
		case "method.save.pre":
			assert.Equal(t, 1, h.Observers)
		case "model.render.alter":
			assert.True(t, h.Mutating)
		default:
			assert.False(t, h.Mutating)
		}
	}
	assert.Len(t, infos, 38)
	for _, name := range []string{"model.update", "template.reverted", "model.import", "security.delete.post", "import.methods.save.pre"} {
		assert.True(t, seen[name], name)
	}
}
