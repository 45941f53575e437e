package hooks

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_Limit(t *testing.T) {
	rec := NewRecorder(2)
	for _, n := range []string{"a", "b", "c"} {
		rec.Observe(context.Background(), Record{Name: n})
	}
	assert.Equal(t, []string{"b", "c"}, rec.Names())
	rec.Reset()
	assert.Empty(t, rec.Records())
}

func TestFeed_DeliversAndDrops(t *testing.T) {
	f := NewFeed()
	ch, cancel := f.Subscribe(1)
	require.Equal(t, 1, f.Subscribers())

	f.Observe(context.Background(), Record{Name: "one"})
	f.Observe(context.Background(), Record{Name: "two"}) // buffer full

	select {
	case rec := <-ch:
		assert.Equal(t, "one", rec.Name)
	case <-time.After(time.Second):
		t.Fatal("expected a record")
	}
	assert.Equal(t, uint64(1), f.Dropped())

	cancel()
	cancel()
	assert.Equal(t, 0, f.Subscribers())
	_, open := <-ch
	assert.False(t, open)
}

func TestFeed_AsRegistryTap(t *testing.T) {
	r := NewRegistry()
	f := NewFeed()
	require.NoError(t, r.AddTap(f))
	ch, cancel := f.Subscribe(4)
	defer cancel()
	require.NoError(t, Dispatch(context.Background(), r, TemplateReverted, TemplateRevertedArgs{ModelName: "m"}))
	rec := <-ch
	assert.Equal(t, "template.reverted", rec.Name)
	assert.Equal(t, TemplateRevertedArgs{ModelName: "m"}, rec.Args)
}
