package httpapi

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartdocs/pkg/types"
)

func dialEvents(t *testing.T, srv *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/events" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readRecord(t *testing.T, conn *websocket.Conn) types.HookRecord {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var rec types.HookRecord
	require.NoError(t, conn.ReadJSON(&rec))
	return rec
}

// waitForClients blocks until the handler subscribed, so no event is
// dispatched before the stream listens.
func waitForClients(t *testing.T, svc interface{ EventSubscribers() int }, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return svc.EventSubscribers() >= n }, 2*time.Second, 10*time.Millisecond)
}

func TestEventStream(t *testing.T) {
	svc := newTestService(t)
	srv := httptest.NewServer(NewMux(svc))
	defer srv.Close()

	all := dialEvents(t, srv, "")
	models := dialEvents(t, srv, "?prefix=model.update")
	waitForClients(t, svc, 2)

	m := types.Model{Name: "weather"}
	require.NoError(t, svc.SaveModel(context.Background(), &m))

	var names []string
	for i := 0; i < 3; i++ {
		names = append(names, readRecord(t, all).Name)
	}
	assert.Equal(t, []string{"model.save.pre", "model.save.post", "model.update"}, names)

	rec := readRecord(t, models)
	assert.Equal(t, "model.update", rec.Name)
	assert.Contains(t, string(mustJSON(t, rec.Args)), m.UUID)
}

func TestEventStream_ShutdownClosesClients(t *testing.T) {
	svc := newTestService(t)
	ctx, cancel := context.WithCancel(context.Background())
	SetBaseContext(ctx)
	defer SetBaseContext(nil)
	srv := httptest.NewServer(NewMux(svc))
	defer srv.Close()

	conn := dialEvents(t, srv, "")
	waitForClients(t, svc, 1)
	cancel()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	var ce *websocket.CloseError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, websocket.CloseGoingAway, ce.Code)
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}
