package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"smartdocs/pkg/types"
)

const (
	eventBuffer  = 64
	writeTimeout = 5 * time.Second
	pingInterval = 30 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// events streams dispatched hook records as JSON text frames. The optional
// prefix query parameter keeps only events whose name starts with it.
func (h *handlers) events(w http.ResponseWriter, r *http.Request) {
	prefix := r.URL.Query().Get("prefix")
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		zlog.Debug().Err(err).Msg("event stream upgrade failed")
		return
	}
	defer conn.Close()

	recs, unsubscribe := h.svc.SubscribeEvents(eventBuffer)
	defer unsubscribe()
	eventStreamClients.Inc()
	defer eventStreamClients.Dec()

	ctx, cancel := requestContext(r)
	defer cancel()

	// Reads only serve close and pong frames; the client never sends data.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(pingInterval)
	defer ping.Stop()
	for {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
				time.Now().Add(writeTimeout))
			return
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout)); err != nil {
				return
			}
		case rec, ok := <-recs:
			if !ok {
				return
			}
			if !matches(rec, prefix) {
				continue
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteJSON(rec); err != nil {
				eventStreamWriteErrors.Inc()
				zlog.Debug().Err(err).Msg("event stream write failed")
				return
			}
		}
	}
}

func matches(rec types.HookRecord, prefix string) bool {
	return prefix == "" || strings.HasPrefix(rec.Name, prefix)
}
