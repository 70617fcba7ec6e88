package server

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubBroadcastReachesClients(t *testing.T) {
	srv, _ := newTestServer(t)
	go srv.hub.Run()
	defer srv.hub.Stop()

	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	if resp != nil {
		resp.Body.Close()
	}
	defer conn.Close()

	require.Eventually(t, func() bool {
		srv.hub.mu.RLock()
		defer srv.hub.mu.RUnlock()
		return len(srv.hub.clients) == 1
	}, time.Second, 10*time.Millisecond)

	srv.hub.Broadcast(Event{Type: "hands_updated", TotalHands: 3})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"hands_updated","total_hands":3}`, string(msg))
}

func TestHubUnregistersOnClose(t *testing.T) {
	srv, _ := newTestServer(t)
	go srv.hub.Run()
	defer srv.hub.Stop()

	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	if resp != nil {
		resp.Body.Close()
	}

	require.Eventually(t, func() bool {
		srv.hub.mu.RLock()
		defer srv.hub.mu.RUnlock()
		return len(srv.hub.clients) == 1
	}, time.Second, 10*time.Millisecond)

	conn.Close()

	require.Eventually(t, func() bool {
		srv.hub.mu.RLock()
		defer srv.hub.mu.RUnlock()
		return len(srv.hub.clients) == 0
	}, time.Second, 10*time.Millisecond)
}
