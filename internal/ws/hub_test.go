package ws

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	diag "github.com/coreman2200/smart-lamp/internal/diagnostics"
	"github.com/coreman2200/smart-lamp/internal/render"
)

func newServer(t *testing.T, h *Hub) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	h.Routes(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server, path string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + path
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	return conn
}

func TestFramesStream(t *testing.T) {
	h := NewHub(2, 2, 7, "sim")
	srv := newServer(t, h)
	conn := dial(t, srv, "/ws")

	var top topology
	require.NoError(t, conn.ReadJSON(&top))
	assert.Equal(t, "topology", top.Type)
	assert.Equal(t, 2, top.W)
	assert.Equal(t, 7, top.QuirkColumn)
	assert.Equal(t, "sim", top.Driver)

	leds := []render.Color{{R: 1}, {G: 2}, {B: 3}, {R: 4, G: 5, B: 6}}
	h.Publish("colors", 64, leds)

	var f frame
	require.NoError(t, conn.ReadJSON(&f))
	assert.Equal(t, uint64(1), f.FrameID)
	assert.Equal(t, "colors", f.Effect)
	assert.Equal(t, []byte{1, 0, 0, 0, 2, 0, 0, 0, 3, 4, 5, 6}, f.RGB)
}

func TestHealth(t *testing.T) {
	h := NewHub(8, 10, 7, "sim")
	h.Publish("fire", 64, make([]render.Color, 80))
	srv := newServer(t, h)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	var got map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.EqualValues(t, 1, got["frame_id"])
	assert.EqualValues(t, 80, got["count"])
	assert.Equal(t, "fire", got["effect"])
	assert.EqualValues(t, 64, got["brightness"])
}

func TestDiagStream(t *testing.T) {
	h := NewHub(8, 10, 7, "sim")
	srv := newServer(t, h)
	conn := dial(t, srv, "/diag")

	require.Eventually(t, func() bool {
		h.mu.RLock()
		defer h.mu.RUnlock()
		return len(h.diagClients) == 1
	}, time.Second, 5*time.Millisecond)

	h.Report(diag.FlushFailed(errors.New("boom"), "snow", 3))
	var d diag.Diagnostic
	require.NoError(t, conn.ReadJSON(&d))
	assert.Equal(t, "LED.FLUSH", d.Code)
	assert.Equal(t, "boom", d.Detail)
}

func TestClientRemovedOnClose(t *testing.T) {
	h := NewHub(1, 1, -1, "sim")
	srv := newServer(t, h)
	conn := dial(t, srv, "/ws")
	var top topology
	require.NoError(t, conn.ReadJSON(&top))
	conn.Close()

	require.Eventually(t, func() bool {
		h.mu.RLock()
		defer h.mu.RUnlock()
		return len(h.clients) == 0
	}, time.Second, 5*time.Millisecond)
}
