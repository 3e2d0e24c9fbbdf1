package ws

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	diag "github.com/coreman2200/smart-lamp/internal/diagnostics"
	"github.com/coreman2200/smart-lamp/internal/render"
)

const writeWait = 200 * time.Millisecond

// Hub serves the live preview: frames on /ws, diagnostics on /diag and a
// JSON health report on /health. It never feeds anything back to the lamp.
type Hub struct {
	mu         sync.RWMutex
	width      int
	height     int
	quirk      int
	driver     string
	effect     string
	brightness uint8

	rgb       []byte
	frameID   uint64
	startTime time.Time

	clients     map[*websocket.Conn]bool
	diagClients map[*websocket.Conn]bool
	upgrader    websocket.Upgrader
}

func NewHub(width, height, quirk int, driver string) *Hub {
	return &Hub{
		width:       width,
		height:      height,
		quirk:       quirk,
		driver:      driver,
		rgb:         make([]byte, width*height*3),
		startTime:   time.Now(),
		clients:     map[*websocket.Conn]bool{},
		diagClients: map[*websocket.Conn]bool{},
		upgrader:    websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
	}
}

type frame struct {
	T       int64  `json:"t"`
	FrameID uint64 `json:"frame_id"`
	Effect  string `json:"effect"`
	W       int    `json:"w"`
	H       int    `json:"h"`
	RGB     []byte `json:"rgb"`
}

type topology struct {
	Type        string `json:"type"`
	W           int    `json:"w"`
	H           int    `json:"h"`
	QuirkColumn int    `json:"quirk_column"`
	Driver      string `json:"driver"`
}

// Publish records a frame in physical LED order and sends it to every
// /ws client.
func (h *Hub) Publish(effect string, brightness uint8, leds []render.Color) {
	h.mu.Lock()
	if len(h.rgb) != len(leds)*3 {
		h.rgb = make([]byte, len(leds)*3)
	}
	for i, c := range leds {
		h.rgb[i*3+0], h.rgb[i*3+1], h.rgb[i*3+2] = c.R, c.G, c.B
	}
	h.frameID++
	h.effect = effect
	h.brightness = brightness
	b, err := json.Marshal(frame{
		T:       time.Now().UnixNano(),
		FrameID: h.frameID,
		Effect:  effect,
		W:       h.width,
		H:       h.height,
		RGB:     h.rgb,
	})
	h.mu.Unlock()
	if err != nil {
		log.Debug().Err(err).Msg("encode frame")
		return
	}
	h.broadcast(h.clients, b)
}

// Report implements diagnostics.Reporter.
func (h *Hub) Report(d diag.Diagnostic) {
	b, err := json.Marshal(d)
	if err != nil {
		return
	}
	h.broadcast(h.diagClients, b)
}

func (h *Hub) broadcast(set map[*websocket.Conn]bool, b []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range set {
		c.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.WriteMessage(websocket.TextMessage, b); err != nil {
			log.Debug().Err(err).Msg("write preview")
		}
	}
}

func (h *Hub) FrameID() uint64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.frameID
}

func (h *Hub) HandleFramesWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	h.mu.Lock()
	h.sendTopology(conn)
	h.clients[conn] = true
	h.mu.Unlock()
	go h.drain(conn, h.clients)
}

func (h *Hub) HandleDiagWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	h.mu.Lock()
	h.diagClients[conn] = true
	h.mu.Unlock()
	go h.drain(conn, h.diagClients)
}

// drain discards client messages until the connection drops.
func (h *Hub) drain(conn *websocket.Conn, set map[*websocket.Conn]bool) {
	defer func() {
		h.mu.Lock()
		delete(set, conn)
		h.mu.Unlock()
		conn.Close()
	}()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) HandleHealth(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	w.Header().Set("Content-Type", "application/json")
	resp := map[string]any{
		"frame_id":   h.frameID,
		"uptime_s":   time.Since(h.startTime).Seconds(),
		"count":      h.width * h.height,
		"effect":     h.effect,
		"brightness": h.brightness,
	}
	_ = json.NewEncoder(w).Encode(resp)
}

// Routes mounts the hub's handlers.
func (h *Hub) Routes(mux *http.ServeMux) {
	mux.HandleFunc("/ws", h.HandleFramesWS)
	mux.HandleFunc("/diag", h.HandleDiagWS)
	mux.HandleFunc("/health", h.HandleHealth)
}

// sendTopology must be called with h.mu held.
func (h *Hub) sendTopology(conn *websocket.Conn) {
	b, _ := json.Marshal(topology{
		Type:        "topology",
		W:           h.width,
		H:           h.height,
		QuirkColumn: h.quirk,
		Driver:      h.driver,
	})
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	_ = conn.WriteMessage(websocket.TextMessage, b)
}
