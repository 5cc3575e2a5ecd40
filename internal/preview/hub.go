package preview

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/reflow-ui/reflow/internal/metrics"
	"github.com/reflow-ui/reflow/pkg/vdom"
)

// MessageType labels an outbound hub message.
type MessageType string

const (
	TypeSnapshot MessageType = "snapshot"
	TypeError    MessageType = "error"
)

// Message is sent to preview clients via WebSocket.
type Message struct {
	Type  MessageType `json:"type"`
	HTML  string      `json:"html,omitempty"`
	Error string      `json:"error,omitempty"`
}

// eventFrame is an inbound event from a preview client, addressed to a
// live node by its data-rid.
type eventFrame struct {
	Type  string `json:"type"`
	Node  int    `json:"node"`
	Event string `json:"event"`
	Value string `json:"value,omitempty"`
	Key   string `json:"key,omitempty"`
}

// client is one connected preview browser. Writes go through write so a
// broadcast from another client's dispatch goroutine and a reply from this
// client's own reader never hit the connection concurrently; the websocket
// package permits only one writer at a time.
type client struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
}

func (c *client) write(data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// Hub manages preview WebSocket connections. New clients receive the
// current snapshot immediately; subsequent snapshots broadcast to all.
// Inbound event frames are forwarded to the dispatch callback.
type Hub struct {
	log      zerolog.Logger
	upgrader websocket.Upgrader

	// dispatch delivers a client event to the mounted tree.
	dispatch func(node int, ev vdom.Event) error

	// snapshot returns the current HTML to seed a new client.
	snapshot func() string

	mu      sync.RWMutex
	clients map[*client]bool
}

// NewHub creates a hub. dispatch and snapshot must be non-nil.
func NewHub(log zerolog.Logger, dispatch func(node int, ev vdom.Event) error, snapshot func() string) *Hub {
	return &Hub{
		log:      log,
		dispatch: dispatch,
		snapshot: snapshot,
		clients:  make(map[*client]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				return true // local preview tool
			},
		},
	}
}

// HandleWebSocket upgrades the connection, seeds it with the current
// snapshot, and pumps inbound event frames until the client disconnects.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, req *http.Request) {
	conn, err := h.upgrader.Upgrade(w, req, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	c := &client{conn: conn}
	h.mu.Lock()
	h.clients[c] = true
	h.mu.Unlock()
	metrics.ClientConnected()
	h.log.Debug().Str("remote", conn.RemoteAddr().String()).Msg("preview client connected")

	h.send(c, Message{Type: TypeSnapshot, HTML: h.snapshot()})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			break
		}

		var frame eventFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			h.log.Warn().Err(err).Msg("malformed event frame")
			continue
		}
		if frame.Type != "event" {
			continue
		}

		ev := vdom.Event{Type: frame.Event, Value: frame.Value, Key: frame.Key}
		if err := h.dispatch(frame.Node, ev); err != nil {
			h.log.Warn().Err(err).Int("node", frame.Node).Str("event", frame.Event).Msg("event dispatch failed")
			h.send(c, Message{Type: TypeError, Error: err.Error()})
		}
	}

	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
	metrics.ClientDisconnected()
	conn.Close()
	h.log.Debug().Msg("preview client disconnected")
}

// Broadcast sends a snapshot to all connected clients.
func (h *Hub) Broadcast(html string) {
	h.broadcast(Message{Type: TypeSnapshot, HTML: html})
	metrics.RecordSnapshot()
}

// BroadcastError pushes an error message to all connected clients.
func (h *Hub) BroadcastError(errMsg string) {
	h.broadcast(Message{Type: TypeError, Error: errMsg})
}

func (h *Hub) broadcast(msg Message) {
	h.mu.RLock()
	clients := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		h.send(c, msg)
	}
}

// send writes one message, dropping the client on failure.
func (h *Hub) send(c *client, msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	if err := c.write(data); err != nil {
		h.mu.Lock()
		delete(h.clients, c)
		h.mu.Unlock()
		c.conn.Close()
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close disconnects all clients.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		c.conn.Close()
		delete(h.clients, c)
	}
}
