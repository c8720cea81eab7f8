package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// sendBufferSize is the per-connection outbound queue; slow clients are
// dropped rather than blocking room fan-out
const sendBufferSize = 32

// MessageHandler receives decoded-enough traffic from the hub: raw frames
// from the read pump, and connection-loss notifications.
type MessageHandler interface {
	HandleMessage(connID, clientID string, raw []byte)
	HandleDisconnect(connID, clientID string)
}

// Hub tracks live connections and room membership, and provides the two
// delivery primitives the room layer needs: send to one connection, and
// send to every connection joined to a room.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client            // connID -> client
	rooms   map[string]map[string]*Client // roomCode -> connID -> client
	handler MessageHandler
}

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*Client),
		rooms:   make(map[string]map[string]*Client),
	}
}

// SetHandler installs the message handler. Must be called before ServeWS.
func (h *Hub) SetHandler(handler MessageHandler) {
	h.handler = handler
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // admission policy is an external concern
	},
}

// ServeWS upgrades an HTTP request to a WebSocket connection and starts the
// per-connection goroutines. The client identity comes from the clientId
// query parameter; connections without one get a fresh identity.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	// Upgrade replies to the client itself on failure
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}

	clientID := r.URL.Query().Get("clientId")
	if clientID == "" {
		clientID = uuid.NewString()
	}

	client := &Client{
		ID:       uuid.NewString(),
		ClientID: clientID,
		conn:     conn,
		send:     make(chan []byte, sendBufferSize),
		hub:      h,
	}

	h.mu.Lock()
	h.clients[client.ID] = client
	h.mu.Unlock()

	log.Printf("Client connected: conn=%s client=%s", client.ID, clientID)

	go client.writePump()
	go client.readPump()
}

// drop unregisters a closed connection and notifies the handler
func (h *Hub) drop(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c.ID]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.clients, c.ID)
	for code, members := range h.rooms {
		if _, ok := members[c.ID]; ok {
			delete(members, c.ID)
			if len(members) == 0 {
				delete(h.rooms, code)
			}
		}
	}
	close(c.send)
	h.mu.Unlock()

	log.Printf("Client disconnected: conn=%s client=%s", c.ID, c.ClientID)
	h.handler.HandleDisconnect(c.ID, c.ClientID)
}

// Join adds a connection to a room's fan-out set
func (h *Hub) Join(connID, code string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	client, ok := h.clients[connID]
	if !ok {
		return
	}
	members, ok := h.rooms[code]
	if !ok {
		members = make(map[string]*Client)
		h.rooms[code] = members
	}
	members[connID] = client
}

// Leave removes a connection from a room's fan-out set
func (h *Hub) Leave(connID, code string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if members, ok := h.rooms[code]; ok {
		delete(members, connID)
		if len(members) == 0 {
			delete(h.rooms, code)
		}
	}
}

// CloseRoom drops a room's entire fan-out set. Connections stay registered;
// they just stop receiving traffic addressed to that code.
func (h *Hub) CloseRoom(code string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.rooms, code)
}

// SendTo delivers one event to one connection. Unknown connections are a
// no-op: the grace-period machinery keeps identities alive, not handles.
func (h *Hub) SendTo(connID, event string, payload any) {
	message := encodeEvent(event, payload)
	if message == nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	if client, ok := h.clients[connID]; ok {
		client.enqueue(message)
	}
}

// Broadcast delivers one event to every connection joined to the room
func (h *Hub) Broadcast(code, event string, payload any) {
	message := encodeEvent(event, payload)
	if message == nil {
		return
	}

	// Enqueue is non-blocking, so holding the read lock across the room
	// fan-out is safe and keeps sends ordered against connection teardown.
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.rooms[code] {
		client.enqueue(message)
	}
}

// ConnCount returns the number of live connections
func (h *Hub) ConnCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// enqueue hands a frame to the write pump, dropping it if the client's
// queue is full
func (c *Client) enqueue(message []byte) {
	select {
	case c.send <- message:
	default:
		log.Printf("dropping frame for slow client conn=%s", c.ID)
	}
}

func encodeEvent(event string, payload any) []byte {
	message, err := json.Marshal(struct {
		Type string `json:"type"`
		Data any    `json:"data"`
	}{Type: event, Data: payload})
	if err != nil {
		log.Printf("encodeEvent: marshal %s: %v", event, err)
		return nil
	}
	return message
}
