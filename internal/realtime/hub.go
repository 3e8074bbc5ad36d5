package realtime

import (
	"encoding/json"
	"log"
	"sync"
)

// Event is one frame on the chat socket, in either direction.
type Event struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Client is one connected socket. Send is drained by the connection's write
// loop; the hub never writes to the wire itself.
type Client struct {
	ID   string
	Conn *WebSocketConn
	Send chan []byte
}

// Hub owns the process-local room table: project id -> connected clients.
// Membership is rebuilt from scratch on restart, and a disconnect has no
// effect on chat state beyond leaving its rooms.
type Hub struct {
	clients    map[string]*Client
	rooms      map[string]map[string]*Client
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		rooms:      make(map[string]map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

func (h *Hub) RegisterClient(client *Client) {
	h.register <- client
}

func (h *Hub) UnregisterClient(client *Client) {
	h.unregister <- client
}

// JoinRoom adds the client to a project room. Joining twice is a no-op.
func (h *Hub) JoinRoom(room string, client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.rooms[room] == nil {
		h.rooms[room] = make(map[string]*Client)
	}
	h.rooms[room][client.ID] = client
}

// InRoom reports whether the client currently belongs to the room.
func (h *Hub) InRoom(room, clientID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.rooms[room][clientID]
	return ok
}

// SendToClient marshals v and queues it on the client's send channel.
// A full channel drops the payload instead of blocking the caller.
func (h *Hub) SendToClient(client *Client, v interface{}) {
	payload, err := json.Marshal(v)
	if err != nil {
		log.Printf("Error marshaling payload: %v", err)
		return
	}
	select {
	case client.Send <- payload:
	default:
	}
}

// BroadcastToRoom sends v to every member of the room except exceptID.
func (h *Hub) BroadcastToRoom(room, exceptID string, v interface{}) {
	payload, err := json.Marshal(v)
	if err != nil {
		log.Printf("Error marshaling broadcast payload: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for id, client := range h.rooms[room] {
		if id == exceptID {
			continue
		}
		select {
		case client.Send <- payload:
		default:
		}
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ID] = client
			h.mu.Unlock()
			log.Printf("Client registered: %s", client.ID)

		case client := <-h.unregister:
			h.mu.Lock()
			if old, ok := h.clients[client.ID]; ok {
				delete(h.clients, client.ID)
				for room, members := range h.rooms {
					delete(members, client.ID)
					if len(members) == 0 {
						delete(h.rooms, room)
					}
				}
				close(old.Send)
				log.Printf("Client unregistered: %s", client.ID)
			}
			h.mu.Unlock()
		}
	}
}
