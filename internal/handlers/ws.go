package handlers

import (
	"encoding/json"
	"log"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"github.com/Adhisheshu1210/sb-works-backend/internal/chat"
	"github.com/Adhisheshu1210/sb-works-backend/internal/realtime"
)

// SocketHandler reads chat frames off a WebSocket connection and dispatches
// them to the room manager. One goroutine drains the client's send channel to
// the wire; the read loop ends on disconnect, which drops the client from all
// rooms with no other side effects.
type SocketHandler struct {
	Manager *chat.Manager
	Hub     *realtime.Hub
}

func NewSocketHandler(manager *chat.Manager, hub *realtime.Hub) *SocketHandler {
	return &SocketHandler{Manager: manager, Hub: hub}
}

type socketFrame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

func (h *SocketHandler) Handle(conn *websocket.Conn) {
	client := &realtime.Client{
		ID:   uuid.NewString(),
		Conn: realtime.NewWebSocketConn(conn),
		Send: make(chan []byte, 256),
	}

	h.Hub.RegisterClient(client)
	defer h.Hub.UnregisterClient(client)

	go func() {
		for msg := range client.Send {
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				log.Println("WebSocket write error:", err)
				return
			}
		}
	}()

	for {
		var frame socketFrame
		if err := conn.ReadJSON(&frame); err != nil {
			log.Printf("WebSocket read error for client %s: %v", client.ID, err)
			break
		}
		h.dispatch(client, frame)
	}
}

func (h *SocketHandler) dispatch(client *realtime.Client, frame socketFrame) {
	switch frame.Event {
	case "join-chat-room":
		var p struct {
			ProjectID    string `json:"projectId"`
			FreelancerID string `json:"freelancerId"`
		}
		if err := json.Unmarshal(frame.Data, &p); err != nil {
			return
		}
		h.Manager.JoinAsFreelancer(client, p.ProjectID, p.FreelancerID)

	case "join-chat-room-client":
		var p struct {
			ProjectID string `json:"projectId"`
		}
		if err := json.Unmarshal(frame.Data, &p); err != nil {
			return
		}
		h.Manager.JoinAsClient(client, p.ProjectID)

	case "update-messages":
		var p struct {
			ProjectID string `json:"projectId"`
		}
		if err := json.Unmarshal(frame.Data, &p); err != nil {
			return
		}
		h.Manager.RefreshMessages(client, p.ProjectID)

	case "new-message":
		var p struct {
			ProjectID string `json:"projectId"`
			SenderID  string `json:"senderId"`
			Message   string `json:"message"`
			Time      string `json:"time"`
		}
		if err := json.Unmarshal(frame.Data, &p); err != nil {
			return
		}
		h.Manager.PostMessage(client, p.ProjectID, p.SenderID, p.Message, p.Time)

	default:
		// unknown events are ignored
	}
}
