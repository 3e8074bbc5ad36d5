package chat

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Adhisheshu1210/sb-works-backend/internal/models"
	"github.com/Adhisheshu1210/sb-works-backend/internal/realtime"
)

// Manager authorizes room membership per connection, persists messages and
// fans them out. Every failure is reported to the calling connection only;
// the rest of the room never sees it and the room keeps running.
type Manager struct {
	DB  *gorm.DB
	Hub *realtime.Hub
	RDB *redis.Client
}

func NewManager(db *gorm.DB, hub *realtime.Hub, rdb *redis.Client) *Manager {
	return &Manager{DB: db, Hub: hub, RDB: rdb}
}

// JoinAsFreelancer lets a freelancer into the project room only if the
// project is assigned to them.
func (m *Manager) JoinAsFreelancer(c *realtime.Client, projectID, freelancerID string) {
	project, err := m.findProject(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			m.sendError(c, "Project not found")
			return
		}
		log.Println("Error in join-chat-room:", err)
		m.sendError(c, "Failed to join chat room")
		return
	}

	if project.FreelancerID == uuid.Nil || project.FreelancerID.String() != freelancerID {
		m.sendError(c, "Unauthorized to join this project")
		return
	}

	m.join(c, project, "freelancer")
}

// JoinAsClient lets the client in once the project has left the Available
// state; before assignment there is nobody to talk to.
func (m *Manager) JoinAsClient(c *realtime.Client, projectID string) {
	project, err := m.findProject(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			m.sendError(c, "Project not found")
			return
		}
		log.Println("Error in join-chat-room-client:", err)
		m.sendError(c, "Failed to join chat room")
		return
	}

	if project.Status != models.ProjectAssigned && project.Status != models.ProjectCompleted {
		m.sendError(c, "Cannot join chat for this project status")
		return
	}

	m.join(c, project, "client")
}

// RefreshMessages re-sends the current history to the caller only. A missing
// chat row yields an empty placeholder without creating the row.
func (m *Manager) RefreshMessages(c *realtime.Client, projectID string) {
	id, err := uuid.Parse(projectID)
	if err != nil {
		m.emptyHistory(c)
		return
	}

	var chat models.Chat
	err = m.DB.First(&chat, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		m.emptyHistory(c)
		return
	}
	if err != nil {
		log.Println("Error updating messages:", err)
		m.sendError(c, "Failed to fetch messages")
		return
	}

	m.Hub.SendToClient(c, chatEvent("messages-updated", &chat))
}

// PostMessage appends one message and replays the full updated history to the
// sender and to everyone else in the room. Receivers always get the complete
// authoritative history, never a delta.
func (m *Manager) PostMessage(c *realtime.Client, projectID, senderID, text, timestamp string) {
	id, err := uuid.Parse(projectID)
	if err != nil {
		m.sendError(c, "Failed to send message")
		return
	}

	var chat *models.Chat
	err = m.DB.Transaction(func(tx *gorm.DB) error {
		got, err := getOrCreateChat(tx, id)
		if err != nil {
			return err
		}
		got.Messages = append(got.Messages, models.ChatMessage{
			ID:       uuid.NewString(),
			SenderID: senderID,
			Text:     text,
			Time:     timestamp,
		})
		if err := tx.Save(got).Error; err != nil {
			return err
		}
		chat = got
		return nil
	})
	if err != nil {
		log.Println("Error adding new message:", err)
		m.sendError(c, "Failed to send message")
		return
	}

	room := id.String()
	m.Hub.SendToClient(c, chatEvent("messages-updated", chat))
	m.Hub.BroadcastToRoom(room, c.ID, chatEvent("message-from-user", chat))

	m.notify(room, senderID, text)
}

func (m *Manager) join(c *realtime.Client, project *models.Project, userType string) {
	room := project.ID.String()
	m.Hub.JoinRoom(room, c)
	log.Printf("%s joined room: %s", userType, room)

	m.Hub.BroadcastToRoom(room, c.ID, realtime.Event{
		Event: "user-joined-room",
		Data:  map[string]interface{}{"userType": userType},
	})

	chat, err := getOrCreateChat(m.DB, project.ID)
	if err != nil {
		log.Println("Error loading chat history:", err)
		m.sendError(c, "Failed to join chat room")
		return
	}

	m.Hub.SendToClient(c, chatEvent("messages-updated", chat))
}

func (m *Manager) findProject(projectID string) (*models.Project, error) {
	id, err := uuid.Parse(projectID)
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	var project models.Project
	if err := m.DB.First(&project, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// notify publishes a best-effort notification; delivery is not part of the
// room contract.
func (m *Manager) notify(projectID, senderID, text string) {
	if m.RDB == nil {
		return
	}
	payload, _ := json.Marshal(map[string]string{
		"type":      "chat_message",
		"projectId": projectID,
		"senderId":  senderID,
		"text":      text,
	})
	if err := m.RDB.Publish(context.Background(), "chat:"+projectID, payload).Err(); err != nil {
		log.Println("Error publishing chat notification:", err)
	}
}

func (m *Manager) sendError(c *realtime.Client, msg string) {
	m.Hub.SendToClient(c, realtime.Event{
		Event: "error",
		Data:  map[string]interface{}{"message": msg},
	})
}

func (m *Manager) emptyHistory(c *realtime.Client) {
	m.Hub.SendToClient(c, realtime.Event{
		Event: "messages-updated",
		Data: map[string]interface{}{
			"chat": map[string]interface{}{"messages": []models.ChatMessage{}},
		},
	})
}

func chatEvent(name string, chat *models.Chat) realtime.Event {
	return realtime.Event{
		Event: name,
		Data:  map[string]interface{}{"chat": chat},
	}
}

func getOrCreateChat(tx *gorm.DB, id uuid.UUID) (*models.Chat, error) {
	chat := models.Chat{ID: id, Messages: datatypes.JSONSlice[models.ChatMessage]{}}
	if err := tx.FirstOrCreate(&chat, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &chat, nil
}
