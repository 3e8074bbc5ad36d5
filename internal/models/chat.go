package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ChatMessage is one entry in a project chat. Time is the client-supplied
// display timestamp, stored as sent.
type ChatMessage struct {
	ID       string `json:"id"`
	SenderID string `json:"senderId"`
	Text     string `json:"text"`
	Time     string `json:"time"`
}

// Chat is the single chat room document for a project; its primary key IS the
// project id. The message history lives inline as an append-only JSON list.
// Rows are created lazily on first join or first message and never deleted.
type Chat struct {
	ID       uuid.UUID                        `gorm:"type:uuid;primaryKey" json:"id"`
	Messages datatypes.JSONSlice[ChatMessage] `json:"messages"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
