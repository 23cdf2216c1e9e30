package models

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage represents a message within a conversation
type ChatMessage struct {
	ID             uuid.UUID `json:"id" db:"id"`
	ConversationID string    `json:"conversation_id" db:"conversation_id"`
	From           string    `json:"from" db:"sender_id"`
	To             string    `json:"to" db:"recipient_id"`
	Text           string    `json:"text" db:"text"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// SendMessageRequest is the payload for sending a chat message
type SendMessageRequest struct {
	To   string `json:"to"`
	Text string `json:"text"`
}
