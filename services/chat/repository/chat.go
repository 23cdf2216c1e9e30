package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/dkurush/fleetops/internal/pkg/models"
	"github.com/dkurush/fleetops/services/chat"
)

type chatRepo struct {
	db *sqlx.DB
}

// NewChatRepository creates a new chat repository
func NewChatRepository(db *sqlx.DB) chat.ChatRepo {
	return &chatRepo{db: db}
}

// InsertMessage appends a message to its conversation. The id and
// creation timestamp are assigned by the database so ordering is never
// subject to client clock skew.
func (r *chatRepo) InsertMessage(ctx context.Context, msg *models.ChatMessage) (*models.ChatMessage, error) {
	query := `
		INSERT INTO chat_messages (conversation_id, sender_id, recipient_id, text)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	stored := *msg
	err := r.db.QueryRowContext(ctx, query,
		msg.ConversationID,
		msg.From,
		msg.To,
		msg.Text,
	).Scan(&stored.ID, &stored.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert chat message: %w", err)
	}

	return &stored, nil
}

// GetRecentMessages returns the most recent limit messages of a
// conversation in ascending created_at order
func (r *chatRepo) GetRecentMessages(ctx context.Context, conversationID string, limit int) ([]*models.ChatMessage, error) {
	query := `
		SELECT id, conversation_id, sender_id, recipient_id, text, created_at
		FROM (
			SELECT id, conversation_id, sender_id, recipient_id, text, created_at
			FROM chat_messages
			WHERE conversation_id = $1
			ORDER BY created_at DESC, id DESC
			LIMIT $2
		) recent
		ORDER BY created_at ASC, id ASC
	`

	var messages []*models.ChatMessage
	if err := r.db.SelectContext(ctx, &messages, query, conversationID, limit); err != nil {
		return nil, fmt.Errorf("failed to get conversation messages: %w", err)
	}
	return messages, nil
}
