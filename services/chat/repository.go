package chat

import (
	"context"

	"github.com/dkurush/fleetops/internal/pkg/models"
)

// ChatRepo defines the interface for chat data access operations.
// Message ids and creation timestamps are assigned by the store at
// write time, never by a client clock.
type ChatRepo interface {
	InsertMessage(ctx context.Context, msg *models.ChatMessage) (*models.ChatMessage, error)
	GetRecentMessages(ctx context.Context, conversationID string, limit int) ([]*models.ChatMessage, error)
}
