package chat

import (
	"context"

	"github.com/dkurush/fleetops/internal/pkg/models"
)

// ChatGW defines the interface for chat change-feed publishing
type ChatGW interface {
	PublishMessage(ctx context.Context, msg *models.ChatMessage) error
}
