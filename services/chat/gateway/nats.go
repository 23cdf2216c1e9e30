package gateway

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dkurush/fleetops/internal/pkg/constants"
	"github.com/dkurush/fleetops/internal/pkg/models"
	natspkg "github.com/dkurush/fleetops/internal/pkg/nats"
	"github.com/dkurush/fleetops/services/chat"
)

// ChatGW publishes chat change-feed events to NATS
type ChatGW struct {
	natsClient *natspkg.Client
}

// NewChatGW creates a new chat gateway
func NewChatGW(client *natspkg.Client) chat.ChatGW {
	return &ChatGW{
		natsClient: client,
	}
}

// PublishMessage publishes a stored message on its conversation subject
func (g *ChatGW) PublishMessage(ctx context.Context, msg *models.ChatMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	subject := fmt.Sprintf(constants.SubjectChatMessage, msg.ConversationID)
	return g.natsClient.Publish(subject, data)
}
