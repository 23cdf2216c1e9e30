package nats

import (
	"encoding/json"

	"github.com/dkurush/fleetops/internal/pkg/constants"
	"github.com/dkurush/fleetops/internal/pkg/logger"
	"github.com/dkurush/fleetops/internal/pkg/models"
	natspkg "github.com/dkurush/fleetops/internal/pkg/nats"
	pkgws "github.com/dkurush/fleetops/internal/pkg/websocket"
)

// Notifier fans stored chat messages out to connected websocket
// clients. It listens on every conversation subject and delivers each
// message to both participants when they are online.
type Notifier struct {
	nc  *natspkg.Client
	ws  *pkgws.Manager
	sub *natspkg.Subscription
}

// NewNotifier creates a chat notifier
func NewNotifier(nc *natspkg.Client, ws *pkgws.Manager) *Notifier {
	return &Notifier{
		nc: nc,
		ws: ws,
	}
}

// Start subscribes to all conversation subjects
func (n *Notifier) Start() error {
	sub, err := n.nc.Subscribe(constants.SubjectChatMessagePrefix+">", n.handleMessage)
	if err != nil {
		return err
	}
	n.sub = sub
	return nil
}

// Stop detaches the subscription
func (n *Notifier) Stop() {
	if n.sub != nil {
		n.sub.Unsubscribe()
	}
}

func (n *Notifier) handleMessage(subject string, data []byte) {
	var msg models.ChatMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		logger.Warn("Dropping malformed chat event",
			logger.String("subject", subject),
			logger.Err(err))
		return
	}

	n.ws.NotifyClient(msg.From, constants.EventChatMessage, msg)
	n.ws.NotifyClient(msg.To, constants.EventChatMessage, msg)
}
