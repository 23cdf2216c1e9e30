package nats

import (
	"encoding/json"

	"github.com/dkurush/fleetops/internal/pkg/constants"
	"github.com/dkurush/fleetops/internal/pkg/logger"
	"github.com/dkurush/fleetops/internal/pkg/models"
	natspkg "github.com/dkurush/fleetops/internal/pkg/nats"
	pkgws "github.com/dkurush/fleetops/internal/pkg/websocket"
)

// Notifier forwards task transitions to connected websocket clients:
// the assigned driver and every online dispatcher.
type Notifier struct {
	nc   *natspkg.Client
	ws   *pkgws.Manager
	subs []*natspkg.Subscription
}

// NewNotifier creates a task notifier
func NewNotifier(nc *natspkg.Client, ws *pkgws.Manager) *Notifier {
	return &Notifier{
		nc: nc,
		ws: ws,
	}
}

// Start subscribes to the task event subjects
func (n *Notifier) Start() error {
	createdSub, err := n.nc.Subscribe(constants.SubjectTaskCreated, n.handleCreated)
	if err != nil {
		return err
	}
	n.subs = append(n.subs, createdSub)

	updatedSub, err := n.nc.Subscribe(constants.SubjectTaskUpdated, n.handleUpdated)
	if err != nil {
		n.Stop()
		return err
	}
	n.subs = append(n.subs, updatedSub)

	return nil
}

// Stop detaches all subscriptions
func (n *Notifier) Stop() {
	for _, sub := range n.subs {
		sub.Unsubscribe()
	}
	n.subs = nil
}

func (n *Notifier) handleCreated(subject string, data []byte) {
	var task models.Task
	if err := json.Unmarshal(data, &task); err != nil {
		logger.Warn("Dropping malformed task event",
			logger.String("subject", subject),
			logger.Err(err))
		return
	}

	n.ws.NotifyClient(task.AssignedTo, constants.EventTaskUpdate, task)
	n.ws.NotifyRole(models.RoleDispatcher, constants.EventTaskUpdate, task)
}

func (n *Notifier) handleUpdated(subject string, data []byte) {
	var update models.TaskStatusUpdate
	if err := json.Unmarshal(data, &update); err != nil {
		logger.Warn("Dropping malformed task event",
			logger.String("subject", subject),
			logger.Err(err))
		return
	}

	n.ws.NotifyClient(update.AssignedTo, constants.EventTaskUpdate, update)
	n.ws.NotifyRole(models.RoleDispatcher, constants.EventTaskUpdate, update)
}
