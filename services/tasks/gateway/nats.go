package gateway

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dkurush/fleetops/internal/pkg/constants"
	"github.com/dkurush/fleetops/internal/pkg/models"
	natspkg "github.com/dkurush/fleetops/internal/pkg/nats"
)

// TaskGW publishes task events to NATS and activity entries to NSQ
type TaskGW struct {
	nc       *natspkg.Client
	activity ActivityProducer
	topic    string
}

// ActivityProducer is the NSQ publishing surface the gateway needs
type ActivityProducer interface {
	Publish(topic string, message interface{}) error
}

// NewTaskGW creates a new task gateway
func NewTaskGW(nc *natspkg.Client, activity ActivityProducer, activityTopic string) *TaskGW {
	return &TaskGW{
		nc:       nc,
		activity: activity,
		topic:    activityTopic,
	}
}

// PublishTaskCreated announces a newly created task
func (g *TaskGW) PublishTaskCreated(_ context.Context, task *models.Task) error {
	data, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to marshal task: %w", err)
	}
	return g.nc.Publish(constants.SubjectTaskCreated, data)
}

// PublishTaskUpdated announces a task status transition
func (g *TaskGW) PublishTaskUpdated(_ context.Context, update *models.TaskStatusUpdate) error {
	data, err := json.Marshal(update)
	if err != nil {
		return fmt.Errorf("failed to marshal task update: %w", err)
	}
	return g.nc.Publish(constants.SubjectTaskUpdated, data)
}

// RecordActivity appends an entry to the admin activity feed
func (g *TaskGW) RecordActivity(entry *models.ActivityEntry) error {
	return g.activity.Publish(g.topic, entry)
}
