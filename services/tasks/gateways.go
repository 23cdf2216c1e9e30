package tasks

import (
	"context"

	"github.com/dkurush/fleetops/internal/pkg/models"
)

// TaskGW defines the outbound integrations of the task service
type TaskGW interface {
	// PublishTaskCreated announces a newly created task
	PublishTaskCreated(ctx context.Context, task *models.Task) error

	// PublishTaskUpdated announces a task status transition
	PublishTaskUpdated(ctx context.Context, update *models.TaskStatusUpdate) error

	// RecordActivity appends an entry to the admin activity feed
	RecordActivity(entry *models.ActivityEntry) error
}
