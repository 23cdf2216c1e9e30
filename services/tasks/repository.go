package tasks

import (
	"context"

	"github.com/dkurush/fleetops/internal/pkg/models"
)

// TaskRepo defines the data access contract for tasks
type TaskRepo interface {
	// CreateTask persists a new task and returns it with the
	// store-assigned id and timestamps
	CreateTask(ctx context.Context, task *models.Task) (*models.Task, error)

	// GetTask returns a task by id
	GetTask(ctx context.Context, taskID string) (*models.Task, error)

	// AdvanceStatus moves a task from one status to the next. The
	// update only applies when the stored status still matches from;
	// it reports whether a row was changed.
	AdvanceStatus(ctx context.Context, taskID string, from, to models.TaskStatus) (bool, error)

	// ListTasksByAssignee returns the tasks assigned to a driver,
	// newest first
	ListTasksByAssignee(ctx context.Context, driverID string) ([]*models.Task, error)

	// ListTasks returns all tasks, newest first
	ListTasks(ctx context.Context) ([]*models.Task, error)
}
