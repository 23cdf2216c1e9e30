package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/dkurush/fleetops/internal/pkg/models"
)

// TaskRepo implements task persistence on PostgreSQL
type TaskRepo struct {
	cfg *models.Config
	db  *sqlx.DB
}

// NewTaskRepo creates a new task repository
func NewTaskRepo(cfg *models.Config, db *sqlx.DB) *TaskRepo {
	return &TaskRepo{
		cfg: cfg,
		db:  db,
	}
}

// CreateTask persists a new task
func (r *TaskRepo) CreateTask(ctx context.Context, task *models.Task) (*models.Task, error) {
	query := `
		INSERT INTO tasks (title, description, assigned_to, assigned_by, status, priority)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`

	created := *task
	err := r.db.QueryRowxContext(ctx, query,
		task.Title,
		task.Description,
		task.AssignedTo,
		task.AssignedBy,
		task.Status,
		task.Priority,
	).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert task: %w", err)
	}

	return &created, nil
}

// GetTask returns a task by id, or nil when it does not exist
func (r *TaskRepo) GetTask(ctx context.Context, taskID string) (*models.Task, error) {
	var task models.Task
	query := `
		SELECT id, title, description, assigned_to, assigned_by, status, priority, created_at, updated_at
		FROM tasks
		WHERE id = $1`

	err := r.db.GetContext(ctx, &task, query, taskID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	return &task, nil
}

// AdvanceStatus applies a status transition only when the stored
// status still matches from, so concurrent advances cannot skip steps
func (r *TaskRepo) AdvanceStatus(ctx context.Context, taskID string, from, to models.TaskStatus) (bool, error) {
	query := `
		UPDATE tasks
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = $3`

	result, err := r.db.ExecContext(ctx, query, to, taskID, from)
	if err != nil {
		return false, fmt.Errorf("failed to update task status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read update result: %w", err)
	}

	return affected == 1, nil
}

// ListTasksByAssignee returns the tasks assigned to a driver, newest first
func (r *TaskRepo) ListTasksByAssignee(ctx context.Context, driverID string) ([]*models.Task, error) {
	var list []*models.Task
	query := `
		SELECT id, title, description, assigned_to, assigned_by, status, priority, created_at, updated_at
		FROM tasks
		WHERE assigned_to = $1
		ORDER BY created_at DESC`

	if err := r.db.SelectContext(ctx, &list, query, driverID); err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return list, nil
}

// ListTasks returns every task, newest first
func (r *TaskRepo) ListTasks(ctx context.Context) ([]*models.Task, error) {
	var list []*models.Task
	query := `
		SELECT id, title, description, assigned_to, assigned_by, status, priority, created_at, updated_at
		FROM tasks
		ORDER BY created_at DESC`

	if err := r.db.SelectContext(ctx, &list, query); err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return list, nil
}
