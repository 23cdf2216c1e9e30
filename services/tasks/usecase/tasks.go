package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dkurush/fleetops/internal/pkg/clock"
	"github.com/dkurush/fleetops/internal/pkg/logger"
	"github.com/dkurush/fleetops/internal/pkg/models"
	"github.com/dkurush/fleetops/services/tasks"
)

var (
	// ErrNotDispatcher is returned when a non-dispatcher tries to create a task
	ErrNotDispatcher = errors.New("only dispatchers can create tasks")

	// ErrNotAssignee is returned when an actor other than the assigned
	// driver tries to advance a task
	ErrNotAssignee = errors.New("task is assigned to another driver")

	// ErrInvalidTransition is returned when a status change skips a
	// step, moves backwards, or leaves a terminal status
	ErrInvalidTransition = errors.New("invalid task status transition")

	// ErrTaskNotFound is returned when the referenced task does not exist
	ErrTaskNotFound = errors.New("task not found")
)

// nextStatus holds the single permitted successor of each status.
// Completed has no successor.
var nextStatus = map[models.TaskStatus]models.TaskStatus{
	models.TaskStatusPending:    models.TaskStatusInProgress,
	models.TaskStatusInProgress: models.TaskStatusCompleted,
}

// TaskUC implements the task lifecycle
type TaskUC struct {
	repo tasks.TaskRepo
	gw   tasks.TaskGW
	clk  clock.Clock
}

// NewTaskUC creates a new task usecase
func NewTaskUC(repo tasks.TaskRepo, gw tasks.TaskGW, clk clock.Clock) *TaskUC {
	return &TaskUC{
		repo: repo,
		gw:   gw,
		clk:  clk,
	}
}

// Create registers a new task for a driver. Only dispatchers may
// create tasks; new tasks always start out pending.
func (uc *TaskUC) Create(ctx context.Context, actor models.Actor, req *models.CreateTaskRequest) (*models.Task, error) {
	if !actor.IsDispatcher() {
		return nil, ErrNotDispatcher
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, errors.New("task title is required")
	}
	if strings.TrimSpace(req.AssignedTo) == "" {
		return nil, errors.New("task assignee is required")
	}

	priority := req.Priority
	if priority == "" {
		priority = models.TaskPriorityMedium
	}

	task := &models.Task{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		AssignedTo:  req.AssignedTo,
		AssignedBy:  actor.ID,
		Status:      models.TaskStatusPending,
		Priority:    priority,
	}

	created, err := uc.repo.CreateTask(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	// Announcements are best-effort; the task is already durable.
	if err := uc.gw.PublishTaskCreated(ctx, created); err != nil {
		logger.Warn("Failed to publish task created event",
			logger.String("task_id", created.ID.String()),
			logger.Err(err))
	}
	uc.recordActivity(actor.ID, fmt.Sprintf("assigned task %q to %s", created.Title, created.AssignedTo), models.ActivityStatusInfo)

	return created, nil
}

// Advance moves a task to the requested status. Only the assigned
// driver may advance a task, and only by a single forward step.
func (uc *TaskUC) Advance(ctx context.Context, actor models.Actor, taskID string, target models.TaskStatus) (*models.Task, error) {
	task, err := uc.repo.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, ErrTaskNotFound
	}

	if task.AssignedTo != actor.ID {
		return nil, ErrNotAssignee
	}

	next, ok := nextStatus[task.Status]
	if !ok || next != target {
		return nil, ErrInvalidTransition
	}

	applied, err := uc.repo.AdvanceStatus(ctx, taskID, task.Status, target)
	if err != nil {
		return nil, fmt.Errorf("failed to update task status: %w", err)
	}
	if !applied {
		// Someone advanced the task between our read and write.
		return nil, ErrInvalidTransition
	}

	updated, err := uc.repo.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	update := &models.TaskStatusUpdate{
		TaskID:     taskID,
		AssignedTo: task.AssignedTo,
		Status:     target,
		UpdatedAt:  updated.UpdatedAt,
	}
	if err := uc.gw.PublishTaskUpdated(ctx, update); err != nil {
		logger.Warn("Failed to publish task updated event",
			logger.String("task_id", taskID),
			logger.Err(err))
	}

	activityStatus := models.ActivityStatusInfo
	if target == models.TaskStatusCompleted {
		activityStatus = models.ActivityStatusSuccess
	}
	uc.recordActivity(actor.ID, fmt.Sprintf("moved task %q to %s", task.Title, target), activityStatus)

	return updated, nil
}

// Get returns a single task by id
func (uc *TaskUC) Get(ctx context.Context, taskID string) (*models.Task, error) {
	task, err := uc.repo.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, ErrTaskNotFound
	}
	return task, nil
}

// List returns the tasks visible to the actor. Dispatchers see every
// task; drivers see only their own assignments.
func (uc *TaskUC) List(ctx context.Context, actor models.Actor) ([]*models.Task, error) {
	if actor.IsDispatcher() {
		return uc.repo.ListTasks(ctx)
	}
	return uc.repo.ListTasksByAssignee(ctx, actor.ID)
}

func (uc *TaskUC) recordActivity(actorID, action string, status models.ActivityStatus) {
	entry := &models.ActivityEntry{
		Actor:     actorID,
		Action:    action,
		Status:    status,
		Timestamp: uc.clk.Now(),
	}
	if err := uc.gw.RecordActivity(entry); err != nil {
		logger.Warn("Failed to record activity entry",
			logger.String("actor", actorID),
			logger.Err(err))
	}
}
