package models

import (
	"time"

	"github.com/google/uuid"
)

// TaskStatus represents the status of a task
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// TaskPriority represents the priority of a task
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

// Task represents a dispatch task assigned to a driver
type Task struct {
	ID          uuid.UUID    `json:"id" db:"id"`
	Title       string       `json:"title" db:"title"`
	Description string       `json:"description" db:"description"`
	AssignedTo  string       `json:"assigned_to" db:"assigned_to"`
	AssignedBy  string       `json:"assigned_by" db:"assigned_by"`
	Status      TaskStatus   `json:"status" db:"status"`
	Priority    TaskPriority `json:"priority" db:"priority"`
	CreatedAt   time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at" db:"updated_at"`
}

// CreateTaskRequest is the payload for creating a task
type CreateTaskRequest struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	AssignedTo  string       `json:"assigned_to"`
	Priority    TaskPriority `json:"priority,omitempty"`
}

// TaskStatusUpdate is the change-feed event published for a task transition
type TaskStatusUpdate struct {
	TaskID     string     `json:"task_id"`
	AssignedTo string     `json:"assigned_to"`
	Status     TaskStatus `json:"status"`
	UpdatedAt  time.Time  `json:"updated_at"`
}
