package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkurush/fleetops/internal/pkg/models"
)

func setupTaskRepoTest(t *testing.T) (*TaskRepo, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "pgx")
	return NewTaskRepo(&models.Config{}, sqlxDB), mock, func() { db.Close() }
}

func TestCreateTask(t *testing.T) {
	storedID := uuid.New()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	repo, mock, cleanup := setupTaskRepoTest(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
		AddRow(storedID, now, now)
	mock.ExpectQuery("INSERT INTO tasks").
		WithArgs("Deliver pallet 14", "Dock B", "driver-7", "dispatcher-2", models.TaskStatusPending, models.TaskPriorityHigh).
		WillReturnRows(rows)

	task, err := repo.CreateTask(context.Background(), &models.Task{
		Title:       "Deliver pallet 14",
		Description: "Dock B",
		AssignedTo:  "driver-7",
		AssignedBy:  "dispatcher-2",
		Status:      models.TaskStatusPending,
		Priority:    models.TaskPriorityHigh,
	})
	require.NoError(t, err)
	assert.Equal(t, storedID, task.ID)
	assert.Equal(t, now, task.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTask(t *testing.T) {
	taskID := uuid.New()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	testCases := []struct {
		name       string
		mockSetup  func(mock sqlmock.Sqlmock)
		assertFunc func(t *testing.T, task *models.Task, err error)
	}{
		{
			name: "Success",
			mockSetup: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "title", "description", "assigned_to", "assigned_by", "status", "priority", "created_at", "updated_at"}).
					AddRow(taskID, "Deliver pallet 14", "Dock B", "driver-7", "dispatcher-2", "pending", "medium", now, now)
				mock.ExpectQuery("SELECT .+ FROM tasks WHERE id").
					WithArgs(taskID.String()).
					WillReturnRows(rows)
			},
			assertFunc: func(t *testing.T, task *models.Task, err error) {
				require.NoError(t, err)
				require.NotNil(t, task)
				assert.Equal(t, taskID, task.ID)
				assert.Equal(t, models.TaskStatusPending, task.Status)
			},
		},
		{
			name: "Not Found",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT .+ FROM tasks WHERE id").
					WithArgs(taskID.String()).
					WillReturnError(sql.ErrNoRows)
			},
			assertFunc: func(t *testing.T, task *models.Task, err error) {
				assert.NoError(t, err)
				assert.Nil(t, task)
			},
		},
		{
			name: "Database Error",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT .+ FROM tasks WHERE id").
					WithArgs(taskID.String()).
					WillReturnError(errors.New("database error"))
			},
			assertFunc: func(t *testing.T, task *models.Task, err error) {
				assert.Error(t, err)
				assert.Nil(t, task)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo, mock, cleanup := setupTaskRepoTest(t)
			defer cleanup()

			tc.mockSetup(mock)

			task, err := repo.GetTask(context.Background(), taskID.String())

			tc.assertFunc(t, task, err)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestAdvanceStatus(t *testing.T) {
	taskID := uuid.New().String()

	testCases := []struct {
		name       string
		mockSetup  func(mock sqlmock.Sqlmock)
		assertFunc func(t *testing.T, applied bool, err error)
	}{
		{
			name: "Applied",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("UPDATE tasks SET status").
					WithArgs(models.TaskStatusInProgress, taskID, models.TaskStatusPending).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
			assertFunc: func(t *testing.T, applied bool, err error) {
				require.NoError(t, err)
				assert.True(t, applied)
			},
		},
		{
			name: "Status Moved Concurrently",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("UPDATE tasks SET status").
					WithArgs(models.TaskStatusInProgress, taskID, models.TaskStatusPending).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			assertFunc: func(t *testing.T, applied bool, err error) {
				require.NoError(t, err)
				assert.False(t, applied)
			},
		},
		{
			name: "Database Error",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("UPDATE tasks SET status").
					WillReturnError(errors.New("database error"))
			},
			assertFunc: func(t *testing.T, applied bool, err error) {
				assert.Error(t, err)
				assert.False(t, applied)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo, mock, cleanup := setupTaskRepoTest(t)
			defer cleanup()

			tc.mockSetup(mock)

			applied, err := repo.AdvanceStatus(context.Background(), taskID, models.TaskStatusPending, models.TaskStatusInProgress)

			tc.assertFunc(t, applied, err)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestListTasksByAssignee(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	repo, mock, cleanup := setupTaskRepoTest(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"id", "title", "description", "assigned_to", "assigned_by", "status", "priority", "created_at", "updated_at"}).
		AddRow(uuid.New(), "Deliver pallet 14", "", "driver-7", "dispatcher-2", "pending", "medium", now.Add(time.Hour), now.Add(time.Hour)).
		AddRow(uuid.New(), "Pick up return", "", "driver-7", "dispatcher-2", "completed", "low", now, now)
	mock.ExpectQuery("SELECT .+ FROM tasks WHERE assigned_to").
		WithArgs("driver-7").
		WillReturnRows(rows)

	list, err := repo.ListTasksByAssignee(context.Background(), "driver-7")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Deliver pallet 14", list[0].Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}
