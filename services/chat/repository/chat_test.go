package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkurush/fleetops/internal/pkg/models"
	"github.com/dkurush/fleetops/services/chat"
)

func setupChatRepoTest(t *testing.T) (chat.ChatRepo, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "pgx")
	return NewChatRepository(sqlxDB), mock, func() { db.Close() }
}

func TestInsertMessage(t *testing.T) {
	storedID := uuid.New()
	createdAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	testCases := []struct {
		name       string
		mockSetup  func(mock sqlmock.Sqlmock)
		assertFunc func(t *testing.T, msg *models.ChatMessage, err error)
	}{
		{
			name: "Success",
			mockSetup: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "created_at"}).
					AddRow(storedID, createdAt)
				mock.ExpectQuery("INSERT INTO chat_messages").
					WithArgs("dispatcher-2_driver-7", "dispatcher-2", "driver-7", "pickup moved").
					WillReturnRows(rows)
			},
			assertFunc: func(t *testing.T, msg *models.ChatMessage, err error) {
				require.NoError(t, err)
				assert.Equal(t, storedID, msg.ID)
				assert.Equal(t, createdAt, msg.CreatedAt)
				assert.Equal(t, "pickup moved", msg.Text)
			},
		},
		{
			name: "Database Error",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("INSERT INTO chat_messages").
					WillReturnError(errors.New("database error"))
			},
			assertFunc: func(t *testing.T, msg *models.ChatMessage, err error) {
				assert.Error(t, err)
				assert.Nil(t, msg)
				assert.Contains(t, err.Error(), "failed to insert chat message")
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo, mock, cleanup := setupChatRepoTest(t)
			defer cleanup()

			tc.mockSetup(mock)

			msg, err := repo.InsertMessage(context.Background(), &models.ChatMessage{
				ConversationID: "dispatcher-2_driver-7",
				From:           "dispatcher-2",
				To:             "driver-7",
				Text:           "pickup moved",
			})

			tc.assertFunc(t, msg, err)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestGetRecentMessages(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	testCases := []struct {
		name       string
		mockSetup  func(mock sqlmock.Sqlmock)
		assertFunc func(t *testing.T, msgs []*models.ChatMessage, err error)
	}{
		{
			name: "Ascending Order",
			mockSetup: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "conversation_id", "sender_id", "recipient_id", "text", "created_at"}).
					AddRow(uuid.New(), "dispatcher-2_driver-7", "dispatcher-2", "driver-7", "first", base).
					AddRow(uuid.New(), "dispatcher-2_driver-7", "driver-7", "dispatcher-2", "second", base.Add(time.Minute))
				mock.ExpectQuery("SELECT .+ FROM .+ ORDER BY created_at ASC").
					WithArgs("dispatcher-2_driver-7", 200).
					WillReturnRows(rows)
			},
			assertFunc: func(t *testing.T, msgs []*models.ChatMessage, err error) {
				require.NoError(t, err)
				require.Len(t, msgs, 2)
				assert.Equal(t, "first", msgs[0].Text)
				assert.Equal(t, "second", msgs[1].Text)
				assert.True(t, msgs[0].CreatedAt.Before(msgs[1].CreatedAt))
			},
		},
		{
			name: "Empty Conversation",
			mockSetup: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "conversation_id", "sender_id", "recipient_id", "text", "created_at"})
				mock.ExpectQuery("SELECT .+ FROM .+ ORDER BY created_at ASC").
					WithArgs("dispatcher-2_driver-7", 200).
					WillReturnRows(rows)
			},
			assertFunc: func(t *testing.T, msgs []*models.ChatMessage, err error) {
				require.NoError(t, err)
				assert.Empty(t, msgs)
			},
		},
		{
			name: "Database Error",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT .+ FROM .+ ORDER BY created_at ASC").
					WillReturnError(errors.New("database error"))
			},
			assertFunc: func(t *testing.T, msgs []*models.ChatMessage, err error) {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "failed to get conversation messages")
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo, mock, cleanup := setupChatRepoTest(t)
			defer cleanup()

			tc.mockSetup(mock)

			msgs, err := repo.GetRecentMessages(context.Background(), "dispatcher-2_driver-7", 200)

			tc.assertFunc(t, msgs, err)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
