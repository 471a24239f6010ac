package shop

import (
	"errors"
	"testing"
	"time"

	sqlmock "gopkg.in/DATA-DOG/go-sqlmock.v1"

	"github.com/stretchr/testify/assert"

	"github.com/example/keyligtasan/internal/models"
	"github.com/example/keyligtasan/internal/testutil"
)

func TestChatSendValidation(t *testing.T) {
	sqlDB, db, mock := testutil.DbMock(t)
	defer sqlDB.Close()
	svc := NewChatService(db)

	var validationErr *ValidationError

	_, err := svc.Send(1, "bot", "hello", 2)
	assert.True(t, errors.As(err, &validationErr))

	_, err = svc.Send(1, models.SenderCustomer, "   ", 2)
	assert.True(t, errors.As(err, &validationErr))

	_, err = svc.Send(1, models.SenderAdmin, "hello", 0)
	assert.True(t, errors.As(err, &validationErr))
	assert.Contains(t, err.Error(), "receiver_id")

	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestChatConversations(t *testing.T) {
	sqlDB, db, mock := testutil.DbMock(t)
	defer sqlDB.Close()
	svc := NewChatService(db)

	now := time.Now()
	messageRows := sqlmock.NewRows([]string{
		"id", "sender_id", "receiver_id", "sender_type", "message", "is_read", "created_at",
	}).
		AddRow(3, 2, 1, models.SenderCustomer, "any update?", false, now).
		AddRow(2, 1, 2, models.SenderAdmin, "on its way", true, now.Add(-time.Minute)).
		AddRow(1, 4, 1, models.SenderCustomer, "hi", true, now.Add(-time.Hour))

	userRows := sqlmock.NewRows([]string{"id", "username", "full_name", "email"}).
		AddRow(2, "maria", "Maria Santos", "maria@example.com").
		AddRow(4, "jose", "Jose Cruz", "jose@example.com")

	mock.ExpectQuery(`SELECT \* FROM "chat_messages" ORDER BY created_at desc`).
		WillReturnRows(messageRows)
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE id IN .+`).
		WillReturnRows(userRows)

	conversations, err := svc.Conversations()
	assert.Nil(t, err)
	assert.Len(t, conversations, 2)

	assert.EqualValues(t, 2, conversations[0].CustomerID)
	assert.Equal(t, "Maria Santos", conversations[0].FullName)
	assert.Equal(t, "any update?", conversations[0].LastMessage)
	assert.Equal(t, 1, conversations[0].UnreadCount)

	assert.EqualValues(t, 4, conversations[1].CustomerID)
	assert.Equal(t, 0, conversations[1].UnreadCount)

	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestChatMarkRead(t *testing.T) {
	sqlDB, db, mock := testutil.DbMock(t)
	defer sqlDB.Close()
	svc := NewChatService(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "chat_messages" SET .+`).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	count, err := svc.MarkRead(5)
	assert.Nil(t, err)
	assert.EqualValues(t, 3, count)
	assert.Nil(t, mock.ExpectationsWereMet())
}
