package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/stretchr/testify/assert"

	"github.com/example/keyligtasan/internal/testutil"
)

func TestUpdateStatusInvalidStatus(t *testing.T) {
	sqlDB, db, mock := testutil.DbMock(t)
	defer sqlDB.Close()

	h := NewOrderHandler(db)
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Put("/api/admin/orders/status", h.UpdateStatus)

	req := httptest.NewRequest(http.MethodPut, "/api/admin/orders/status",
		bytes.NewBufferString(`{"order_id":1,"new_status":"shipped"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	assert.Nil(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	assert.False(t, env.Success)
	assert.Contains(t, env.Message, "invalid status")

	// The prior status stays intact: no database call is made.
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestUpdateStatusMissingOrderID(t *testing.T) {
	sqlDB, db, mock := testutil.DbMock(t)
	defer sqlDB.Close()

	h := NewOrderHandler(db)
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Put("/api/admin/orders/status", h.UpdateStatus)

	req := httptest.NewRequest(http.MethodPut, "/api/admin/orders/status",
		bytes.NewBufferString(`{"new_status":"confirmed"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	assert.Nil(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	assert.False(t, env.Success)
	assert.Contains(t, env.Message, "order_id")
	assert.Nil(t, mock.ExpectationsWereMet())
}
