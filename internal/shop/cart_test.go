package shop

import (
	"errors"
	"testing"

	sqlmock "gopkg.in/DATA-DOG/go-sqlmock.v1"

	"github.com/stretchr/testify/assert"

	"github.com/example/keyligtasan/internal/testutil"
)

func TestCartAddValidation(t *testing.T) {
	sqlDB, db, mock := testutil.DbMock(t)
	defer sqlDB.Close()
	svc := NewCartService(db, testPricing)

	var validationErr *ValidationError

	err := svc.Add(1, 0, "", "", 1)
	assert.True(t, errors.As(err, &validationErr))

	err = svc.Add(1, 3, "", "", 100)
	assert.True(t, errors.As(err, &validationErr))

	err = svc.Add(1, 3, "", "", -1)
	assert.True(t, errors.As(err, &validationErr))

	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestCartAddProductNotFound(t *testing.T) {
	sqlDB, db, mock := testutil.DbMock(t)
	defer sqlDB.Close()
	svc := NewCartService(db, testPricing)

	mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = .+`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	err := svc.Add(1, 99, "Ruby Red", "", 1)

	var notFoundErr *NotFoundError
	assert.True(t, errors.As(err, &notFoundErr))
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestCartAddInactiveProduct(t *testing.T) {
	sqlDB, db, mock := testutil.DbMock(t)
	defer sqlDB.Close()
	svc := NewCartService(db, testPricing)

	rows := sqlmock.NewRows([]string{"id", "name", "price", "stock", "is_active"}).
		AddRow(3, "Safety Keychain - Onyx", 299.0, 10, false)
	mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = .+`).
		WillReturnRows(rows)

	err := svc.Add(1, 3, "Onyx", "", 1)

	var validationErr *ValidationError
	assert.True(t, errors.As(err, &validationErr))
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestCartAddMergesExistingLine(t *testing.T) {
	sqlDB, db, mock := testutil.DbMock(t)
	defer sqlDB.Close()
	svc := NewCartService(db, testPricing)

	mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = .+`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price", "stock", "is_active"}).
			AddRow(3, "Safety Keychain - Onyx", 299.0, 10, true))

	lineRows := sqlmock.NewRows([]string{
		"id", "user_id", "product_id", "color", "engraved_name",
		"quantity", "unit_price", "customization_fee", "subtotal",
	}).AddRow(7, 1, 3, "Onyx", "Maria", 2, 299.0, 200.0, 998.0)
	mock.ExpectQuery(`SELECT \* FROM "cart_items" WHERE user_id = .+`).
		WillReturnRows(lineRows)

	// 2 + 3 merge into one line of 5 with the subtotal recomputed:
	// (299 + 200) * 5 = 2495.
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "cart_items" SET .+`).
		WithArgs(5, 2495.0, sqlmock.AnyArg(), 7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := svc.Add(1, 3, "Onyx", "Maria", 3)

	assert.Nil(t, err)
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestCartAddMergeRespectsMaxQuantity(t *testing.T) {
	sqlDB, db, mock := testutil.DbMock(t)
	defer sqlDB.Close()
	svc := NewCartService(db, testPricing)

	mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = .+`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price", "stock", "is_active"}).
			AddRow(3, "Safety Keychain - Onyx", 299.0, 10, true))

	lineRows := sqlmock.NewRows([]string{
		"id", "user_id", "product_id", "color", "engraved_name",
		"quantity", "unit_price", "customization_fee", "subtotal",
	}).AddRow(7, 1, 3, "Onyx", "", 98, 299.0, 0.0, 29302.0)
	mock.ExpectQuery(`SELECT \* FROM "cart_items" WHERE user_id = .+`).
		WillReturnRows(lineRows)

	// 98 + 2 would exceed the cap: the existing line stays untouched.
	err := svc.Add(1, 3, "Onyx", "", 2)

	var validationErr *ValidationError
	assert.True(t, errors.As(err, &validationErr))
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestCartUpdateQuantityValidation(t *testing.T) {
	sqlDB, db, mock := testutil.DbMock(t)
	defer sqlDB.Close()
	svc := NewCartService(db, testPricing)

	var validationErr *ValidationError

	err := svc.UpdateQuantity(1, 0, 2)
	assert.True(t, errors.As(err, &validationErr))

	err = svc.UpdateQuantity(1, 7, 0)
	assert.True(t, errors.As(err, &validationErr))

	err = svc.UpdateQuantity(1, 7, 100)
	assert.True(t, errors.As(err, &validationErr))

	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestCartRemoveNotFound(t *testing.T) {
	sqlDB, db, mock := testutil.DbMock(t)
	defer sqlDB.Close()
	svc := NewCartService(db, testPricing)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "cart_items" WHERE .+`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := svc.Remove(1, 42)

	var notFoundErr *NotFoundError
	assert.True(t, errors.As(err, &notFoundErr))
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestCartGetRecomputesTotals(t *testing.T) {
	sqlDB, db, mock := testutil.DbMock(t)
	defer sqlDB.Close()
	svc := NewCartService(db, testPricing)

	// Stale stored subtotal: totals must be recomputed from components.
	rows := sqlmock.NewRows([]string{
		"id", "user_id", "product_id", "color", "engraved_name",
		"quantity", "unit_price", "customization_fee", "subtotal",
	}).
		AddRow(1, 1, 3, "Ruby Red", "", 2, 299.0, 0.0, 1.0).
		AddRow(2, 1, 3, "Onyx", "Maria", 1, 299.0, 200.0, 1.0)

	mock.ExpectQuery(`SELECT \* FROM "cart_items" WHERE user_id = .+`).
		WillReturnRows(rows)

	view, err := svc.Get(1)
	assert.Nil(t, err)
	assert.Len(t, view.Items, 2)
	assert.Equal(t, 598.0, view.Items[0].Subtotal)
	assert.Equal(t, 499.0, view.Items[1].Subtotal)
	assert.Equal(t, 1097.0, view.Subtotal)
	assert.Equal(t, 150.0, view.Shipping)
	assert.Equal(t, 1247.0, view.Total)
	assert.Nil(t, mock.ExpectationsWereMet())
}
