package shop

import (
	"errors"
	"testing"

	sqlmock "gopkg.in/DATA-DOG/go-sqlmock.v1"

	"github.com/stretchr/testify/assert"

	"github.com/example/keyligtasan/internal/testutil"
)

var validCheckout = CheckoutInput{
	RecipientName: "Maria Santos",
	PhoneNumber:   "09171234567",
	Address:       "123 Mabini St",
	City:          "Quezon City",
	Province:      "Metro Manila",
	PaymentMethod: "Cash on Delivery",
}

func TestPlaceOrderMissingFields(t *testing.T) {
	sqlDB, db, mock := testutil.DbMock(t)
	defer sqlDB.Close()
	svc := NewCheckoutService(db, testPricing)

	cases := []struct {
		field  string
		mutate func(*CheckoutInput)
	}{
		{"recipient_name", func(in *CheckoutInput) { in.RecipientName = "" }},
		{"phone_number", func(in *CheckoutInput) { in.PhoneNumber = "" }},
		{"address", func(in *CheckoutInput) { in.Address = "  " }},
		{"city", func(in *CheckoutInput) { in.City = "" }},
		{"province", func(in *CheckoutInput) { in.Province = "" }},
		{"payment_method", func(in *CheckoutInput) { in.PaymentMethod = "" }},
	}

	for _, tc := range cases {
		in := validCheckout
		tc.mutate(&in)

		_, err := svc.PlaceOrder(1, in)

		var validationErr *ValidationError
		assert.True(t, errors.As(err, &validationErr), "field %s", tc.field)
		assert.Contains(t, err.Error(), tc.field)
	}

	// Validation fails before the transaction opens.
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	sqlDB, db, mock := testutil.DbMock(t)
	defer sqlDB.Close()
	svc := NewCheckoutService(db, testPricing)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "cart_items" WHERE user_id = .+`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	_, err := svc.PlaceOrder(1, validCheckout)

	var emptyErr *EmptyCartError
	assert.True(t, errors.As(err, &emptyErr))
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestPlaceOrderSuccess(t *testing.T) {
	sqlDB, db, mock := testutil.DbMock(t)
	defer sqlDB.Close()
	svc := NewCheckoutService(db, testPricing)

	cartRows := sqlmock.NewRows([]string{
		"id", "user_id", "product_id", "color", "engraved_name",
		"quantity", "unit_price", "customization_fee", "subtotal",
	}).
		AddRow(7, 1, 3, "Ruby Red", "", 2, 299.0, 0.0, 598.0).
		AddRow(8, 1, 4, "Onyx", "Maria", 1, 299.0, 200.0, 499.0)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "cart_items" WHERE user_id = .+`).
		WillReturnRows(cartRows)

	mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = .+`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price", "stock", "is_active"}).
			AddRow(3, "Safety Keychain - Ruby Red", 299.0, 10, true))
	mock.ExpectExec(`UPDATE "products" SET .+`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = .+`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price", "stock", "is_active"}).
			AddRow(4, "Safety Keychain - Onyx", 299.0, 5, true))
	mock.ExpectExec(`UPDATE "products" SET .+`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectQuery(`SELECT \* FROM "shipping_addresses" WHERE user_id = .+`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id"}).AddRow(9, 1))

	// The insert carries no order_number column, so user_id and
	// shipping_address_id sit next to each other in the column list.
	mock.ExpectQuery(`INSERT INTO "orders" \(.*"user_id","shipping_address_id".*\) .+`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))
	mock.ExpectQuery(`INSERT INTO "order_items" .+`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(100).AddRow(101))

	mock.ExpectExec(`UPDATE "orders" SET .+`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM "cart_items" WHERE .+`).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	result, err := svc.PlaceOrder(1, validCheckout)

	assert.Nil(t, err)
	assert.Equal(t, uint(42), result.OrderID)
	assert.Equal(t, "ORD-00042", result.OrderNumber)
	// 598 + 499 under the free-shipping threshold: flat fee applies.
	assert.Equal(t, 1247.0, result.Total)
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestPlaceOrderInsufficientStock(t *testing.T) {
	sqlDB, db, mock := testutil.DbMock(t)
	defer sqlDB.Close()
	svc := NewCheckoutService(db, testPricing)

	cartRows := sqlmock.NewRows([]string{
		"id", "user_id", "product_id", "color", "engraved_name",
		"quantity", "unit_price", "customization_fee", "subtotal",
	}).AddRow(7, 1, 3, "Ruby Red", "", 5, 299.0, 0.0, 1495.0)

	productRows := sqlmock.NewRows([]string{"id", "name", "price", "stock", "is_active"}).
		AddRow(3, "Safety Keychain - Ruby Red", 299.0, 2, true)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "cart_items" WHERE user_id = .+`).
		WillReturnRows(cartRows)
	mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = .+`).
		WillReturnRows(productRows)
	// Conditional decrement refuses: stock 2 < quantity 5.
	mock.ExpectExec(`UPDATE "products" SET .+`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := svc.PlaceOrder(1, validCheckout)

	var stockErr *InsufficientStockError
	assert.True(t, errors.As(err, &stockErr))
	assert.Equal(t, "Safety Keychain - Ruby Red", stockErr.ProductName)
	assert.Equal(t, 2, stockErr.Available)
	assert.Nil(t, mock.ExpectationsWereMet())
}
