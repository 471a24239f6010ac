package shop

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// ValidationError reports a missing or malformed request field.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NewValidationError builds a ValidationError from a format string.
func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// EmptyCartError means checkout was attempted with no cart lines.
type EmptyCartError struct{}

func (e *EmptyCartError) Error() string { return "your cart is empty" }

// InsufficientStockError names the product and the quantity still available.
type InsufficientStockError struct {
	ProductName string
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: only %d available", e.ProductName, e.Available)
}

// NotFoundError reports a missing order, product, user or cart item.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string { return e.Resource + " not found" }

// InvalidStatusError reports a status outside the fixed vocabulary.
type InvalidStatusError struct {
	Status string
}

func (e *InvalidStatusError) Error() string {
	return fmt.Sprintf("invalid status %q", e.Status)
}

// DatabaseError wraps an infrastructure failure. The wrapped detail is
// logged server-side and never exposed to the caller.
type DatabaseError struct {
	Err error
}

func (e *DatabaseError) Error() string { return "database error occurred" }

func (e *DatabaseError) Unwrap() error { return e.Err }

// HTTPStatus maps a business error to its HTTP status class.
func HTTPStatus(err error) int {
	var (
		validationErr *ValidationError
		emptyCartErr  *EmptyCartError
		stockErr      *InsufficientStockError
		notFoundErr   *NotFoundError
		statusErr     *InvalidStatusError
		dbErr         *DatabaseError
	)

	switch {
	case errors.As(err, &validationErr), errors.As(err, &emptyCartErr),
		errors.As(err, &stockErr), errors.As(err, &statusErr):
		return fiber.StatusBadRequest
	case errors.As(err, &notFoundErr):
		return fiber.StatusNotFound
	case errors.As(err, &dbErr):
		return fiber.StatusInternalServerError
	default:
		return fiber.StatusInternalServerError
	}
}

// IsBusinessError reports whether err belongs to the shop error taxonomy.
func IsBusinessError(err error) bool {
	var (
		validationErr *ValidationError
		emptyCartErr  *EmptyCartError
		stockErr      *InsufficientStockError
		notFoundErr   *NotFoundError
		statusErr     *InvalidStatusError
		dbErr         *DatabaseError
	)

	return errors.As(err, &validationErr) || errors.As(err, &emptyCartErr) ||
		errors.As(err, &stockErr) || errors.As(err, &notFoundErr) ||
		errors.As(err, &statusErr) || errors.As(err, &dbErr)
}
