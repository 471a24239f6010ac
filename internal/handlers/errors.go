package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/example/keyligtasan/internal/shop"
)

// ErrorHandler converts business and transport errors into the JSON envelope
// every endpoint uses: {success:false, message}. Infrastructure detail is
// logged server-side and never sent to the caller.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(fiber.Map{
			"success": false,
			"message": fiberErr.Message,
		})
	}

	if shop.IsBusinessError(err) {
		status := shop.HTTPStatus(err)
		if status >= fiber.StatusInternalServerError {
			log.Printf("[%s %s] %v", c.Method(), c.Path(), errors.Unwrap(err))
		}
		return c.Status(status).JSON(fiber.Map{
			"success": false,
			"message": err.Error(),
		})
	}

	log.Printf("[%s %s] unhandled error: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"success": false,
		"message": "internal server error",
	})
}
