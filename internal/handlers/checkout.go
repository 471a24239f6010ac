package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/keyligtasan/internal/middleware"
	"github.com/example/keyligtasan/internal/shop"
)

// CheckoutHandler exposes the order-materialization endpoint.
type CheckoutHandler struct {
	checkout *shop.CheckoutService
}

// NewCheckoutHandler constructs CheckoutHandler.
func NewCheckoutHandler(checkout *shop.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout}
}

type checkoutRequest struct {
	RecipientName string `json:"recipient_name"`
	PhoneNumber   string `json:"phone_number"`
	Address       string `json:"address"`
	City          string `json:"city"`
	Province      string `json:"province"`
	PostalCode    string `json:"postal_code"`
	PaymentMethod string `json:"payment_method"`
	OrderNotes    string `json:"order_notes"`
}

// PlaceOrder converts the authenticated user's cart into an order.
func (h *CheckoutHandler) PlaceOrder(c *fiber.Ctx) error {
	userID, _, ok := middleware.GetCurrentUser(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req checkoutRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.checkout.PlaceOrder(userID, shop.CheckoutInput{
		RecipientName: req.RecipientName,
		PhoneNumber:   req.PhoneNumber,
		Address:       req.Address,
		City:          req.City,
		Province:      req.Province,
		PostalCode:    req.PostalCode,
		PaymentMethod: req.PaymentMethod,
		OrderNotes:    req.OrderNotes,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":      true,
		"message":      "Order placed successfully",
		"order_id":     result.OrderID,
		"order_number": result.OrderNumber,
		"total":        result.Total,
	})
}
