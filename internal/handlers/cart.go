package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/keyligtasan/internal/middleware"
	"github.com/example/keyligtasan/internal/shop"
)

// CartHandler exposes the single action-dispatched cart endpoint.
type CartHandler struct {
	cart *shop.CartService
}

// NewCartHandler constructs CartHandler.
func NewCartHandler(cart *shop.CartService) *CartHandler {
	return &CartHandler{cart: cart}
}

type cartRequest struct {
	Action       string `json:"action"`
	ProductID    uint   `json:"product_id"`
	Color        string `json:"color"`
	EngravedName string `json:"engraved_name"`
	Quantity     int    `json:"quantity"`
	ItemID       uint   `json:"item_id"`
	// Accepted for wire compatibility; the server snapshots the price from
	// the product row and never trusts this value.
	UnitPrice float64 `json:"unit_price"`
}

// Handle dispatches get/add/update/remove/clear cart actions.
func (h *CartHandler) Handle(c *fiber.Ctx) error {
	userID, _, ok := middleware.GetCurrentUser(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req cartRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	switch req.Action {
	case "get":
		view, err := h.cart.Get(userID)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{
			"success":  true,
			"items":    view.Items,
			"subtotal": view.Subtotal,
			"shipping": view.Shipping,
			"total":    view.Total,
			"count":    len(view.Items),
		})

	case "add":
		if err := h.cart.Add(userID, req.ProductID, req.Color, req.EngravedName, req.Quantity); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"success": true, "message": "item added to cart"})

	case "update":
		if err := h.cart.UpdateQuantity(userID, req.ItemID, req.Quantity); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"success": true, "message": "quantity updated"})

	case "remove":
		if err := h.cart.Remove(userID, req.ItemID); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"success": true, "message": "item removed"})

	case "clear":
		if err := h.cart.Clear(userID); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"success": true, "message": "cart cleared"})

	default:
		return fiber.NewError(fiber.StatusBadRequest, "invalid action")
	}
}
