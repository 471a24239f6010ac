package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/example/keyligtasan/internal/middleware"
	"github.com/example/keyligtasan/internal/models"
	"github.com/example/keyligtasan/internal/shop"
)

// ChatHandler exposes the polling-based chat endpoints.
type ChatHandler struct {
	chat *shop.ChatService
}

// NewChatHandler constructs ChatHandler.
func NewChatHandler(chat *shop.ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

type sendMessageRequest struct {
	Message    string `json:"message"`
	ReceiverID uint   `json:"receiver_id"`
}

// SendMessage appends one message from the authenticated user. Customers
// get the first active admin as receiver when none is given.
func (h *ChatHandler) SendMessage(c *fiber.Ctx) error {
	userID, role, ok := middleware.GetCurrentUser(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req sendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	senderType := models.SenderCustomer
	if role == models.RoleAdmin {
		senderType = models.SenderAdmin
	}

	msg, err := h.chat.Send(userID, senderType, req.Message, req.ReceiverID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":     true,
		"message_id":  msg.ID,
		"sender_id":   msg.SenderID,
		"receiver_id": msg.ReceiverID,
		"timestamp":   msg.CreatedAt,
	})
}

// ListMessages returns the conversation thread, oldest first. Admins may
// query any user's thread via ?user_id=; customers always get their own.
func (h *ChatHandler) ListMessages(c *fiber.Ctx) error {
	userID, role, ok := middleware.GetCurrentUser(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	target := userID
	if role == models.RoleAdmin {
		if v := c.Query("user_id"); v != "" {
			parsed, err := strconv.ParseUint(v, 10, 64)
			if err != nil || parsed == 0 {
				return fiber.NewError(fiber.StatusBadRequest, "invalid user_id")
			}
			target = uint(parsed)
		}
	}

	messages, err := h.chat.Messages(target)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success":       true,
		"user_id":       target,
		"message_count": len(messages),
		"messages":      messages,
	})
}

// MarkRead flips read=true on every unread message addressed to the
// authenticated user.
func (h *ChatHandler) MarkRead(c *fiber.Ctx) error {
	userID, _, ok := middleware.GetCurrentUser(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	count, err := h.chat.MarkRead(userID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"marked_count": count,
		"user_id":      userID,
	})
}

// ListConversations returns the admin inbox ordered by recency.
func (h *ChatHandler) ListConversations(c *fiber.Ctx) error {
	conversations, err := h.chat.Conversations()
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success":            true,
		"conversation_count": len(conversations),
		"conversations":      conversations,
	})
}
