package shop

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/example/keyligtasan/internal/models"
)

// ChatService owns the append-only message log between customers and admins.
type ChatService struct {
	db *gorm.DB
}

// NewChatService constructs ChatService.
func NewChatService(db *gorm.DB) *ChatService {
	return &ChatService{db: db}
}

// MessageView is a chat message annotated with display names for rendering.
type MessageView struct {
	ID           uint      `json:"id"`
	SenderID     uint      `json:"sender_id"`
	ReceiverID   uint      `json:"receiver_id"`
	SenderType   string    `json:"sender_type"`
	Message      string    `json:"message"`
	IsRead       bool      `json:"is_read"`
	CreatedAt    time.Time `json:"created_at"`
	SenderName   string    `json:"sender_name"`
	ReceiverName string    `json:"receiver_name"`
}

// ConversationView is one row of the admin inbox: the customer, their most
// recent message, and how many of their messages the admin has not read.
type ConversationView struct {
	CustomerID      uint      `json:"customer_id"`
	FullName        string    `json:"full_name"`
	Username        string    `json:"username"`
	Email           string    `json:"email"`
	UnreadCount     int       `json:"unread_count"`
	LastMessage     string    `json:"last_message"`
	LastMessageTime time.Time `json:"last_message_time"`
}

// Send appends one message. Customer senders default to the first active
// admin when no receiver is given; admin senders must name their receiver.
func (s *ChatService) Send(senderID uint, senderType, message string, receiverID uint) (*models.ChatMessage, error) {
	if senderType != models.SenderCustomer && senderType != models.SenderAdmin {
		return nil, NewValidationError("invalid sender type")
	}
	if strings.TrimSpace(message) == "" {
		return nil, NewValidationError("message cannot be empty")
	}

	if senderType == models.SenderCustomer && receiverID == 0 {
		var admin models.User
		err := s.db.Where("role = ? AND status = ?", models.RoleAdmin, models.StatusActive).
			Order("id asc").
			First(&admin).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, &NotFoundError{Resource: "admin user"}
			}
			return nil, &DatabaseError{Err: err}
		}
		receiverID = admin.ID
	}
	if senderType == models.SenderAdmin && receiverID == 0 {
		return nil, NewValidationError("receiver_id is required for admin messages")
	}

	for _, id := range []uint{senderID, receiverID} {
		var count int64
		if err := s.db.Model(&models.User{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return nil, &DatabaseError{Err: err}
		}
		if count == 0 {
			return nil, &NotFoundError{Resource: "user"}
		}
	}

	msg := models.ChatMessage{
		SenderID:   senderID,
		ReceiverID: receiverID,
		SenderType: senderType,
		Message:    strings.TrimSpace(message),
		IsRead:     false,
	}
	if err := s.db.Create(&msg).Error; err != nil {
		return nil, &DatabaseError{Err: err}
	}
	return &msg, nil
}

// Messages returns every message where the user is sender or receiver,
// oldest first, annotated with display names.
func (s *ChatService) Messages(userID uint) ([]MessageView, error) {
	var count int64
	if err := s.db.Model(&models.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
		return nil, &DatabaseError{Err: err}
	}
	if count == 0 {
		return nil, &NotFoundError{Resource: "user"}
	}

	var messages []models.ChatMessage
	if err := s.db.Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at asc").
		Find(&messages).Error; err != nil {
		return nil, &DatabaseError{Err: err}
	}

	names, err := s.displayNames(messages)
	if err != nil {
		return nil, err
	}

	views := make([]MessageView, 0, len(messages))
	for _, m := range messages {
		views = append(views, MessageView{
			ID:           m.ID,
			SenderID:     m.SenderID,
			ReceiverID:   m.ReceiverID,
			SenderType:   m.SenderType,
			Message:      m.Message,
			IsRead:       m.IsRead,
			CreatedAt:    m.CreatedAt,
			SenderName:   names[m.SenderID],
			ReceiverName: names[m.ReceiverID],
		})
	}
	return views, nil
}

// MarkRead flips read=true on every unread message addressed to the user
// and returns the count affected.
func (s *ChatService) MarkRead(userID uint) (int64, error) {
	res := s.db.Model(&models.ChatMessage{}).
		Where("receiver_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	if res.Error != nil {
		return 0, &DatabaseError{Err: res.Error}
	}
	return res.RowsAffected, nil
}

// Conversations builds the admin inbox: one row per customer who has
// exchanged at least one message, ordered by recency.
func (s *ChatService) Conversations() ([]ConversationView, error) {
	var messages []models.ChatMessage
	if err := s.db.Order("created_at desc").Find(&messages).Error; err != nil {
		return nil, &DatabaseError{Err: err}
	}

	type aggregate struct {
		last   *models.ChatMessage
		unread int
	}
	byCustomer := make(map[uint]*aggregate)
	order := make([]uint, 0)

	for i := range messages {
		m := &messages[i]
		customerID := m.SenderID
		if m.SenderType == models.SenderAdmin {
			customerID = m.ReceiverID
		}

		agg, ok := byCustomer[customerID]
		if !ok {
			agg = &aggregate{last: m}
			byCustomer[customerID] = agg
			order = append(order, customerID)
		}
		if m.SenderType == models.SenderCustomer && !m.IsRead {
			agg.unread++
		}
	}

	if len(order) == 0 {
		return []ConversationView{}, nil
	}

	var users []models.User
	if err := s.db.Where("id IN ?", order).Find(&users).Error; err != nil {
		return nil, &DatabaseError{Err: err}
	}
	userByID := make(map[uint]models.User, len(users))
	for _, u := range users {
		userByID[u.ID] = u
	}

	views := make([]ConversationView, 0, len(order))
	for _, customerID := range order {
		agg := byCustomer[customerID]
		u := userByID[customerID]
		views = append(views, ConversationView{
			CustomerID:      customerID,
			FullName:        u.FullName,
			Username:        u.Username,
			Email:           u.Email,
			UnreadCount:     agg.unread,
			LastMessage:     agg.last.Message,
			LastMessageTime: agg.last.CreatedAt,
		})
	}
	return views, nil
}

func (s *ChatService) displayNames(messages []models.ChatMessage) (map[uint]string, error) {
	ids := make([]uint, 0, len(messages)*2)
	seen := make(map[uint]bool)
	for _, m := range messages {
		for _, id := range []uint{m.SenderID, m.ReceiverID} {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	if len(ids) == 0 {
		return map[uint]string{}, nil
	}

	var users []models.User
	if err := s.db.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, &DatabaseError{Err: err}
	}

	names := make(map[uint]string, len(users))
	for _, u := range users {
		name := u.FullName
		if name == "" {
			name = u.Username
		}
		names[u.ID] = name
	}
	return names, nil
}
