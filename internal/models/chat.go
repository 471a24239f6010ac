package models

// Sender types for chat messages.
const (
	SenderCustomer = "customer"
	SenderAdmin    = "admin"
)

// ChatMessage is an append-only message between a customer and an admin.
// The only permitted mutation is flipping IsRead when the receiver views
// the thread.
type ChatMessage struct {
	BaseModel
	SenderID   uint   `gorm:"index" json:"sender_id"`
	ReceiverID uint   `gorm:"index" json:"receiver_id"`
	SenderType string `json:"sender_type"`
	Message    string `json:"message"`
	IsRead     bool   `gorm:"default:false" json:"is_read"`
}
