package models

import "time"

// User roles and account statuses.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"

	StatusActive   = "active"
	StatusInactive = "inactive"
)

// User represents a customer or admin account.
type User struct {
	BaseModel
	Username     string `gorm:"uniqueIndex" json:"username"`
	Email        string `gorm:"uniqueIndex" json:"email"`
	FullName     string `json:"full_name"`
	Phone        string `json:"phone"`
	PasswordHash string `json:"-"`
	Role         string `gorm:"index;default:customer" json:"role"`
	Status       string `gorm:"default:active" json:"status"`

	Addresses []ShippingAddress `json:"addresses,omitempty"`
	Orders    []Order           `json:"orders,omitempty"`
}

// PasswordResetToken is a single-use token for the forgot-password flow.
type PasswordResetToken struct {
	BaseModel
	UserID    uint       `gorm:"index" json:"user_id"`
	Token     string     `gorm:"uniqueIndex" json:"token"`
	ExpiresAt time.Time  `json:"expires_at"`
	UsedAt    *time.Time `json:"used_at"`
}
