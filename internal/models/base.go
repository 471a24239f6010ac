package models

import (
	"time"
)

// BaseModel provides shared columns for all tables. Order numbers are
// derived from the numeric primary key, so IDs stay auto-increment integers.
type BaseModel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
