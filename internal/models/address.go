package models

// ShippingAddress is a reusable recipient/address record. Checkout reuses an
// existing row when all identifying fields match exactly.
type ShippingAddress struct {
	BaseModel
	UserID        uint   `gorm:"index" json:"user_id"`
	RecipientName string `json:"recipient_name"`
	PhoneNumber   string `json:"phone_number"`
	Address       string `json:"address"`
	City          string `json:"city"`
	Province      string `json:"province"`
	PostalCode    string `json:"postal_code"`
	IsDefault     bool   `json:"is_default"`
}
