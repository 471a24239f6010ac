package models

// CartItem is one (product, color, engraving) selection for a user.
// Adding the same tuple again merges into the existing row.
type CartItem struct {
	BaseModel
	UserID           uint    `gorm:"index" json:"user_id"`
	ProductID        uint    `gorm:"index" json:"product_id"`
	Color            string  `json:"color"`
	EngravedName     string  `json:"engraved_name"`
	Quantity         int     `json:"quantity"`
	UnitPrice        float64 `json:"unit_price"`
	CustomizationFee float64 `json:"customization_fee"`
	Subtotal         float64 `json:"subtotal"`
}
