package models

type Order struct {
	BaseModel
	UserID            uint             `gorm:"index" json:"user_id"`
	User              *User            `json:"user,omitempty"`
	OrderNumber       string           `gorm:"uniqueIndex" json:"order_number"`
	ShippingAddressID uint             `json:"shipping_address_id"`
	ShippingAddress   *ShippingAddress `json:"shipping_address,omitempty"`
	Subtotal          float64          `json:"subtotal"`
	ShippingFee       float64          `json:"shipping_fee"`
	Total             float64          `json:"total"`
	Status            string           `gorm:"index" json:"status"`
	PaymentMethod     string           `json:"payment_method"`
	OrderNotes        string           `json:"order_notes"`
	Items             []OrderItem      `json:"items,omitempty"`
}

// OrderItem freezes the product snapshot at order-creation time. Later
// catalog price changes never affect it.
type OrderItem struct {
	BaseModel
	OrderID          uint    `gorm:"index" json:"order_id"`
	ProductID        uint    `json:"product_id"`
	ProductName      string  `json:"product_name"`
	Color            string  `json:"color"`
	EngravedName     string  `json:"engraved_name"`
	Quantity         int     `json:"quantity"`
	UnitPrice        float64 `json:"unit_price"`
	CustomizationFee float64 `json:"customization_fee"`
	Subtotal         float64 `json:"subtotal"`
}
