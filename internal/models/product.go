package models

// Product is a catalog entry. Stock never goes negative: the checkout
// decrement is guarded by a stock >= quantity condition.
type Product struct {
	BaseModel
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	Colors      string  `json:"colors"`
	ImageURL    string  `json:"image_url"`
	IsActive    bool    `gorm:"default:true" json:"is_active"`
}
