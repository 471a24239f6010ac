package shop

import (
	"errors"

	"gorm.io/gorm"

	"github.com/example/keyligtasan/internal/models"
)

const maxQuantity = 99

// CartService owns cart reads and mutations for a single user scope.
type CartService struct {
	db      *gorm.DB
	pricing Pricing
}

// NewCartService constructs CartService.
func NewCartService(db *gorm.DB, pricing Pricing) *CartService {
	return &CartService{db: db, pricing: pricing}
}

// CartView is the cart as rendered to the client: lines plus totals
// recomputed from stored components.
type CartView struct {
	Items    []models.CartItem
	Subtotal float64
	Shipping float64
	Total    float64
}

// Get returns the user's cart with totals.
func (s *CartService) Get(userID uint) (*CartView, error) {
	var items []models.CartItem
	if err := s.db.Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&items).Error; err != nil {
		return nil, &DatabaseError{Err: err}
	}

	var subtotal float64
	for i := range items {
		items[i].Subtotal = LineSubtotal(items[i].UnitPrice, items[i].CustomizationFee, items[i].Quantity)
		subtotal += items[i].Subtotal
	}

	shipping := s.pricing.ShippingFee(subtotal)
	return &CartView{
		Items:    items,
		Subtotal: subtotal,
		Shipping: shipping,
		Total:    subtotal + shipping,
	}, nil
}

// Add puts a (product, color, engraving) selection in the cart. Adding the
// same tuple again merges quantities into the existing line.
func (s *CartService) Add(userID, productID uint, color, engravedName string, quantity int) error {
	if productID == 0 {
		return NewValidationError("product_id is required")
	}
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 1 {
		return NewValidationError("quantity must be at least 1")
	}
	if quantity > maxQuantity {
		return NewValidationError("maximum quantity is %d", maxQuantity)
	}

	var product models.Product
	if err := s.db.First(&product, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Resource: "product"}
		}
		return &DatabaseError{Err: err}
	}
	if !product.IsActive {
		return NewValidationError("product %s is no longer available", product.Name)
	}

	fee := s.pricing.CustomizationFee(engravedName)

	var existing models.CartItem
	err := s.db.Where(
		"user_id = ? AND product_id = ? AND color = ? AND engraved_name = ?",
		userID, productID, color, engravedName,
	).First(&existing).Error

	switch {
	case err == nil:
		merged := existing.Quantity + quantity
		if merged > maxQuantity {
			return NewValidationError("maximum quantity is %d", maxQuantity)
		}
		updates := map[string]interface{}{
			"quantity": merged,
			"subtotal": LineSubtotal(existing.UnitPrice, existing.CustomizationFee, merged),
		}
		if err := s.db.Model(&existing).Updates(updates).Error; err != nil {
			return &DatabaseError{Err: err}
		}
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		item := models.CartItem{
			UserID:           userID,
			ProductID:        productID,
			Color:            color,
			EngravedName:     engravedName,
			Quantity:         quantity,
			UnitPrice:        product.Price,
			CustomizationFee: fee,
			Subtotal:         LineSubtotal(product.Price, fee, quantity),
		}
		if err := s.db.Create(&item).Error; err != nil {
			return &DatabaseError{Err: err}
		}
		return nil
	default:
		return &DatabaseError{Err: err}
	}
}

// UpdateQuantity sets a cart line's quantity and recomputes its subtotal.
func (s *CartService) UpdateQuantity(userID, itemID uint, quantity int) error {
	if itemID == 0 {
		return NewValidationError("item_id is required")
	}
	if quantity < 1 {
		return NewValidationError("quantity must be at least 1")
	}
	if quantity > maxQuantity {
		return NewValidationError("maximum quantity is %d", maxQuantity)
	}

	var item models.CartItem
	if err := s.db.First(&item, "id = ? AND user_id = ?", itemID, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Resource: "cart item"}
		}
		return &DatabaseError{Err: err}
	}

	updates := map[string]interface{}{
		"quantity": quantity,
		"subtotal": LineSubtotal(item.UnitPrice, item.CustomizationFee, quantity),
	}
	if err := s.db.Model(&item).Updates(updates).Error; err != nil {
		return &DatabaseError{Err: err}
	}
	return nil
}

// Remove deletes one cart line.
func (s *CartService) Remove(userID, itemID uint) error {
	if itemID == 0 {
		return NewValidationError("item_id is required")
	}

	res := s.db.Delete(&models.CartItem{}, "id = ? AND user_id = ?", itemID, userID)
	if res.Error != nil {
		return &DatabaseError{Err: res.Error}
	}
	if res.RowsAffected == 0 {
		return &NotFoundError{Resource: "cart item"}
	}
	return nil
}

// Clear deletes every cart line for the user.
func (s *CartService) Clear(userID uint) error {
	if err := s.db.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error; err != nil {
		return &DatabaseError{Err: err}
	}
	return nil
}
