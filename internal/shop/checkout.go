package shop

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/example/keyligtasan/internal/models"
)

// CheckoutService materializes a user's cart into a durable order. All
// writes happen in one transaction: a failure at any step leaves the cart
// untouched and no partial order visible.
type CheckoutService struct {
	db      *gorm.DB
	pricing Pricing
}

// NewCheckoutService constructs CheckoutService.
func NewCheckoutService(db *gorm.DB, pricing Pricing) *CheckoutService {
	return &CheckoutService{db: db, pricing: pricing}
}

// CheckoutInput carries the shipping and payment fields for one checkout.
type CheckoutInput struct {
	RecipientName string
	PhoneNumber   string
	Address       string
	City          string
	Province      string
	PostalCode    string
	PaymentMethod string
	OrderNotes    string
}

// CheckoutResult is returned to the caller for immediate confirmation.
type CheckoutResult struct {
	OrderID     uint
	OrderNumber string
	Total       float64
}

func (in *CheckoutInput) validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"recipient_name", in.RecipientName},
		{"phone_number", in.PhoneNumber},
		{"address", in.Address},
		{"city", in.City},
		{"province", in.Province},
		{"payment_method", in.PaymentMethod},
	}

	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			return NewValidationError("missing required field: %s", field.name)
		}
	}
	return nil
}

// PlaceOrder converts the user's current cart plus a shipping address into
// an order with per-item snapshots, decrements stock, and clears the cart.
func (s *CheckoutService) PlaceOrder(userID uint, in CheckoutInput) (*CheckoutResult, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	var result CheckoutResult

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var items []models.CartItem
		if err := tx.Where("user_id = ?", userID).Find(&items).Error; err != nil {
			return &DatabaseError{Err: err}
		}
		if len(items) == 0 {
			return &EmptyCartError{}
		}

		var subtotal float64
		for _, item := range items {
			subtotal += LineSubtotal(item.UnitPrice, item.CustomizationFee, item.Quantity)
		}
		shippingFee := s.pricing.ShippingFee(subtotal)
		total := subtotal + shippingFee

		// Re-validate and decrement stock per line. The conditional update
		// means two racing checkouts cannot both take the last unit.
		products := make(map[uint]models.Product, len(items))
		for _, item := range items {
			var product models.Product
			if err := tx.First(&product, "id = ?", item.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &NotFoundError{Resource: "product"}
				}
				return &DatabaseError{Err: err}
			}
			if !product.IsActive {
				return NewValidationError("product %s is no longer available", product.Name)
			}

			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", item.ProductID, item.Quantity).
				Update("stock", gorm.Expr("stock - ?", item.Quantity))
			if res.Error != nil {
				return &DatabaseError{Err: res.Error}
			}
			if res.RowsAffected == 0 {
				return &InsufficientStockError{ProductName: product.Name, Available: product.Stock}
			}

			products[item.ProductID] = product
		}

		addressID, err := s.resolveAddress(tx, userID, in)
		if err != nil {
			return err
		}

		order := models.Order{
			UserID:            userID,
			ShippingAddressID: addressID,
			Subtotal:          subtotal,
			ShippingFee:       shippingFee,
			Total:             total,
			Status:            "pending",
			PaymentMethod:     in.PaymentMethod,
			OrderNotes:        in.OrderNotes,
		}

		for _, item := range items {
			order.Items = append(order.Items, models.OrderItem{
				ProductID:        item.ProductID,
				ProductName:      products[item.ProductID].Name,
				Color:            item.Color,
				EngravedName:     item.EngravedName,
				Quantity:         item.Quantity,
				UnitPrice:        item.UnitPrice,
				CustomizationFee: item.CustomizationFee,
				Subtotal:         LineSubtotal(item.UnitPrice, item.CustomizationFee, item.Quantity),
			})
		}

		// order_number is omitted from the insert: the column is unique and
		// the number needs the generated primary key, so writing a placeholder
		// would make concurrent checkouts collide on the index.
		if err := tx.Omit("OrderNumber").Create(&order).Error; err != nil {
			return &DatabaseError{Err: err}
		}
		order.OrderNumber = OrderNumber(order.ID)
		if err := tx.Model(&models.Order{}).
			Where("id = ?", order.ID).
			Update("order_number", order.OrderNumber).Error; err != nil {
			return &DatabaseError{Err: err}
		}

		if err := tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error; err != nil {
			return &DatabaseError{Err: err}
		}

		result = CheckoutResult{
			OrderID:     order.ID,
			OrderNumber: order.OrderNumber,
			Total:       total,
		}
		return nil
	})
	if err != nil {
		if IsBusinessError(err) {
			return nil, err
		}
		return nil, &DatabaseError{Err: err}
	}

	return &result, nil
}

// resolveAddress reuses an existing shipping address when every identifying
// field matches exactly, otherwise inserts a new row.
func (s *CheckoutService) resolveAddress(tx *gorm.DB, userID uint, in CheckoutInput) (uint, error) {
	var existing models.ShippingAddress
	err := tx.Where(
		"user_id = ? AND recipient_name = ? AND phone_number = ? AND address = ? AND city = ? AND province = ?",
		userID, in.RecipientName, in.PhoneNumber, in.Address, in.City, in.Province,
	).First(&existing).Error

	if err == nil {
		return existing.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, &DatabaseError{Err: err}
	}

	address := models.ShippingAddress{
		UserID:        userID,
		RecipientName: in.RecipientName,
		PhoneNumber:   in.PhoneNumber,
		Address:       in.Address,
		City:          in.City,
		Province:      in.Province,
		PostalCode:    in.PostalCode,
	}
	if err := tx.Create(&address).Error; err != nil {
		return 0, &DatabaseError{Err: err}
	}
	return address.ID, nil
}
