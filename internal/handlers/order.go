package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/keyligtasan/internal/middleware"
	"github.com/example/keyligtasan/internal/models"
	"github.com/example/keyligtasan/internal/shop"
	"github.com/example/keyligtasan/internal/utils"
)

// OrderHandler manages order query and status endpoints.
type OrderHandler struct {
	db *gorm.DB
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(db *gorm.DB) *OrderHandler {
	return &OrderHandler{db: db}
}

// ListOrders returns the authenticated user's orders, newest first, with
// nested items.
func (h *OrderHandler) ListOrders(c *fiber.Ctx) error {
	userID, _, ok := middleware.GetCurrentUser(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	query := h.db.Where("user_id = ?", userID).Model(&models.Order{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []models.Order
	if err := query.Preload("Items").
		Order("created_at desc").
		Find(&orders).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "orders": orders})
}

// GetOrder returns a single order for the authenticated user.
func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	userID, _, ok := middleware.GetCurrentUser(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var order models.Order
	if err := h.db.Preload("Items").Preload("ShippingAddress").
		First(&order, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return &shop.NotFoundError{Resource: "order"}
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "order": order})
}

type adminOrderView struct {
	models.Order
	UserName  string `json:"userName"`
	UserEmail string `json:"userEmail"`
	UserPhone string `json:"userPhone"`
}

// AdminListOrders returns all orders across users with owner annotations
// and aggregate stats for the dashboard.
func (h *OrderHandler) AdminListOrders(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)

	query := h.db.Model(&models.Order{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var orders []models.Order
	if err := query.Preload("Items").Preload("User").
		Order("created_at desc").
		Limit(pg.Limit).Offset(pg.Offset).
		Find(&orders).Error; err != nil {
		return err
	}

	views := make([]adminOrderView, 0, len(orders))
	for _, order := range orders {
		view := adminOrderView{Order: order}
		if order.User != nil {
			view.UserName = order.User.FullName
			if view.UserName == "" {
				view.UserName = order.User.Username
			}
			view.UserEmail = order.User.Email
			view.UserPhone = order.User.Phone
			view.Order.User = nil
		}
		views = append(views, view)
	}

	stats, err := h.orderStats()
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"orders":  views,
		"stats":   stats,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}

func (h *OrderHandler) orderStats() (fiber.Map, error) {
	type statusCount struct {
		Status string
		Count  int64
	}
	var counts []statusCount
	if err := h.db.Model(&models.Order{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&counts).Error; err != nil {
		return nil, err
	}

	byStatus := make(map[string]int64, len(shop.OrderStatuses))
	for _, s := range shop.OrderStatuses {
		byStatus[s] = 0
	}
	var total int64
	for _, sc := range counts {
		byStatus[sc.Status] = sc.Count
		total += sc.Count
	}

	var totalRevenue float64
	if err := h.db.Model(&models.Order{}).
		Where("status NOT IN ?", []string{"cancelled", "refunded"}).
		Select("COALESCE(SUM(total), 0)").
		Scan(&totalRevenue).Error; err != nil {
		return nil, err
	}

	return fiber.Map{
		"total":        total,
		"byStatus":     byStatus,
		"totalRevenue": totalRevenue,
	}, nil
}

type updateStatusRequest struct {
	OrderID   uint   `json:"order_id"`
	NewStatus string `json:"new_status"`
}

// UpdateStatus moves an order to a new status from the fixed vocabulary.
// Any status may move to any other.
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	var req updateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.OrderID == 0 {
		return shop.NewValidationError("order_id is required")
	}
	if !shop.IsValidStatus(req.NewStatus) {
		return &shop.InvalidStatusError{Status: req.NewStatus}
	}

	var order models.Order
	if err := h.db.First(&order, "id = ?", req.OrderID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return &shop.NotFoundError{Resource: "order"}
		}
		return err
	}

	oldStatus := order.Status
	if err := h.db.Model(&order).Updates(map[string]interface{}{
		"status":     req.NewStatus,
		"updated_at": time.Now(),
	}).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"old_status": oldStatus,
		"new_status": req.NewStatus,
	})
}
