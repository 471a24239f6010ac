package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/keyligtasan/internal/config"
	"github.com/example/keyligtasan/internal/models"
)

// AdminHandler manages admin-only dashboard endpoints.
type AdminHandler struct {
	db  *gorm.DB
	cfg *config.Config
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(db *gorm.DB, cfg *config.Config) *AdminHandler {
	return &AdminHandler{db: db, cfg: cfg}
}

// DashboardStats returns aggregate statistics for the admin dashboard:
// order buckets and revenue, product and stock counts, most-ordered
// products, and recent orders.
func (h *AdminHandler) DashboardStats(c *fiber.Ctx) error {
	var totalOrders int64
	if err := h.db.Model(&models.Order{}).Count(&totalOrders).Error; err != nil {
		return err
	}

	type statusCount struct {
		Status string `json:"status"`
		Count  int64  `json:"count"`
	}
	var statusCounts []statusCount
	if err := h.db.Model(&models.Order{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&statusCounts).Error; err != nil {
		return err
	}

	ordersByStatus := make(map[string]int64)
	for _, sc := range statusCounts {
		ordersByStatus[sc.Status] = sc.Count
	}

	var totalRevenue float64
	if err := h.db.Model(&models.Order{}).
		Where("status NOT IN ?", []string{"cancelled", "refunded"}).
		Select("COALESCE(SUM(total), 0)").
		Scan(&totalRevenue).Error; err != nil {
		return err
	}

	var totalProducts, outOfStock, lowStock int64
	if err := h.db.Model(&models.Product{}).Count(&totalProducts).Error; err != nil {
		return err
	}
	if err := h.db.Model(&models.Product{}).Where("stock = 0").Count(&outOfStock).Error; err != nil {
		return err
	}
	if err := h.db.Model(&models.Product{}).
		Where("stock > 0 AND stock < ?", h.cfg.LowStockThreshold).
		Count(&lowStock).Error; err != nil {
		return err
	}

	var totalStock int64
	if err := h.db.Model(&models.Product{}).
		Select("COALESCE(SUM(stock), 0)").
		Scan(&totalStock).Error; err != nil {
		return err
	}

	type productCount struct {
		ProductID   uint   `json:"product_id"`
		ProductName string `json:"product_name"`
		Ordered     int64  `json:"ordered"`
	}
	var mostOrdered []productCount
	if err := h.db.Model(&models.OrderItem{}).
		Select("product_id, product_name, SUM(quantity) as ordered").
		Group("product_id, product_name").
		Order("ordered desc").
		Limit(5).
		Scan(&mostOrdered).Error; err != nil {
		return err
	}

	var recentOrders []models.Order
	if err := h.db.Preload("Items").
		Order("created_at desc").
		Limit(10).
		Find(&recentOrders).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"orders": fiber.Map{
			"total":         totalOrders,
			"by_status":     ordersByStatus,
			"total_revenue": totalRevenue,
		},
		"products": fiber.Map{
			"total":        totalProducts,
			"total_stock":  totalStock,
			"out_of_stock": outOfStock,
			"low_stock":    lowStock,
		},
		"most_ordered":  mostOrdered,
		"recent_orders": recentOrders,
	})
}
