package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/keyligtasan/internal/config"
	"github.com/example/keyligtasan/internal/handlers"
	"github.com/example/keyligtasan/internal/middleware"
	"github.com/example/keyligtasan/internal/shop"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	pricing := shop.Pricing{
		FreeShippingThreshold: cfg.FreeShippingThreshold,
		FlatShippingFee:       cfg.FlatShippingFee,
		EngravingFee:          cfg.EngravingFee,
	}

	cartService := shop.NewCartService(db, pricing)
	checkoutService := shop.NewCheckoutService(db, pricing)
	chatService := shop.NewChatService(db)

	authHandler := handlers.NewAuthHandler(db, cfg)
	productHandler := handlers.NewProductHandler(db)
	cartHandler := handlers.NewCartHandler(cartService)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService)
	orderHandler := handlers.NewOrderHandler(db)
	chatHandler := handlers.NewChatHandler(chatService)
	profileHandler := handlers.NewProfileHandler(db)
	adminHandler := handlers.NewAdminHandler(db, cfg)
	resetHandler := handlers.NewPasswordResetHandler(db)

	api := app.Group("/api")

	// Public routes
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/forgot-password", resetHandler.ForgotPassword)
	auth.Post("/reset-password", resetHandler.ResetPassword)

	api.Get("/products", productHandler.ListProducts)
	api.Get("/products/:id", productHandler.GetProduct)

	// Authenticated routes
	protected := api.Group("", middleware.AuthMiddleware(cfg))

	protected.Post("/cart", cartHandler.Handle)
	protected.Post("/checkout", checkoutHandler.PlaceOrder)

	protected.Get("/orders", orderHandler.ListOrders)
	protected.Get("/orders/:id", orderHandler.GetOrder)

	protected.Post("/chat/messages", chatHandler.SendMessage)
	protected.Get("/chat/messages", chatHandler.ListMessages)
	protected.Post("/chat/read", chatHandler.MarkRead)

	protected.Get("/profile", profileHandler.GetProfile)
	protected.Put("/profile", profileHandler.UpdateProfile)
	protected.Put("/profile/password", profileHandler.ChangePassword)
	protected.Get("/profile/addresses", profileHandler.ListAddresses)

	// Admin routes
	admin := protected.Group("/admin", middleware.RequireAdmin())

	admin.Get("/orders", orderHandler.AdminListOrders)
	admin.Put("/orders/status", orderHandler.UpdateStatus)

	admin.Post("/products", productHandler.CreateProduct)
	admin.Put("/products/stock", productHandler.UpdateStock)
	admin.Put("/products/:id", productHandler.UpdateProduct)
	admin.Delete("/products/:id", productHandler.DeleteProduct)

	admin.Get("/chat/conversations", chatHandler.ListConversations)
	admin.Get("/dashboard", adminHandler.DashboardStats)
}
