package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/quickbite/backend/controllers"
	"github.com/quickbite/backend/events"
	"github.com/quickbite/backend/middlewares"
	"github.com/quickbite/backend/services"
	"github.com/quickbite/backend/storage"
)

// SetupRouter wires every route group onto a fresh gin engine.
func SetupRouter(db *gorm.DB, pub *events.Publisher, images storage.ImageStore, uploadDir string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.CORSMiddleware())
	r.Use(middlewares.PrometheusMiddleware())
	r.Use(middlewares.RateLimit(50, 100))

	accounts := services.NewAccountService(db)
	carts := services.NewCartService(db)
	orders := services.NewOrderService(db, pub)
	deliveries := services.NewDeliveryService(db, pub)
	payments := services.NewPaymentService(db)
	reviews := services.NewReviewService(db)

	auth := controllers.NewAuthController(db, accounts)
	cart := controllers.NewCartController(carts)
	order := controllers.NewOrderController(orders)
	delivery := controllers.NewDeliveryController(deliveries)
	payment := controllers.NewPaymentController(payments)
	review := controllers.NewReviewController(reviews)
	category := controllers.NewCategoryController(db)
	food := controllers.NewFoodController(db, images)
	seller := controllers.NewSellerController(db, images)
	customer := controllers.NewCustomerController(db)
	partner := controllers.NewPartnerController(db)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.Static("/uploads", uploadDir)

	api := r.Group("/api/v1")

	// Login and registration get the tight limiter.
	authGroup := api.Group("/auth", middlewares.StrictRateLimit())
	{
		authGroup.POST("/register/customer", auth.RegisterCustomer)
		authGroup.POST("/register/seller", auth.RegisterSeller)
		authGroup.POST("/register/delivery", auth.RegisterDeliveryPartner)
		authGroup.POST("/login", auth.Login)
	}

	// Unauthenticated browsing.
	public := api.Group("")
	{
		public.GET("/restaurants", seller.List)
		public.GET("/restaurants/:id", seller.Detail)
		public.GET("/categories/seller/:sellerId", category.ListBySeller)
		public.GET("/food-items", food.Browse)
		public.GET("/food-items/:id", food.Detail)
		public.GET("/reviews/seller/:sellerId", review.BySeller)
		public.GET("/reviews/food-item/:foodItemId", review.ByFoodItem)
	}

	authed := api.Group("", middlewares.AuthMiddleware())
	{
		authed.GET("/profile", auth.GetProfile)
		authed.PUT("/profile/password", auth.ChangePassword)
		authed.GET("/feed/live", controllers.LiveFeed)
		authed.GET("/orders/:id", order.Detail)
		authed.GET("/deliveries/order/:orderId", delivery.ForOrder)
	}

	customerGroup := api.Group("", middlewares.AuthMiddleware(), middlewares.RequireRole(services.RoleCustomer))
	{
		customerGroup.PUT("/customers/profile", customer.UpdateProfile)

		customerGroup.GET("/cart", cart.GetCart)
		customerGroup.POST("/cart/items", cart.AddItem)
		customerGroup.PUT("/cart/items/:id", cart.UpdateItem)
		customerGroup.DELETE("/cart/items/:id", cart.RemoveItem)
		customerGroup.DELETE("/cart", cart.ClearCart)

		customerGroup.POST("/orders", order.Checkout)
		customerGroup.GET("/orders", order.ListMine)
		customerGroup.PUT("/orders/:id/cancel", order.Cancel)
		customerGroup.GET("/orders/stats", order.CustomerStats)

		customerGroup.POST("/payments", payment.CreateIntent)
		customerGroup.PUT("/payments/:id/confirm", payment.Confirm)
		customerGroup.PUT("/payments/:id/cancel", payment.Cancel)
		customerGroup.GET("/payments/order/:orderId", payment.ForOrder)
		customerGroup.GET("/payments", payment.History)
		customerGroup.GET("/payments/stats", payment.Stats)

		customerGroup.POST("/reviews", review.Create)
		customerGroup.PUT("/reviews/:id", review.Update)
		customerGroup.DELETE("/reviews/:id", review.Delete)
		customerGroup.GET("/reviews/mine", review.Mine)
	}

	sellerGroup := api.Group("/seller", middlewares.AuthMiddleware(), middlewares.RequireRole(services.RoleSeller))
	{
		sellerGroup.PUT("/profile", seller.UpdateProfile)
		sellerGroup.PUT("/status", seller.SetStatus)
		sellerGroup.POST("/image", seller.UploadImage)

		sellerGroup.POST("/categories", category.Create)
		sellerGroup.GET("/categories", category.ListMine)
		sellerGroup.PUT("/categories/:id", category.Update)
		sellerGroup.DELETE("/categories/:id", category.Delete)

		sellerGroup.POST("/food-items", food.Create)
		sellerGroup.GET("/food-items", food.ListMine)
		sellerGroup.PUT("/food-items/:id", food.Update)
		sellerGroup.PUT("/food-items/:id/availability", food.SetAvailability)
		sellerGroup.DELETE("/food-items/:id", food.Delete)

		sellerGroup.GET("/orders", order.ListForSeller)
		sellerGroup.PUT("/orders/:id/status", order.UpdateStatus)
		sellerGroup.GET("/orders/stats", order.SellerStats)

		sellerGroup.GET("/delivery-partners", delivery.AvailablePartners)
		sellerGroup.POST("/deliveries", delivery.Assign)
		sellerGroup.PUT("/deliveries/:id/notes", delivery.AddNotes)

		sellerGroup.GET("/payments/order/:orderId", payment.ForOrder)
	}

	deliveryGroup := api.Group("/delivery", middlewares.AuthMiddleware(), middlewares.RequireRole(services.RoleDelivery))
	{
		deliveryGroup.PUT("/profile", partner.UpdateProfile)
		deliveryGroup.PUT("/availability", partner.SetAvailability)
		deliveryGroup.GET("/assignments", delivery.CurrentAssignments)
		deliveryGroup.GET("/history", delivery.History)
		deliveryGroup.PUT("/assignments/:id/status", delivery.UpdateStatus)
		deliveryGroup.PUT("/assignments/:id/notes", delivery.AddNotes)
		deliveryGroup.PUT("/location", delivery.UpdateLocation)
		deliveryGroup.PUT("/payments/cod/:orderId", payment.ConfirmCOD)
	}

	return r
}
