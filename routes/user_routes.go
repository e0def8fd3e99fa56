package routes

import (
	"time"

	"github.com/stylenest/stylenest-api/controllers"
	"github.com/stylenest/stylenest-api/middleware"
	"github.com/stylenest/stylenest-api/utils"

	"github.com/gin-gonic/gin"
)

// initUserRoutes initializes all customer-facing routes
func initUserRoutes(router *gin.RouterGroup) {
	// Public routes (no authentication required)
	authLimit := utils.RateLimitMiddleware(10, time.Minute)
	router.POST("/register", authLimit, controllers.RegisterUser)
	router.POST("/login", authLimit, controllers.LoginUser)

	// Catalog routes
	router.GET("/products", controllers.GetProducts)
	router.GET("/products/:id", controllers.GetProductDetails)
	router.GET("/categories", controllers.ListCategories)

	// Protected routes (require authentication)
	protected := router.Group("")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.POST("/logout", controllers.Logout)
		protected.GET("/profile", controllers.GetProfile)
		protected.PUT("/profile", controllers.UpdateProfile)

		// Cart operations
		protected.POST("/cart/:userId/add", controllers.AddToCart)
		protected.GET("/cart/:userId", controllers.GetCart)
		protected.PUT("/cart/:userId/items/:itemId", controllers.UpdateCartItem)
		protected.DELETE("/cart/:userId/items/:itemId", controllers.RemoveCartItem)
		protected.DELETE("/cart/:userId", controllers.ClearCart)

		// Reward ledger
		protected.GET("/user-rewards", controllers.GetUserRewards)
		protected.POST("/user-rewards/check-in", controllers.CheckIn)
		protected.POST("/user-rewards/spin", controllers.Spin)

		// Vouchers
		protected.GET("/vouchers", controllers.ListVouchers)
		protected.POST("/vouchers/apply", controllers.ApplyVoucher)
		protected.POST("/vouchers/remove", controllers.RemoveVoucher)

		// Orders
		protected.POST("/orders", controllers.PlaceOrder)
		protected.GET("/orders", controllers.ListOrders)
		protected.GET("/orders/:id", controllers.GetOrderDetails)
		protected.PATCH("/orders/:id/status", controllers.UpdateOrderStatus)
		protected.GET("/orders/:id/invoice", controllers.DownloadInvoice)

		// Payments
		protected.POST("/payments/initiate", controllers.InitiatePayment)
		protected.POST("/payments/verify", controllers.VerifyPayment)

		// Addresses
		protected.GET("/addresses", controllers.ListAddresses)
		protected.POST("/addresses", controllers.AddAddress)
		protected.PUT("/addresses/:id", controllers.UpdateAddress)
		protected.DELETE("/addresses/:id", controllers.DeleteAddress)

		// Stored cards
		protected.GET("/payment-methods", controllers.ListPaymentMethods)
		protected.POST("/payment-methods", controllers.AddPaymentMethod)
		protected.DELETE("/payment-methods/:id", controllers.DeletePaymentMethod)

		// Wishlist
		protected.GET("/wishlist", controllers.GetWishlist)
		protected.POST("/wishlist", controllers.AddToWishlist)
		protected.DELETE("/wishlist/:productId", controllers.RemoveFromWishlist)

		// Support chat
		protected.GET("/chat", controllers.GetChatHistory)
		protected.POST("/chat", controllers.SendChatMessage)
	}
}
