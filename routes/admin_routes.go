package routes

import (
	"github.com/stylenest/stylenest-api/controllers"
	"github.com/stylenest/stylenest-api/middleware"

	"github.com/gin-gonic/gin"
)

// initAdminRoutes initializes all back-office routes
func initAdminRoutes(router *gin.RouterGroup) {
	// Stock adjustments keep their historical path outside the /admin
	// prefix; the mobile admin build still calls it.
	router.PATCH("/products/:id/update-stock", middleware.AdminAuthMiddleware(), controllers.AdminUpdateStock)

	admin := router.Group("/admin")
	admin.POST("/login", controllers.AdminLogin)

	protected := admin.Group("")
	protected.Use(middleware.AdminAuthMiddleware())
	{
		// Catalog management
		protected.POST("/products", controllers.AdminCreateProduct)
		protected.PUT("/products/:id", controllers.AdminUpdateProduct)
		protected.DELETE("/products/:id", controllers.AdminDeleteProduct)
		protected.PATCH("/products/:id/update-stock", controllers.AdminUpdateStock)
		protected.POST("/categories", controllers.AdminCreateCategory)

		// Order management
		protected.GET("/orders", controllers.AdminListOrders)
		protected.PATCH("/orders/:id/status", controllers.AdminUpdateOrderStatus)

		// Sales reporting
		protected.GET("/sales-report", controllers.AdminSalesReport)
		protected.GET("/sales-report/excel", controllers.DownloadSalesReportExcel)

		// Support chat
		protected.GET("/chat", controllers.AdminListConversations)
		protected.GET("/chat/:userId", controllers.AdminGetChatHistory)
		protected.POST("/chat/:userId/reply", controllers.AdminReplyToChat)
	}
}
