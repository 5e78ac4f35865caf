package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/nived-628/ShopSphere/controllers"
	"github.com/nived-628/ShopSphere/middleware"
)

// initAdminRoutes initializes all admin routes
func initAdminRoutes(router *gin.RouterGroup) {
	admin := router.Group("/admin")

	admin.POST("/login", controllers.AdminLogin)

	protected := admin.Group("/")
	protected.Use(middleware.AdminAuthMiddleware())
	{
		protected.PUT("/orders/:orderNumber/ship", controllers.AdminShipOrder)
		protected.PUT("/orders/:orderNumber/status", controllers.AdminUpdateOrderStatus)
		protected.POST("/orders/bulk/ship", controllers.AdminBulkShip)
		protected.POST("/orders/bulk/status", controllers.AdminBulkUpdateStatus)
		protected.GET("/orders/export", controllers.AdminExportOrders)

		protected.POST("/payments/:orderId/refund", controllers.AdminRefundPayment)

		protected.POST("/track/:orderNumber/events", controllers.AdminRecordCourierEvent)
	}
}
