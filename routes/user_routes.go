package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/nived-628/ShopSphere/controllers"
	"github.com/nived-628/ShopSphere/middleware"
)

// initUserRoutes initializes all customer-facing routes
func initUserRoutes(router *gin.RouterGroup) {
	// Public routes (no authentication required)
	router.POST("/register", controllers.Register)
	router.POST("/login", controllers.Login)

	// Gateway webhook carries its own signature, never a session token
	router.POST("/payment/webhook", controllers.PaymentWebhook)

	// Contact-verified tracking lookup for guests
	router.POST("/track", controllers.TrackOrder)

	// Authenticated routes
	authed := router.Group("/")
	authed.Use(middleware.AuthMiddleware())
	{
		authed.POST("/payment/initiate", controllers.InitiatePayment)
		authed.POST("/payment/verify", controllers.VerifyPayment)
		authed.POST("/payment/cancel", controllers.CancelPayment)

		authed.GET("/orders", controllers.MyOrders)
		authed.GET("/orders/:orderNumber", controllers.GetOrder)
		authed.POST("/orders/:orderNumber/cancel", controllers.CancelOrder)
		authed.POST("/orders/:orderNumber/enrich", controllers.EnrichOrder)
		authed.GET("/orders/:orderNumber/proof-of-delivery", controllers.DownloadProofOfDelivery)

		authed.POST("/track/:orderNumber/cancel-shipment", controllers.CancelShipment)

		authed.POST("/coupons/apply", controllers.ApplyCoupon)
		authed.POST("/referrals/apply", controllers.ApplyReferral)
	}
}
