package main

import (
	"log"

	"github.com/nived-628/ShopSphere/config"
	"github.com/nived-628/ShopSphere/controllers"
	"github.com/nived-628/ShopSphere/gateway"
	"github.com/nived-628/ShopSphere/routes"
	"github.com/nived-628/ShopSphere/services"
	"github.com/nived-628/ShopSphere/utils"
)

func main() {
	// Initialize logger
	if err := utils.InitLogger(); err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}

	// Load environment variables
	cfg, err := config.LoadConfig()
	if err != nil {
		utils.LogError("Error loading config: %v", err)
		log.Fatal("Error loading config:", err)
	}

	// Initialize database
	config.InitDB()

	// Create sample admin
	if err := controllers.CreateSampleAdmin(); err != nil {
		utils.LogError("Failed to create sample admin: %v", err)
		log.Fatal("Failed to create sample admin:", err)
	}

	// Wire the service layer
	paymentGateway := gateway.NewRazorpayGateway(cfg.RazorpayKey, cfg.RazorpaySecret, cfg.RazorpayWebhookSecret)
	courierClient := services.NewHTTPCourierClient(cfg.CourierBaseURL, cfg.CourierAPIKey)
	trackingBridge := services.NewTrackingBridge(config.DB, courierClient)

	coordinator := services.NewPaymentCoordinator(config.DB, paymentGateway,
		&services.TrackingEffect{Bridge: trackingBridge},
		&services.NotificationEffect{},
		&services.AuditEffect{DB: config.DB},
	)
	orderService := services.NewOrderService(config.DB, trackingBridge)
	discountEngine := services.NewDiscountEngine(config.DB)

	controllers.Setup(coordinator, orderService, trackingBridge, discountEngine, paymentGateway)

	// Set up router
	router := routes.SetupRouter()

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	utils.LogInfo("Server starting on port %s", port)
	if err := router.Run(":" + port); err != nil {
		utils.LogError("Error starting server: %v", err)
		log.Fatal("Error starting server:", err)
	}
}
