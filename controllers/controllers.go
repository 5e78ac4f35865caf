package controllers

import (
	"github.com/nived-628/ShopSphere/gateway"
	"github.com/nived-628/ShopSphere/services"
)

// Package-level collaborators, wired once by the composition root so handlers
// stay free of construction logic and tests can substitute fakes.
var (
	coordinator    *services.PaymentCoordinator
	orderService   *services.OrderService
	trackingBridge *services.TrackingBridge
	discountEngine *services.DiscountEngine
	paymentGateway gateway.PaymentGateway
)

// Setup injects the service layer into the controllers package.
func Setup(
	pc *services.PaymentCoordinator,
	os *services.OrderService,
	tb *services.TrackingBridge,
	de *services.DiscountEngine,
	gw gateway.PaymentGateway,
) {
	coordinator = pc
	orderService = os
	trackingBridge = tb
	discountEngine = de
	paymentGateway = gw
}
