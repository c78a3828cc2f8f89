package router

import (
	"go.uber.org/zap"

	"github.com/shelfbridge/backend/internal/infrastructure/auth"
	"github.com/shelfbridge/backend/internal/interfaces/http/handler"
	"github.com/shelfbridge/backend/internal/interfaces/http/middleware"
)

// Handlers bundles the handlers wired into the API surface
type Handlers struct {
	Products *handler.ProductHandler
	Sync     *handler.SyncHandler
	Checkout *handler.CheckoutHandler
	Settings *handler.SettingsHandler
}

// Services bundles the cross-cutting services routes depend on
type Services struct {
	JWT    *auth.JWTService
	Nonces *auth.NonceService
	Logger *zap.Logger
}

// NewAPIRouter builds the full route tree on the given router.
//
// Product reads are public with an optional bearer token so the page
// decision can identify the viewer. The catalog import endpoint is guarded
// by a sync token instead of a user session; issuing that token and all
// settings routes require an admin session. Checkout routes require any
// authenticated session.
func NewAPIRouter(r *Router, h Handlers, s Services) *Router {
	optionalAuth := middleware.OptionalJWTAuthMiddleware(s.JWT, s.Logger)
	requireAuth := middleware.JWTAuthMiddleware(middleware.JWTAuthConfig{
		JWTService: s.JWT,
		Logger:     s.Logger,
	})
	requireAdmin := middleware.RequireRole(auth.RoleAdmin)

	products := NewDomainGroup("products", "/products")
	products.Use(optionalAuth)
	products.GET("", h.Products.List)
	products.GET("/:slug", h.Products.Get)

	catalog := NewDomainGroup("catalog", "/catalog")
	catalog.POST("/import", middleware.VerifyNonce(s.Nonces, s.Logger), h.Sync.Import)
	catalog.GET("/import/nonce", requireAuth, requireAdmin, h.Sync.Nonce)

	checkout := NewDomainGroup("checkout", "/checkout")
	checkout.Use(requireAuth)
	checkout.POST("/orders/:id/payment", h.Checkout.PaymentSuccess)
	checkout.GET("/orders/:id/thank-you", h.Checkout.ThankYou)

	cart := NewDomainGroup("cart", "/cart")
	cart.POST("/fees", h.Checkout.CartFees)

	settings := NewDomainGroup("settings", "/settings")
	settings.Use(requireAuth, requireAdmin)
	settings.GET("", h.Settings.Get)
	settings.PUT("", h.Settings.Update)

	return r.
		Register(products).
		Register(catalog).
		Register(checkout).
		Register(cart).
		Register(settings)
}
