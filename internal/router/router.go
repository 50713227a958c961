package router // package router defines how HTTP routes are registered for the API

import (
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/court-reservation/internal/handler"
    "github.com/iliyamo/court-reservation/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication.
// Currently only the health check.
func RegisterRoutes(e *echo.Echo) {
    e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication endpoints. Register,
// login and refresh live under /v1/auth without middleware; /v1/me
// and /v1/auth/logout require a valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
    g := e.Group("/v1/auth")
    g.POST("/register", a.Register)
    g.POST("/login", a.Login)
    g.POST("/refresh", a.Refresh)
    g.POST("/logout", a.Logout, middleware.JWTAuth(jwtSecret))

    auth := e.Group("/v1", middleware.JWTAuth(jwtSecret))
    auth.GET("/me", a.Me)
}

// RegisterCatalog registers the public browse endpoints. The cache
// middleware is applied per group so authenticated traffic is never
// cached.
func RegisterCatalog(e *echo.Echo, h *handler.CatalogHandler, cache echo.MiddlewareFunc) {
    g := e.Group("/v1")
    if cache != nil {
        g.Use(cache)
    }
    g.GET("/courts", h.ListCourts)
    g.GET("/courts/:id", h.GetCourt)
    g.GET("/equipment", h.ListEquipment)
    g.GET("/time-slots", h.ListTimeSlots)
}

// RegisterReservations registers the authenticated reservation
// endpoints under /v1/reservations. All routes require a valid JWT
// and the CUSTOMER or ADMIN role.
func RegisterReservations(e *echo.Echo, h *handler.ReservationHandler, jwtSecret string) {
    g := e.Group(
        "/v1/reservations",
        middleware.JWTAuth(jwtSecret),
        middleware.RequireRole("CUSTOMER", "ADMIN"),
    )
    g.GET("/availability", h.GetAvailability)
    g.GET("/my-reservations", h.ListMine)
    g.POST("", h.Create)
    g.POST("/from-payment", h.CreateFromPayment)
    g.GET("/:id", h.Get)
    g.PATCH("/:id", h.Update)
    g.DELETE("/:id", h.Delete)
}

// RegisterPayments registers the checkout and status endpoints. They
// require authentication; the webhook below does not, since the
// gateway authenticates itself through the signature header.
func RegisterPayments(e *echo.Echo, h *handler.PaymentHandler, jwtSecret string) {
    g := e.Group("/payment", middleware.JWTAuth(jwtSecret))
    g.POST("/create-checkout", h.CreateCheckout)
    g.GET("/status/:paymentIntentId", h.GetStatus)
}

// RegisterWebhooks registers the gateway webhook endpoints. No JWT:
// deliveries are authenticated by signature verification inside the
// handler.
func RegisterWebhooks(e *echo.Echo, h *handler.WebhookHandler) {
    g := e.Group("/webhook")
    g.POST("/paymongo", h.HandlePayMongo)
    g.POST("/test-webhook", h.TestWebhook)
}

// RegisterSuggestions registers the feedback endpoints under /v1.
func RegisterSuggestions(e *echo.Echo, h *handler.SuggestionHandler, jwtSecret string) {
    g := e.Group("/v1/suggestions", middleware.JWTAuth(jwtSecret))
    g.POST("", h.Create)
    g.GET("", h.List)
}
