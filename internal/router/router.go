package router // package router defines how HTTP routes are registered for the API

import (
    "github.com/labstack/echo/v4" // import the Echo web framework to handle routing

    "github.com/iliyamo/parking-spot-reservation/internal/handler"    // import the handlers that implement business logic
    "github.com/iliyamo/parking-spot-reservation/internal/middleware" // import middleware for JWT authentication and role enforcement
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
    // Load balancers and monitoring systems use this endpoint to verify
    // that the service is up and running.
    e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes and applies
// the necessary middleware.  Unauthenticated operations live under
// /v1/auth, while protected endpoints live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
    // Session-less operations: register, login and refresh rotation.
    g := e.Group("/v1/auth")
    g.POST("/register", a.Register)
    g.POST("/login", a.Login)
    g.POST("/refresh", a.Refresh)
    // Logout accepts either a bearer token (revokes every session) or a
    // JSON body with a refresh_token (revokes that one session), so it
    // stays outside the JWT-protected group.
    g.POST("/logout", a.Logout)

    auth := e.Group("/v1")
    auth.Use(middleware.JWTAuth(jwtSecret))
    auth.Use(middleware.RequireRole("CUSTOMER", "ADMIN"))
    auth.GET("/me", a.Me)
}

// RegisterCatalog registers the unauthenticated browse endpoints for
// parking locations and slots.  Guests can inspect the catalog and
// check slot availability before signing up; extra Echo middleware
// (typically the response cache) can be attached per route.
func RegisterCatalog(e *echo.Echo, cat *handler.CatalogHandler, mw ...echo.MiddlewareFunc) {
    e.GET("/v1/locations", cat.ListLocations, mw...)
    e.GET("/v1/locations/:id", cat.GetLocation, mw...)
    e.GET("/v1/locations/:id/slots", cat.ListSlots, mw...)
    // Availability is computed against the booking ledger, never cached.
    e.GET("/v1/slots/:id/availability", cat.SlotAvailability)
}

// RegisterAdmin registers the catalog management endpoints.  Only the
// ADMIN role passes the gate; ADMIN accounts are seeded out of band.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, jwtSecret string) {
    g := e.Group("/v1/admin")
    g.Use(middleware.JWTAuth(jwtSecret))
    g.Use(middleware.RequireRole("ADMIN"))

    g.POST("/locations", a.CreateLocation)
    g.POST("/locations/:id/slots", a.CreateSlot)
}

// RegisterBookings registers the booking ledger and payment endpoints.
// Every route requires a valid access token and an accepted role.
func RegisterBookings(e *echo.Echo, b *handler.BookingHandler, p *handler.PaymentHandler, jwtSecret string) {
    g := e.Group("/v1")
    g.Use(middleware.JWTAuth(jwtSecret))
    g.Use(middleware.RequireRole("CUSTOMER", "ADMIN"))

    g.POST("/bookings", b.Create)
    g.GET("/bookings", b.List)
    g.GET("/bookings/:id", b.Get)
    g.DELETE("/bookings/:id", b.Cancel)
    g.PATCH("/bookings/:id/status", b.UpdateStatus)

    g.POST("/bookings/:id/payment", p.Initiate)
    g.POST("/payments/verify", p.Verify)
}
