package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/kosratdiaz/barber-reservation/internal/config"
	"github.com/kosratdiaz/barber-reservation/internal/handler"
	"github.com/kosratdiaz/barber-reservation/internal/middleware"
	"github.com/kosratdiaz/barber-reservation/internal/model"
)

// Handlers groups every handler the router wires up.  They are constructed
// explicitly in main and passed down; the router owns only the mapping from
// paths to methods and the middleware applied per group.
type Handlers struct {
	Auth         *handler.AuthHandler
	Reservations *handler.ReservationHandler
	Availability *handler.AvailabilityHandler
}

// Register wires all routes onto the Echo instance.  The layout:
//
//	/healthz                        unauthenticated health check
//	/v1/auth/*                      register, login, refresh, logout
//	/v1/availability GET            public, served through the Redis cache
//	/v1/* (user policy)             me, booking endpoints
//	/v1/* (admin policy)            reservation administration, calendar publish
//
// The rate limiter wraps everything so unauthenticated endpoints are covered
// too.
func Register(e *echo.Echo, cfg config.Config, rdb *redis.Client, h Handlers) {
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	e.GET("/healthz", handler.Health)

	// Session lifecycle endpoints need no existing session.
	authGroup := e.Group("/v1/auth")
	authGroup.POST("/register", h.Auth.Register)
	authGroup.POST("/login", h.Auth.Login)
	authGroup.POST("/refresh", h.Auth.Refresh)
	authGroup.POST("/logout", h.Auth.Logout)

	// Public availability listing, cached in Redis.
	e.GET("/v1/availability", h.Availability.List,
		middleware.NewRedisCache(config.LoadCacheConfig(), rdb))

	// UserPolicy: any authenticated account.
	user := e.Group("/v1")
	user.Use(middleware.JWTAuth(cfg.JWTSecret, cfg.Issuer, cfg.Audience))
	user.Use(middleware.RequireRole(model.RoleUser, model.RoleAdmin))
	user.GET("/me", h.Auth.Me)
	user.POST("/reservations", h.Reservations.Create)
	user.GET("/reservations/user", h.Reservations.ListMine)
	user.DELETE("/reservations/:id", h.Reservations.Delete)

	// AdminPolicy: administrators only.
	admin := e.Group("/v1")
	admin.Use(middleware.JWTAuth(cfg.JWTSecret, cfg.Issuer, cfg.Audience))
	admin.Use(middleware.RequireRole(model.RoleAdmin))
	admin.GET("/reservations", h.Reservations.ListAll)
	admin.PATCH("/reservations/:id/accept", h.Reservations.Accept)
	admin.PATCH("/reservations/:id/cancel", h.Reservations.Cancel)
	admin.POST("/availability", h.Availability.Replace)
}
