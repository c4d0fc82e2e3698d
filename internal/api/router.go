package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/stayease/marketplace-system/internal/api/handler"
	"github.com/stayease/marketplace-system/internal/api/middleware"
	"github.com/stayease/marketplace-system/internal/core/domain"
	"github.com/stayease/marketplace-system/internal/core/ports"
	"github.com/stayease/marketplace-system/internal/infrastructure/config"
)

// Deps carries the constructed services the router wires into handlers.
// Construction happens in main so component lifecycles (the favorites
// dispatcher in particular) stay in one place.
type Deps struct {
	Config *config.Config
	Log    zerolog.Logger
	Mongo  *mongo.Database
	Redis  *redis.Client

	Directory ports.UserDirectory
	History   ports.HistoryLog
	Sessions  ports.SessionManager
	Listings  ports.ListingService
	Favorites ports.FavoriteService
	Queue     handler.FavoriteEnqueuer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("stayease"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Sessions, d.Config.JWTSecret, 24*time.Hour)
	listingHandler := handler.NewListingHandler(d.Listings)
	favoritesHandler := handler.NewFavoritesHandler(d.Queue, d.Favorites)
	adminHandler := handler.NewAdminHandler(d.Directory, d.History)
	authMiddleware := middleware.Auth(d.Config.JWTSecret)

	// --- Auth / session routes ---
	e.POST("/auth/signup", authHandler.Signup)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout)
	e.GET("/auth/session", authHandler.Session)
	e.PATCH("/auth/profile", authHandler.UpdateProfile, authMiddleware)

	// --- Listing catalog ---
	e.GET("/listings", listingHandler.List)
	e.GET("/listings/:id", listingHandler.Get)
	e.GET("/listings/:id/quote", listingHandler.Quote)
	e.POST("/listings", listingHandler.Create, authMiddleware, middleware.RequireType(string(domain.TypeHost)))

	// --- Favorites ---
	e.POST("/favorites/events", favoritesHandler.Toggle, authMiddleware)
	e.GET("/favorites", favoritesHandler.List, authMiddleware)

	// --- Admin / debug surface ---
	e.GET("/admin/users", adminHandler.ListUsers, authMiddleware)
	e.GET("/admin/history", adminHandler.History, authMiddleware)
	e.DELETE("/admin/history", adminHandler.ClearHistory, authMiddleware)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.Mongo, d.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
