package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/kargopanel/mng-bridge/internal/api/handler"
	"github.com/kargopanel/mng-bridge/internal/api/middleware"
	"github.com/kargopanel/mng-bridge/internal/core/domain"
	"github.com/kargopanel/mng-bridge/internal/core/ports"
	"github.com/kargopanel/mng-bridge/internal/core/service"
	mongodb "github.com/kargopanel/mng-bridge/internal/infrastructure/db/mongo"
	redisdb "github.com/kargopanel/mng-bridge/internal/infrastructure/db/redis"
	"github.com/kargopanel/mng-bridge/internal/infrastructure/queue"
)

// Deps carries the externally constructed dependencies the router wires
// together.
type Deps struct {
	DB         *mongo.Database
	Redis      *redis.Client
	Carrier    ports.CarrierClient
	Directory  ports.GeoDirectory
	Storefront ports.StorefrontClient
	JWTSecret  string
	Workers    int
	Log        zerolog.Logger
}

// NewRouter builds the Echo instance with all routes registered and returns
// it together with the fulfillment dispatcher, which the caller must Start.
func NewRouter(deps Deps) (*echo.Echo, *queue.Dispatcher) {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("mngbridge"))

	// --- Repositories ---
	shipmentRepo := mongodb.NewShipmentRepository(deps.DB)
	returnRepo := mongodb.NewReturnRepository(deps.DB)
	settingsRepo := mongodb.NewSettingsRepository(deps.DB)
	authRepo := mongodb.NewAuthRepository(deps.DB)

	// --- Services ---
	geoCache := redisdb.NewGeoCache(deps.Redis, 0)
	guard := redisdb.NewSubmissionGuard(deps.Redis, 0)

	geoService := service.NewGeoService(deps.Directory, geoCache, deps.Log)
	fulfillmentService := service.NewFulfillmentService(settingsRepo, deps.Storefront, deps.Log)
	dispatcher := queue.NewDispatcher(deps.Workers, fulfillmentService, deps.Log)
	shipmentService := service.NewShipmentService(shipmentRepo, guard, deps.Carrier, geoService, dispatcher, deps.Log)
	returnService := service.NewReturnService(returnRepo, deps.Carrier, deps.Log)
	orderService := service.NewOrderService(settingsRepo, deps.Storefront, deps.Log)
	settingsService := service.NewSettingsService(settingsRepo, deps.Log)
	authService := service.NewAuthService(authRepo, deps.JWTSecret, 24*time.Hour)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	geoHandler := handler.NewGeoHandler(geoService)
	shipmentHandler := handler.NewShipmentHandler(shipmentService)
	orderHandler := handler.NewOrderHandler(orderService, shipmentService)
	returnHandler := handler.NewReturnHandler(returnService)
	settingsHandler := handler.NewSettingsHandler(settingsService)

	auth := middleware.Auth(deps.JWTSecret)
	anyOperator := middleware.RBAC(domain.RoleAdmin, domain.RoleOperator)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.DB, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Directory and reconciliation ---
	e.GET("/cbs/cities", geoHandler.Cities, auth, anyOperator)
	e.GET("/cbs/districts/:cityCode", geoHandler.Districts, auth, anyOperator)
	e.POST("/addresses/resolve", geoHandler.Resolve, auth, anyOperator)

	// --- Orders and shipments ---
	e.GET("/shopify/orders", orderHandler.List, auth, anyOperator)
	e.POST("/shipments", shipmentHandler.Create, auth, anyOperator)
	e.GET("/shipments", shipmentHandler.List, auth, anyOperator)

	// --- Returns ---
	e.POST("/returns", returnHandler.Create, auth, anyOperator)
	e.GET("/returns", returnHandler.List, auth, anyOperator)
	e.PATCH("/returns/:id/status", returnHandler.UpdateStatus, auth, anyOperator)
	e.POST("/returns/check", returnHandler.Check, auth, anyOperator)

	// --- Settings (admin only) ---
	e.POST("/shopify/settings", settingsHandler.Save, auth, adminOnly)
	e.GET("/shopify/settings/:shop", settingsHandler.Get, auth, adminOnly)

	return e, dispatcher
}
