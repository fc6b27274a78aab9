package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/marketsquare/secure-api/internal/api/handler"
	"github.com/marketsquare/secure-api/internal/api/middleware"
	"github.com/marketsquare/secure-api/internal/core/authz"
	"github.com/marketsquare/secure-api/internal/core/service"
	"github.com/marketsquare/secure-api/internal/core/token"
	mongostore "github.com/marketsquare/secure-api/internal/infrastructure/db/mongo"
	redisstore "github.com/marketsquare/secure-api/internal/infrastructure/db/redis"
	httphandlers "github.com/marketsquare/secure-api/internal/infrastructure/http/handlers"
	"github.com/marketsquare/secure-api/internal/ratelimit"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// Every request flows: rate limiter (credential endpoints only) →
// Authenticate (cookie → caller, never aborts) → Authorize (policy per
// endpoint class) → handler.
func NewRouter(db *mongo.Database, rdb *redis.Client, codec *token.Codec, limiter *ratelimit.Limiter, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("secureapi"))

	// --- Dependencies ---
	userRepo := mongostore.NewUserRepository(db)
	productRepo := mongostore.NewProductRepository(db)
	catalogCache := redisstore.NewCatalogCache(rdb, log)

	authService := service.NewAuthService(userRepo, codec, log)
	userService := service.NewUserService(userRepo, productRepo, authService, log)
	productService := service.NewProductService(productRepo, userRepo, catalogCache, log)

	authHandler := handler.NewAuthHandler(authService, codec.TTL())
	userHandler := handler.NewUserHandler(userService, codec.TTL())
	productHandler := handler.NewProductHandler(productService)

	e.Use(middleware.Authenticate(codec, userRepo))

	authenticated := middleware.Authorize(authz.Authenticated, nil)
	adminOnly := middleware.Authorize(authz.AdminOnly, nil)
	ownerOrAdmin := middleware.Authorize(authz.OwnerOrAdmin, func(c echo.Context) (string, error) {
		// Fresh fetch at decision time; a stale owner must never be the
		// basis of an allow.
		p, err := productRepo.FindByID(c.Request().Context(), c.Param("id"))
		if err != nil {
			return "", err
		}
		return p.OwnerID, nil
	})

	// --- Auth routes ---
	// Only the credential endpoints are rate-limited: they are the brute
	// force and bulk-signup targets. Logout is side-effect free and stays
	// unthrottled.
	limited := middleware.RateLimit(limiter)
	auth := e.Group("/api/auth")
	auth.POST("/register", authHandler.Register, limited)
	auth.POST("/login", authHandler.Login, limited)
	auth.POST("/logout", authHandler.Logout)

	// --- User routes ---
	users := e.Group("/api/users")
	users.GET("", userHandler.List, adminOnly)
	users.GET("/me", userHandler.Me, authenticated)
	users.PUT("/me", userHandler.UpdateMe, authenticated)
	users.DELETE("/me", userHandler.DeleteMe, authenticated)
	users.PUT("/:id", userHandler.AdminUpdate, adminOnly)
	users.DELETE("/:id", userHandler.AdminDelete, adminOnly)

	// --- Product routes ---
	products := e.Group("/api/products")
	products.GET("", productHandler.List)
	products.GET("/my-products", productHandler.ListMine, authenticated)
	products.POST("", productHandler.Create, authenticated)
	products.PUT("/:id", productHandler.Update, ownerOrAdmin)
	products.DELETE("/:id", productHandler.Delete, ownerOrAdmin)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := httphandlers.NewHealthHandler()
	healthDepsHandler := httphandlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
