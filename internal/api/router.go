package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/qent/car-rental-system/internal/api/handler"
	"github.com/qent/car-rental-system/internal/api/middleware"
	"github.com/qent/car-rental-system/internal/core/domain"
	"github.com/qent/car-rental-system/internal/core/ports"
	"github.com/qent/car-rental-system/internal/core/session"
	"github.com/qent/car-rental-system/internal/infrastructure/http/handlers"
)

// Dependencies carries everything the router needs, wired in cmd/api.
type Dependencies struct {
	Auth       ports.AuthService
	Cars       ports.CarService
	Rentals    ports.RentalService
	Reviews    ports.ReviewService
	Brands     ports.BrandService
	Users      ports.UserService
	Sessions   *session.Manager
	Notifier   *session.Notifier
	Onboarding session.OnboardingStore

	Mongo     *mongo.Database
	Redis     *redis.Client
	JWTSecret string
	Logger    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("rental"))

	requireAuth := middleware.Auth(deps.JWTSecret)
	optionalAuth := middleware.OptionalAuth(deps.JWTSecret)
	adminOnly := middleware.RBAC(string(domain.RoleAdmin))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth, deps.Notifier)
	carHandler := handler.NewCarHandler(deps.Cars, deps.Rentals)
	rentalHandler := handler.NewRentalHandler(deps.Rentals)
	reviewHandler := handler.NewReviewHandler(deps.Reviews)
	brandHandler := handler.NewBrandHandler(deps.Brands)
	userHandler := handler.NewUserHandler(deps.Users)
	sessionHandler := handler.NewSessionHandler(deps.Sessions, deps.Onboarding, deps.Logger)

	// --- Auth ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, requireAuth)

	v1 := e.Group("/v1")

	// --- Session / routing ---
	v1.GET("/session/route", sessionHandler.Route, optionalAuth)
	v1.POST("/session/onboarding", sessionHandler.CompleteOnboarding)

	// --- Catalogue (public reads, admin writes) ---
	v1.GET("/cars", carHandler.List)
	v1.GET("/cars/:id", carHandler.Get)
	v1.GET("/cars/:id/availability", carHandler.Availability)
	v1.GET("/cars/:id/rating", reviewHandler.Rating)
	v1.POST("/cars", carHandler.Create, requireAuth, adminOnly)
	v1.PUT("/cars/:id", carHandler.Update, requireAuth, adminOnly)
	v1.DELETE("/cars/:id", carHandler.Delete, requireAuth, adminOnly)

	v1.GET("/brands", brandHandler.List)
	v1.POST("/brands", brandHandler.Create, requireAuth, adminOnly)

	// --- Bookings & reviews (authenticated) ---
	v1.POST("/rentals", rentalHandler.Book, requireAuth)
	v1.GET("/rentals", rentalHandler.History, requireAuth)
	v1.POST("/rentals/:id/cancel", rentalHandler.Cancel, requireAuth)
	v1.POST("/rentals/:id/complete", rentalHandler.Complete, requireAuth)
	v1.POST("/cars/:id/reviews", reviewHandler.Add, requireAuth)

	// --- Accounts ---
	v1.GET("/users", userHandler.List, requireAuth, adminOnly)
	v1.GET("/users/me", userHandler.Me, requireAuth)
	v1.PUT("/users/me", userHandler.UpdateMe, requireAuth)

	// --- Health probes & metrics (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
