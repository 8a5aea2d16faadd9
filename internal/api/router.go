package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/hacker123-star/k-learnstudio2/internal/api/handler"
	"github.com/hacker123-star/k-learnstudio2/internal/api/middleware"
	"github.com/hacker123-star/k-learnstudio2/internal/core/domain"
	"github.com/hacker123-star/k-learnstudio2/internal/core/ports"
)

// Dependencies carries everything the router needs, constructed once at
// startup by main and passed down explicitly.
type Dependencies struct {
	Auth    ports.AuthService
	Intake  ports.IntakeService
	Review  ports.ReviewService
	Profile ports.ProfileService

	// Mongo and Redis are used by the readiness probe only.
	Mongo *mongo.Database
	Redis *redis.Client

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
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("klearn"))

	authHandler := handler.NewAuthHandler(deps.Auth)
	tutorHandler := handler.NewTutorHandler(deps.Intake)
	adminHandler := handler.NewAdminHandler(deps.Review)
	userHandler := handler.NewUserHandler(deps.Profile)

	authMW := middleware.Auth(deps.JWTSecret)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/tutor/register", tutorHandler.Submit)
	e.POST("/auth/tutor/login", authHandler.TutorLogin)
	e.POST("/auth/admin/login", authHandler.AdminLogin)

	// --- Public tutor directory ---
	e.GET("/tutors", tutorHandler.List)

	// --- Admin review gate ---
	admin := e.Group("/admin", authMW, middleware.RequireRoles(domain.RoleAdmin))
	admin.GET("/tutors/pending", adminHandler.ListPending)
	admin.POST("/approve-tutor/:id", adminHandler.Approve)
	admin.POST("/reject-tutor/:id", adminHandler.Reject)

	// --- Own profile ---
	users := e.Group("/users", authMW, middleware.RequireRoles(domain.RoleStudent, domain.RoleTutor))
	users.GET("/me", userHandler.Me)
	users.PUT("/me", userHandler.UpdateName)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
