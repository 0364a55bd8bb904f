package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/PierreClouet/WorkEat/internal/api/handler"
	"github.com/PierreClouet/WorkEat/internal/api/middleware"
	"github.com/PierreClouet/WorkEat/internal/core/service"
	mongodb "github.com/PierreClouet/WorkEat/internal/infrastructure/db/mongo"
	redisdb "github.com/PierreClouet/WorkEat/internal/infrastructure/db/redis"
)

// Options carries the collaborators the router wires together.
type Options struct {
	Mongo         *mongo.Database
	Redis         *redis.Client
	Welcome       service.WelcomeDispatcher
	SessionSecret string
	SessionTTL    time.Duration
	Logger        zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("workeat"))

	// --- Dependencies ---
	sessions := redisdb.NewSessionStore(opts.Redis, opts.SessionSecret, opts.SessionTTL)
	accountRepo := mongodb.NewAccountRepository(opts.Mongo)
	accountService := service.NewAccountService(accountRepo, opts.Welcome, opts.Logger)
	accountHandler := handler.NewAccountHandler(accountService, sessions, opts.Logger)

	sessionMW := middleware.Session(sessions)
	optionalSessionMW := middleware.OptionalSession(sessions)

	// --- Account routes ---
	e.POST("/accounts", accountHandler.Create)
	e.POST("/accounts/login", accountHandler.Login)
	e.POST("/accounts/logout", accountHandler.Logout, optionalSessionMW)
	e.GET("/accounts", accountHandler.List, sessionMW, middleware.RequireAdmin())
	e.PUT("/accounts", accountHandler.Update, sessionMW)
	e.DELETE("/accounts", accountHandler.Delete, sessionMW)

	// --- Observability ---
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(opts.Mongo, opts.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	return e
}
