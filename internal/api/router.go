package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/rentledger/deposit-system/internal/api/handler"
	"github.com/rentledger/deposit-system/internal/api/middleware"
	"github.com/rentledger/deposit-system/internal/core/domain"
	"github.com/rentledger/deposit-system/internal/core/ports"
	"github.com/rentledger/deposit-system/internal/core/service"
	"github.com/rentledger/deposit-system/internal/infrastructure/config"
	mongostore "github.com/rentledger/deposit-system/internal/infrastructure/db/mongo"
	"github.com/rentledger/deposit-system/internal/infrastructure/session"
)

// routerDeps holds the collaborators the route pipeline is assembled from.
type routerDeps struct {
	authRepo    ports.AuthRepository
	depositRepo ports.DepositRepository
	blobs       ports.BlobStore
	sessions    ports.SessionManager
	sessionTTL  time.Duration
	log         zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, blobs ports.BlobStore, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := newRouter(routerDeps{
		authRepo:    mongostore.NewAuthRepository(db),
		depositRepo: mongostore.NewDepositRepository(db),
		blobs:       blobs,
		sessions:    session.NewManager(rdb, cfg.Session.Secret, cfg.Session.TTL),
		sessionTTL:  cfg.Session.TTL,
		log:         log,
	})

	// Readiness needs the raw connections, so it is wired here rather than in
	// the interface-driven pipeline.
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	return e
}

// newRouter assembles the middleware chain, handlers, and routes on top of
// the port interfaces.
func newRouter(deps routerDeps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("deposit"))

	// --- Services and handlers ---
	authService := service.NewAuthService(deps.authRepo)
	depositService := service.NewDepositService(deps.depositRepo, deps.blobs, deps.log)

	authHandler := handler.NewAuthHandler(authService, deps.sessions, deps.sessionTTL)
	depositHandler := handler.NewDepositHandler(depositService)

	sessionGate := middleware.Session(deps.sessions)

	// --- Auth routes ---
	e.POST("/api/register", authHandler.Register)
	e.POST("/api/login", authHandler.Login)
	e.POST("/api/logout", authHandler.Logout, sessionGate)

	// --- Deposit lifecycle routes ---
	deposit := e.Group("/api/deposit", sessionGate)
	deposit.POST("/request", depositHandler.Request, middleware.RBAC(domain.RoleTenant))
	deposit.POST("/respond", depositHandler.Respond, middleware.RBAC(domain.RoleLandlord, domain.RoleAgent))
	deposit.POST("/accept", depositHandler.Accept, middleware.RBAC(domain.RoleTenant))
	deposit.POST("/dispute", depositHandler.Dispute, middleware.RBAC(domain.RoleTenant))
	deposit.GET("/status", depositHandler.Status)
	deposit.GET("/history", depositHandler.History)

	// --- Health probe and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	e.GET("/health", healthHandler.Liveness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
