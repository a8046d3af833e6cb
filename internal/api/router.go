package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/citypulse/report-system/internal/api/handler"
	"github.com/citypulse/report-system/internal/api/middleware"
	"github.com/citypulse/report-system/internal/core/domain"
	"github.com/citypulse/report-system/internal/core/ports"
	"github.com/citypulse/report-system/internal/core/service"
	"github.com/citypulse/report-system/internal/infrastructure/config"
	mongodb "github.com/citypulse/report-system/internal/infrastructure/db/mongo"
	redisdb "github.com/citypulse/report-system/internal/infrastructure/db/redis"
)

// Operation names used by the authorization policy table.
const (
	opAuthRegister     = "auth.register"
	opUsersManage      = "users.manage"
	opReportsCreate    = "reports.create"
	opReportsCitizen   = "reports.list_citizen"
	opReportsAdmin     = "reports.list_admin"
	opReportsTriage    = "reports.triage"
	opReportsOwnEdit   = "reports.edit_own"
	opReportsAnalytics = "reports.analytics"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, audit ports.AuditTrail, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("civic"))

	// --- Dependencies ---
	accountRepo := mongodb.NewAccountRepository(db)
	reportRepo := mongodb.NewReportRepository(db)
	locationRepo := mongodb.NewLocationRepository(db)
	attempts := redisdb.NewAttemptCounter(rdb)

	codec := service.NewJWTCodec(cfg.JWTSecret, cfg.TokenTTL)
	identity := service.NewIdentityService(accountRepo)
	authService := service.NewAuthService(accountRepo, locationRepo, codec, audit, cfg.BcryptCost, log)
	userService := service.NewUserService(accountRepo, locationRepo)
	reportService := service.NewReportService(reportRepo, accountRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService, authService)
	reportHandler := handler.NewReportHandler(reportService)

	// The auth filter runs on every request and never rejects; the policy
	// gate below is the single place a deny decision is made.
	e.Use(middleware.Authenticate(codec, identity, audit, log))

	policy := middleware.NewPolicy(map[string][]domain.Role{
		opAuthRegister:     {domain.RoleAdmin},
		opUsersManage:      {domain.RoleAdmin},
		opReportsCreate:    {domain.RoleCitizen},
		opReportsCitizen:   {domain.RoleCitizen},
		opReportsAdmin:     {domain.RoleAdmin},
		opReportsTriage:    {domain.RoleAdmin},
		opReportsOwnEdit:   {domain.RoleCitizen},
		opReportsAnalytics: {domain.RoleAdmin, domain.RoleCitizen},
	}, audit, log)

	// --- Auth routes ---
	e.POST("/api/auth/login", authHandler.Login,
		middleware.LoginRateLimit(attempts, cfg.LoginMaxPerMin, log))
	e.POST("/api/auth/register", authHandler.Register, policy.Require(opAuthRegister))

	// --- User management (admin) ---
	users := e.Group("/api/users", policy.Require(opUsersManage))
	users.GET("", userHandler.List)
	users.GET("/:id", userHandler.Get)
	users.PUT("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete)
	users.GET("/street/:streetId", userHandler.ByStreet)
	users.GET("/district/:districtId", userHandler.ByDistrict)

	// --- Reports ---
	e.POST("/api/reports", reportHandler.Create, policy.Require(opReportsCreate))
	e.GET("/api/reports/citizen", reportHandler.ListCitizen, policy.Require(opReportsCitizen))
	e.GET("/api/reports/admin", reportHandler.ListAdmin, policy.Require(opReportsAdmin))
	e.PUT("/api/reports/:id/status", reportHandler.UpdateStatus, policy.Require(opReportsTriage))
	e.DELETE("/api/reports/:id", reportHandler.Delete, policy.Require(opReportsTriage))
	e.PUT("/api/reports/:id/user", reportHandler.UpdateOwn, policy.Require(opReportsOwnEdit))
	e.DELETE("/api/reports/:id/user", reportHandler.DeleteOwn, policy.Require(opReportsOwnEdit))
	e.GET("/api/reports/analytics", reportHandler.Analytics, policy.Require(opReportsAnalytics))

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
