package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/herbaria/plants-api/internal/api/handler"
	"github.com/herbaria/plants-api/internal/api/middleware"
	"github.com/herbaria/plants-api/internal/core/ports"
	"github.com/herbaria/plants-api/internal/core/service"
	"github.com/herbaria/plants-api/internal/infrastructure/config"
	mongodb "github.com/herbaria/plants-api/internal/infrastructure/db/mongo"
	redisdb "github.com/herbaria/plants-api/internal/infrastructure/db/redis"
	"github.com/herbaria/plants-api/internal/infrastructure/mail"
	"github.com/herbaria/plants-api/internal/pkg/otp"
	"github.com/herbaria/plants-api/internal/pkg/password"
	"github.com/herbaria/plants-api/internal/pkg/token"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// rdb may be nil when Redis is not configured.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, audit ports.AuditRecorder, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("plants"))

	// --- Credential leaves ---
	hasher := password.New(cfg.Auth.PBKDF2Iterations)
	codec := token.NewCodec(cfg.JWTSecret, cfg.JWTTTL)

	var otpStore ports.OTPStore
	if cfg.Auth.OTPBackend == "redis" && rdb != nil {
		otpStore = redisdb.NewOTPStore(rdb, cfg.Auth.OTPTTL)
	} else {
		otpStore = otp.NewMemoryStore(cfg.Auth.OTPTTL)
	}

	var throttle service.Throttle
	if rdb != nil {
		throttle = redisdb.NewThrottle(rdb, cfg.Auth.OTPResendInterval)
	}

	// --- Services & handlers ---
	adminRepo := mongodb.NewAdminRepository(db)
	plantRepo := mongodb.NewPlantRepository(db)

	authService := service.NewAuthService(
		adminRepo,
		hasher,
		codec,
		otpStore,
		mail.NewLogSender(log),
		throttle,
		audit,
		service.PasswordPolicy{MinLength: cfg.Auth.PasswordMinLength},
		log,
	)
	plantService := service.NewPlantService(plantRepo, audit, log)

	authHandler := handler.NewAuthHandler(authService, int(codec.TTL().Seconds()))
	plantHandler := handler.NewPlantHandler(plantService)
	authRequired := middleware.Auth(codec)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout)
	e.POST("/auth/forgot-password", authHandler.ForgotPassword)
	e.POST("/auth/verify-otp", authHandler.VerifyOTP)
	e.POST("/auth/recover-password", authHandler.RecoverPassword)

	// --- Catalog routes (reads public, mutations gated) ---
	v1 := e.Group("/v1")
	v1.GET("/plants", plantHandler.List)
	v1.GET("/plants/:id", plantHandler.Get)
	v1.GET("/search", plantHandler.Search)
	v1.GET("/categories", plantHandler.Categories)

	v1.POST("/plants", plantHandler.Create, authRequired)
	v1.PUT("/plants/:id", plantHandler.Update, authRequired)
	v1.DELETE("/plants/:id", plantHandler.Delete, authRequired)
	v1.GET("/admin/stats", plantHandler.Stats, authRequired)

	// --- Observability (no auth required) ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/health", handler.NewHealthHandler().Liveness)
	e.GET("/health/ready", handler.NewReadinessHandler(db, rdb).Readiness)

	return e
}
