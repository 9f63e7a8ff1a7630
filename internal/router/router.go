package router

import (
	"context"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/anonto42/playshelf/backend/internal/handlers"
	"github.com/anonto42/playshelf/backend/internal/middleware"
	"github.com/anonto42/playshelf/backend/internal/policy"
	"github.com/anonto42/playshelf/backend/internal/repositories"
	"github.com/anonto42/playshelf/backend/internal/services"
	"github.com/anonto42/playshelf/backend/internal/validators"
)

// Deps are the external resources the routes are built on. Mongo and
// Firebase are optional.
type Deps struct {
	Postgres    *gorm.DB
	Mongo       *mongo.Database
	Firebase    *auth.Client
	JWTSecret   string
	AdminEmails []string
	Logger      *zap.Logger
}

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo, logger *zap.Logger) {
	e.HTTPErrorHandler = handlers.ErrorHandler(logger)
	e.Validator = validators.NewValidator()

	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	e.Use(eMiddleware.RequestLoggerWithConfig(eMiddleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v eMiddleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				logger.Warn("request", append(fields, zap.Error(v.Error))...)
				return nil
			}
			logger.Info("request", fields...)
			return nil
		},
	}))
	logger.Debug("global middleware configured")
}

// SetupRoutes migrates the schema, wires repositories and services, and
// registers every route under /api/v1.
func SetupRoutes(ctx context.Context, e *echo.Echo, deps Deps) error {
	logger := deps.Logger
	if err := repositories.AutoMigrate(deps.Postgres); err != nil {
		return errors.Wrap(err, "failed to auto migrate models")
	}
	logger.Info("PostgreSQL auto-migrations completed")

	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	pgdb := deps.Postgres
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	followRepo := repositories.NewPostgresFollowRepository(pgdb)
	commentRepo := repositories.NewPostgresCommentRepository(pgdb)
	reviewRepo := repositories.NewPostgresReviewRepository(pgdb)
	gameRepo := repositories.NewPostgresGameRepository(pgdb)
	playlistRepo := repositories.NewPostgresPlaylistRepository(pgdb)
	likeRepo := repositories.NewPostgresLikeRepository(pgdb)
	notificationRepo := repositories.NewPostgresNotificationRepository(pgdb)

	var auditRepo repositories.AuditRepository = repositories.NopAuditRepository{}
	if deps.Mongo != nil {
		mongoAudit := repositories.NewMongoAuditRepository(deps.Mongo)
		if err := mongoAudit.EnsureIndexes(ctx); err != nil {
			return errors.Wrap(err, "failed to create audit indexes")
		}
		auditRepo = mongoAudit
	}

	// --- Initialize Services ---
	notificationSvc := services.NewNotificationService(notificationRepo, logger)
	followGraph := services.NewFollowGraph(followRepo, userRepo, notificationSvc, logger)
	resolver := policy.NewResolver(followGraph)
	threads := services.NewThreadIntegrityManager(commentRepo, reviewRepo, resolver, auditRepo, notificationSvc, logger)
	targets := services.NewTargetResolver(commentRepo, reviewRepo, playlistRepo)
	ledger := services.NewLikeLedger(likeRepo, targets, resolver, notificationSvc, logger)
	playlistSvc := services.NewPlaylistService(playlistRepo, gameRepo, userRepo, likeRepo, followGraph, logger)
	gameSvc := services.NewGameService(gameRepo)
	reviewSvc := services.NewReviewService(reviewRepo, gameRepo, commentRepo, resolver)

	var verifier services.IDTokenVerifier
	if deps.Firebase != nil {
		verifier = deps.Firebase
	}
	authSvc := services.NewAuthService(userRepo, verifier, deps.JWTSecret, deps.AdminEmails)

	// Every route resolves the caller; anonymous requests are allowed through
	// and rejected per route where an identity is required.
	api := e.Group("/api/v1", middleware.OptionalJWT(deps.JWTSecret))

	handlers.NewAuthHandler(authSvc).RegisterAuthRoutes(api.Group("/auth"))
	handlers.NewUserHandler(authSvc, followGraph).RegisterProfileRoutes(api)
	handlers.NewFollowHandler(followGraph).RegisterFollowRoutes(api)
	handlers.NewCatalogHandler(gameSvc, reviewSvc).RegisterCatalogRoutes(api)
	handlers.NewCommentHandler(threads).RegisterCommentRoutes(api)
	handlers.NewLikeHandler(ledger).RegisterLikeRoutes(api)
	handlers.NewPlaylistHandler(playlistSvc).RegisterPlaylistRoutes(api)
	handlers.NewFeedHandler(playlistSvc).RegisterFeedRoutes(api)
	handlers.NewNotificationHandler(notificationSvc).RegisterNotificationRoutes(api)

	logger.Info("routes configured", zap.Bool("firebase_login", authSvc.FirebaseEnabled()), zap.Bool("audit_trail", deps.Mongo != nil))
	return nil
}
