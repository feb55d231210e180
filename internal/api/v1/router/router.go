package router

import (
	"context"
	"net/http"
	"reflect"
	"strings"

	"app/internal/api/v1/handler"
	"app/internal/config"
	"app/internal/middleware"
	"app/internal/repository"
	"app/internal/service"
	"app/internal/session"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

// New wires the portal: repositories (in-memory by default, Postgres when
// DATABASE_URL is set), services, handlers and middleware. The returned pool
// is nil in the in-memory configuration.
func New(cfg *config.Config, logger zerolog.Logger) (http.Handler, *pgxpool.Pool, error) {
	logger.Info().Str("environment", cfg.Environment).Msg("Router initialized")

	// 1. Repositories: Postgres when configured, otherwise the in-memory
	// stand-in. Reset tokens and feed snapshots are ephemeral either way.
	var (
		pool      *pgxpool.Pool
		userRepo  repository.UserRepository
		statsRepo repository.StatsRepository
	)
	if cfg.DatabaseURL != "" {
		var err error
		pool, err = pgxpool.New(context.Background(), cfg.DatabaseURL)
		if err != nil {
			logger.Error().Err(err).Msg("Failed to create Postgres pool")
			return nil, nil, err
		}
		if err := pool.Ping(context.Background()); err != nil {
			logger.Error().Err(err).Msg("Failed to ping Postgres")
			return nil, nil, err
		}
		logger.Info().Msg("Database connection successful")
		userRepo = repository.NewPgUserRepo(pool)
		statsRepo = repository.NewPgStatsRepo(pool)
	} else {
		logger.Warn().Msg("DATABASE_URL not set, using in-memory stores (state is lost on restart)")
		userRepo = repository.NewMemoryUserRepo()
		statsRepo = repository.NewMemoryStatsRepo()
	}
	tokenRepo := repository.NewMemoryTokenRepo()
	feedRepo := repository.NewMemoryFeedRepo()

	// 2. Optional S3 client for the contract archive.
	var s3Client *s3.Client
	if cfg.S3Bucket != "" {
		s3Config, err := awsconfig.LoadDefaultConfig(context.Background(),
			awsconfig.WithRegion(cfg.S3Region),
			awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, "")),
		)
		if err != nil {
			logger.Error().Err(err).Msg("Failed to load S3 config")
			return nil, nil, err
		}
		s3Client = s3.NewFromConfig(s3Config, func(o *s3.Options) {
			if cfg.S3URL != "" {
				o.BaseEndpoint = aws.String(cfg.S3URL)
				o.UsePathStyle = true
			}
		})
		logger.Info().Str("bucket", cfg.S3Bucket).Msg("Contract archive enabled")
	}

	// 3. Validator: report JSON tag names so validation errors name the
	// wire-level fields.
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// 4. Sessions, services.
	sessions := session.NewManager(cfg.SessionSecret)

	userSvc := service.NewUserService(userRepo)
	statsSvc := service.NewStatsService(statsRepo)
	authSvc := service.NewAuthService(userRepo, tokenRepo, sessions, statsSvc, logger)
	feedSvc := service.NewFeedService(feedRepo, logger)
	automationSvc := service.NewAutomationService(cfg, feedSvc, logger)
	contractSvc := service.NewContractService(s3Client, cfg.S3Bucket, logger)

	if err := userSvc.EnsureSeedAdmin(context.Background(), cfg.AdminUsername, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		logger.Error().Err(err).Msg("Failed to seed admin account")
		return nil, nil, err
	}

	// 5. Handlers.
	authHandler := handler.NewAuthHandler(authSvc, validate, logger)
	userHandler := handler.NewUserHandler(userSvc, validate, logger)
	statsHandler := handler.NewStatsHandler(statsSvc, logger)
	feedHandler := handler.NewFeedHandler(feedSvc, statsSvc, logger)
	automationHandler := handler.NewAutomationHandler(automationSvc, statsSvc, logger)
	contractHandler := handler.NewContractHandler(contractSvc, validate, logger)
	pageHandler := handler.NewPageHandler()

	// 6. Middleware.
	sessionMw := middleware.Session(sessions)
	authMw := func(next http.Handler) http.Handler { return sessionMw(middleware.RequireUser(next)) }
	adminMw := func(next http.Handler) http.Handler { return sessionMw(middleware.RequireAdmin(next)) }

	// 7. API v1 routes, mounted under /v1.
	apiV1Mux := http.NewServeMux()
	authHandler.RegisterRoutes(apiV1Mux, authMw)
	userHandler.RegisterRoutes(apiV1Mux, adminMw)
	statsHandler.RegisterRoutes(apiV1Mux, authMw, adminMw)
	feedHandler.RegisterRoutes(apiV1Mux, authMw, adminMw)
	automationHandler.RegisterRoutes(apiV1Mux, authMw)
	contractHandler.RegisterRoutes(apiV1Mux, authMw)

	mux := http.NewServeMux()
	mux.Handle("/v1/", http.StripPrefix("/v1", apiV1Mux))

	// 8. Portal pages with the redirect-style guard.
	pageHandler.RegisterRoutes(mux, sessionMw, middleware.RequirePage(false), middleware.RequirePage(true))

	// 9. CORS for the dashboard frontends.
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	return middleware.Logger(logger)(c.Handler(mux)), pool, nil
}
