// Package bootstrap wires configuration, database, dependencies and
// routing into a runnable application.
package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/Mohamed-Kaizen/teached/internal/app/controllers"
	appMigrations "github.com/Mohamed-Kaizen/teached/internal/app/migrations"
	appRepos "github.com/Mohamed-Kaizen/teached/internal/app/repositories"
	appRoutes "github.com/Mohamed-Kaizen/teached/internal/app/routes"
	appServices "github.com/Mohamed-Kaizen/teached/internal/app/services"
	"github.com/Mohamed-Kaizen/teached/internal/config"
	"github.com/Mohamed-Kaizen/teached/internal/db"
	appMiddleware "github.com/Mohamed-Kaizen/teached/internal/middleware"
	pkgAuth "github.com/Mohamed-Kaizen/teached/internal/pkg/auth"
	"github.com/Mohamed-Kaizen/teached/internal/pkg/filestorage"
	"github.com/Mohamed-Kaizen/teached/internal/pkg/helpers"
	"github.com/Mohamed-Kaizen/teached/internal/pkg/logger"
	"github.com/Mohamed-Kaizen/teached/internal/pkg/validation"
	"github.com/Mohamed-Kaizen/teached/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	UserService          *appServices.UserService
	CourseService        *appServices.CourseService
	EnrollmentService    *appServices.EnrollmentService
	UserController       *appControllers.UserController
	CourseController     *appControllers.CourseController
	ClassroomController  *appControllers.ClassroomController
	ManageController     *appControllers.ManageController
	AuthMiddleware       *appMiddleware.AuthMiddleware
	Repos                *appRepos.Repositories
	JWTService           *pkgAuth.JWTService
	FileStorage          *filestorage.LocalStorage
	Logger               zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations
// and seeds the default catalog data.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		database.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	var err error
	baseURL := "http://localhost:" + cfg.Server.Port
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath, baseURL+"/uploads")
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiry, time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	breachChecker := pkgAuth.NewPwnedClient(
		cfg.BreachCheck.Endpoint,
		helpers.ParseDuration(cfg.BreachCheck.Timeout, time.Second),
	)

	passwordPolicy := validation.PasswordPolicy{
		MinLength: cfg.Password.MinLength,
		MaxLength: cfg.Password.MaxLength,
	}

	deps.UserService = appServices.NewUserService(
		deps.Repos.UserRepository,
		breachChecker,
		deps.JWTService,
		passwordPolicy,
		lgr,
	)

	deps.CourseService = appServices.NewCourseService(
		deps.Repos.CourseRepository,
		deps.Repos.TaxonomyRepository,
		deps.Repos.ContentRepository,
		deps.Repos.EngagementRepository,
		deps.Repos.UserRepository,
		deps.FileStorage,
		lgr,
	)

	deps.EnrollmentService = appServices.NewEnrollmentService(
		deps.CourseService,
		deps.Repos.EngagementRepository,
		appServices.NewLoggingPaymentGateway(lgr),
		lgr,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, deps.Repos.UserRepository, deps.CourseService)

	deps.UserController = appControllers.NewUserController(deps.UserService, lgr)
	deps.CourseController = appControllers.NewCourseController(deps.CourseService, deps.EnrollmentService, lgr)
	deps.ClassroomController = appControllers.NewClassroomController(deps.EnrollmentService, lgr)
	deps.ManageController = appControllers.NewManageController(deps.CourseService, lgr)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	appRoutes.SetupRouter(router,
		deps.UserController,
		deps.CourseController,
		deps.ClassroomController,
		deps.ManageController,
		deps.AuthMiddleware,
	)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return router
}
