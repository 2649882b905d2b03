package app

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"jobmatch_backend/database"
	"jobmatch_backend/internal/ai/gemini"
	"jobmatch_backend/internal/config"
	"jobmatch_backend/internal/embedding"
	"jobmatch_backend/internal/handlers"
	"jobmatch_backend/internal/logger"
	"jobmatch_backend/internal/middleware"
	"jobmatch_backend/internal/models"
	"jobmatch_backend/internal/repositories"
	"jobmatch_backend/internal/routes"
	"jobmatch_backend/internal/search"
	"jobmatch_backend/internal/services"
	"jobmatch_backend/internal/skills"
	"jobmatch_backend/internal/validator"
	"jobmatch_backend/internal/vectorindex"
	"jobmatch_backend/internal/workers"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Expired refresh tokens are rejected on use anyway, so the sweep only
// needs to run occasionally to keep the table small.
const tokenCleanupInterval = time.Hour

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	gormDB, err := database.ConnectGorm()
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("Migration failed", "error", err)
	}

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ginRouter := SetupRouter(ctx, cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", "address", address)
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter builds the full dependency graph and returns the ready
// gin engine. The context bounds the lifetime of background workers.
func SetupRouter(ctx context.Context, cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	serviceContainer, userRepo, profileRepo, cache := initializeServices(ctx, cfg, gormDB)

	customValidator := validator.New()
	appHandlers := handlers.NewAppHandlers(serviceContainer, customValidator, cfg.JWT.Secret)

	embeddingWorker := workers.NewEmbeddingWorker(
		profileRepo,
		cache,
		time.Duration(cfg.Worker.RefreshIntervalMin)*time.Minute,
		time.Duration(cfg.Matching.CacheValidityDays)*24*time.Hour,
		cfg.Worker.BatchSize,
	)
	embeddingWorker.Start(ctx)

	tokenWorker := workers.NewTokenWorker(userRepo, tokenCleanupInterval)
	tokenWorker.Start(ctx)

	ginRouter := initializeGinRouter(cfg)
	routes.RegisterRoutes(ginRouter, appHandlers)

	return ginRouter
}

func initializeServices(ctx context.Context, cfg *config.Config, gormDB *gorm.DB) (*services.ServiceContainer, repositories.UserRepository, repositories.ProfileRepository, *embedding.CacheManager) {
	userRepo := repositories.NewUserRepository(gormDB)
	profileRepo := repositories.NewProfileRepository(gormDB)
	jobRepo := repositories.NewJobRepository(gormDB)

	catalog := skills.NewCatalog()
	embedder := embedding.NewHTTPEmbedder(
		cfg.Embedder.Endpoint,
		cfg.Embedder.Dimensions,
		time.Duration(cfg.Embedder.TimeoutSec)*time.Second,
	)
	embedTimeout := time.Duration(cfg.Embedder.TimeoutSec) * time.Second

	cache := embedding.NewCacheManager(
		profileRepo,
		embedder,
		time.Duration(cfg.Matching.CacheValidityDays)*24*time.Hour,
		embedTimeout,
	)

	index := vectorindex.NewPgVectorIndex(gormDB)
	retriever := search.NewRetriever(index, jobRepo)
	ranker := search.NewRanker(catalog, cfg.Matching.FuzzyThreshold)

	var generator services.ContentGenerator
	if cfg.LLM.APIKey != "" {
		g, err := gemini.NewGenerator(ctx, cfg.LLM.APIKey, cfg.LLM.Model)
		if err != nil {
			logger.Warn("Gemini client init failed, interview prep disabled", "error", err)
		} else {
			generator = g
			logger.Info("Gemini client initialized", "model", g.Model())
		}
	} else {
		logger.Warn("GEMINI_API_KEY not set, interview prep disabled")
	}

	return &services.ServiceContainer{
		AuthService:           services.NewAuthService(userRepo, profileRepo, cfg.JWT.Secret, cfg.JWT.TTL),
		ProfileService:        services.NewProfileService(profileRepo, cache, catalog),
		JobService:            services.NewJobService(jobRepo, profileRepo, embedder, index, embedTimeout),
		SearchService:         services.NewSearchService(catalog, embedder, retriever, ranker, jobRepo, embedTimeout, cfg.Matching.SearchLimit),
		RecommendationService: services.NewRecommendationService(catalog, cache, retriever, ranker, jobRepo, profileRepo),
		InterviewService:      services.NewInterviewService(generator, jobRepo, profileRepo),
	}, userRepo, profileRepo, cache
}

func initializeGinRouter(cfg *config.Config) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	return router
}

func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	adminEmail := cfg.FirstAdminEmail
	adminPassword := cfg.FirstAdminPassword

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD not set. Skipping admin seeding.")
		return nil
	}

	var adminUser models.User
	result := db.Where("email = ?", adminEmail).First(&adminUser)
	if result.Error == nil {
		logger.Info("Admin user already exists. Skipping creation.", "email", adminEmail)
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for admin user: %w", result.Error)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	newAdmin := &models.User{
		Email:        adminEmail,
		PasswordHash: string(hashedPassword),
		Role:         models.UserRoleAdmin,
		Status:       models.UserStatusActive,
	}
	if err := db.Create(newAdmin).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	logger.Info("First admin user created", "email", adminEmail)
	return nil
}
