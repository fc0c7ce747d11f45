package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/pageza/bangladiet/backend/config"
	"github.com/pageza/bangladiet/backend/internal/api"
	"github.com/pageza/bangladiet/backend/internal/database"
	"github.com/pageza/bangladiet/backend/internal/middleware"
	"github.com/pageza/bangladiet/backend/internal/repository"
	"github.com/pageza/bangladiet/backend/internal/router"
	"github.com/pageza/bangladiet/backend/internal/service"
)

// Dependencies are the external collaborators of the server. Nil fields
// disable the feature they back.
type Dependencies struct {
	DB         *gorm.DB
	Redis      *redis.Client
	Completer  service.Completer
	Classifier service.Classifier
	Images     service.ImageStore
	Clock      service.Clock
}

// Server represents the HTTP server
type Server struct {
	cfg    *config.Config
	deps   Dependencies
	router *gin.Engine
	http   *http.Server
}

// New connects to every configured backend and builds the server.
func New(ctx context.Context, cfg *config.Config) (*Server, error) {
	db, err := database.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := database.RunMigrations(db, cfg.MigrationsDir); err != nil {
		return nil, err
	}

	deps := Dependencies{DB: db}

	if cfg.RedisEnabled() {
		client, err := database.NewRedisClient(ctx, cfg)
		if err != nil {
			log.Printf("[Server] Redis unavailable, rate limiting and logout are disabled: %v", err)
		} else {
			deps.Redis = client
		}
	}

	llm, err := service.NewLLMService(cfg)
	switch {
	case errors.Is(err, service.ErrLLMNotConfigured):
		log.Printf("[Server] LLM not configured, targets use the fallback formula and analysis is unavailable")
	case err != nil:
		return nil, err
	default:
		deps.Completer = llm
	}

	deps.Classifier, err = newClassifier(ctx, cfg)
	if err != nil {
		return nil, err
	}

	s3Config, err := config.NewS3Config(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to configure S3: %w", err)
	}
	if s3Config != nil {
		deps.Images = service.NewS3ImageStore(s3Config, cfg.ExternalTimeout)
	}

	return NewWithDependencies(cfg, deps), nil
}

func newClassifier(ctx context.Context, cfg *config.Config) (service.Classifier, error) {
	switch cfg.ClassifierBackend {
	case config.ClassifierRekognition:
		awsCfg, err := config.NewAWSConfig(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}
		return service.NewRekognitionClassifier(rekognition.NewFromConfig(awsCfg), cfg.ExternalTimeout), nil
	default:
		if cfg.ClassifierURL == "" {
			log.Printf("[Server] CLASSIFIER_URL not set, image classification is unavailable")
			return nil, nil
		}
		return service.NewHTTPClassifier(cfg.ClassifierURL, cfg.ClassifierToken, cfg.ExternalTimeout), nil
	}
}

// NewWithDependencies wires services and handlers over deps.
func NewWithDependencies(cfg *config.Config, deps Dependencies) *Server {
	gin.SetMode(cfg.Environment.GinMode())

	clock := deps.Clock
	if clock == nil {
		clock = service.SystemClock()
	}

	store := repository.NewStore(deps.DB)
	calendar := service.NewCalendar(clock, cfg.Location())

	var generator service.Generator
	if deps.Completer != nil {
		generator = service.NewStructuredGenerator(deps.Completer, service.ParseLenient)
	}
	var blacklist service.TokenBlacklist
	if deps.Redis != nil {
		blacklist = service.NewRedisTokenBlacklist(deps.Redis)
	}

	estimator := service.NewTargetEstimator(generator)
	advisor := service.NewSuitabilityAdvisor(generator)
	aggregator := service.NewDailyAggregator(store, calendar)

	authService := service.NewAuthService(store.Users, estimator, blacklist, cfg.JWTSecret, cfg.JWTTTL)
	profileService := service.NewProfileService(store.Users, estimator)
	foodService := service.NewFoodService(store.Users, aggregator, advisor, deps.Classifier, deps.Images)
	mealService := service.NewMealService(store, aggregator, calendar)

	r := router.SetupRouter(router.Handlers{
		Health:  api.NewHealthHandler(store),
		Auth:    api.NewAuthHandler(authService),
		Profile: api.NewProfileHandler(profileService, authService),
		Food: api.NewFoodHandler(foodService, authService,
			middleware.NewAnalysisRateLimiter(deps.Redis, cfg.RateLimitPerHour),
			middleware.NewClassificationRateLimiter(deps.Redis, cfg.RateLimitPerHour)),
		Meals: api.NewMealHandler(mealService, aggregator, profileService, authService),
	}, cfg.CORSOrigins)

	return &Server{
		cfg:    cfg,
		deps:   deps,
		router: r,
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens on the configured address and blocks until the server stops.
func (s *Server) Start() error {
	s.http = &http.Server{
		Addr:              s.cfg.ServerAddr(),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("[Server] Listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests, waits for in-flight ones and closes
// the backends.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var errs []error
	if s.http != nil {
		errs = append(errs, s.http.Shutdown(ctx))
	}
	if s.deps.Redis != nil {
		errs = append(errs, s.deps.Redis.Close())
	}
	if s.deps.DB != nil {
		if sqlDB, err := s.deps.DB.DB(); err == nil {
			errs = append(errs, sqlDB.Close())
		}
	}
	return errors.Join(errs...)
}
