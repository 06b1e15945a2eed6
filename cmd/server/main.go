package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yash-jivani/DevNetworks/adapters/event"
	githubAdapter "github.com/yash-jivani/DevNetworks/adapters/github"
	httpAdapter "github.com/yash-jivani/DevNetworks/adapters/http"
	"github.com/yash-jivani/DevNetworks/adapters/persistence"
	authUC "github.com/yash-jivani/DevNetworks/internal/application/usecase/auth"
	githubUC "github.com/yash-jivani/DevNetworks/internal/application/usecase/github"
	profileUC "github.com/yash-jivani/DevNetworks/internal/application/usecase/profile"
	"github.com/yash-jivani/DevNetworks/internal/config"
	"github.com/yash-jivani/DevNetworks/pkg/auth"
	"github.com/yash-jivani/DevNetworks/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot connect Postgres", err)
	}
	defer dbPool.Close()

	redisClient, err := persistence.NewRedisClient(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot connect Redis", err)
	}
	defer redisClient.Close()

	kafkaClient, err := event.NewKafkaProducerClient(cfg)
	if err != nil {
		appLogger.Fatal("cannot init Kafka", err)
	}
	defer kafkaClient.Close()

	// Repositories
	userRepo := persistence.NewPostgresUserRepo(dbPool, cfg.DB.QueryTimeout)
	profileRepo := persistence.NewPostgresProfileRepo(dbPool, appLogger, cfg.DB.QueryTimeout)

	// Services
	// A missing signing secret is a fatal misconfiguration, not something
	// to discover on the first login.
	if cfg.Auth.JWTSecret == "" {
		appLogger.Fatal("JWT_SECRET is not configured", nil)
	}
	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)
	githubClient := githubAdapter.NewClient(cfg, redisClient, appLogger)

	// Use Cases
	registerUseCase := authUC.NewRegisterUseCase(userRepo, jwtSvc, kafkaClient, appLogger)
	loginUseCase := authUC.NewLoginUseCase(userRepo, jwtSvc, appLogger)
	currentUserUseCase := authUC.NewCurrentUserUseCase(userRepo)
	profileUseCase := profileUC.NewProfileUseCase(profileRepo, userRepo, kafkaClient, appLogger)
	listReposUseCase := githubUC.NewListReposUseCase(githubClient)

	// HTTP Handlers
	authHandler := httpAdapter.NewAuthHandler(registerUseCase, loginUseCase, currentUserUseCase)
	profileHandler := httpAdapter.NewProfileHandler(profileUseCase)
	githubHandler := httpAdapter.NewGithubHandler(listReposUseCase)

	router := httpAdapter.NewRouter(authHandler, profileHandler, githubHandler, jwtSvc, appLogger)

	appLogger.Info("Server starting", zap.String("port", cfg.App.Port))
	if err := router.Run(":" + cfg.App.Port); err != nil {
		appLogger.Fatal("Cannot run server", err)
	}
}
