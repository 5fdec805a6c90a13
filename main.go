package main

import (
	"log"

	"github.com/bvggies/recommendersystem/cmd"
	"github.com/bvggies/recommendersystem/internal/data/memory"
	"github.com/bvggies/recommendersystem/internal/data/repository"
	"github.com/bvggies/recommendersystem/internal/usecase"
	"github.com/bvggies/recommendersystem/internal/wire"
	"github.com/bvggies/recommendersystem/pkg/cache"
	"github.com/bvggies/recommendersystem/pkg/database"
	"github.com/bvggies/recommendersystem/pkg/rabbitmq"
	"github.com/bvggies/recommendersystem/pkg/ranker"
	"github.com/bvggies/recommendersystem/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.String("storage", config.App.StorageDriver),
		zap.Bool("debug", config.App.Debug),
	)

	// Storage
	var repos *repository.Repository
	switch config.App.StorageDriver {
	case "memory":
		repos = memory.NewRepository(memory.NewStore(logger))
		logger.Warn("Using in-memory storage, data is lost on restart")
	default:
		db, err := database.InitDB(config.Database)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()

		logger.Info("Database connected successfully")
		repos = repository.NewRepository(db, logger)
	}

	var ext usecase.Externals

	// Re-ranking is optional; without a key the default order is served.
	if config.Ranker.Enabled() {
		var r ranker.Ranker = ranker.NewClient(config.Ranker, logger)

		if config.Redis.Addr != "" {
			redisCache, err := cache.NewRedisCache(config.Redis)
			if err != nil {
				logger.Warn("Redis unavailable, ranking cache disabled", zap.Error(err))
			} else {
				defer redisCache.Close()
				r = cache.NewRankingCache(r, redisCache, config.Ranker.CacheTTL, logger)
				logger.Info("Ranking cache enabled", zap.String("addr", config.Redis.Addr))
			}
		}

		ext.Ranker = r
		logger.Info("Re-ranking enabled", zap.String("model", config.Ranker.Model))
	}

	if config.RabbitMQ.URL != "" {
		publisher, err := rabbitmq.NewPublisher(config.RabbitMQ.URL, logger)
		if err != nil {
			logger.Fatal("Failed to connect to RabbitMQ", zap.Error(err))
		}
		defer publisher.Close()

		ext.Notifier = usecase.NewEventNotifier(publisher)
		logger.Info("Booking notifications published to RabbitMQ")
	}

	// Wire all dependencies
	app := wire.Wiring(repos, ext, config, logger)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	if err := cmd.APIServer(app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server error", zap.Error(err))
	}

	// let in-flight notifications finish before the broker connection closes
	app.Service.Wait()
	logger.Info("Server stopped")
}
