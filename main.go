package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"gpuhunt/dealworker/config"
	"gpuhunt/dealworker/helpers"
	"gpuhunt/dealworker/internal/catalog"
	"gpuhunt/dealworker/internal/source"
	"gpuhunt/dealworker/logger"
	"gpuhunt/dealworker/services/cache"
	"gpuhunt/dealworker/services/dedup"
	"gpuhunt/dealworker/services/notifier"
	"gpuhunt/dealworker/services/worker"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	godotenv.Load()

	// Initialize logger first
	logger.Init()
	log := logger.Default

	// Load and validate configuration
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	helpers.SetFetchTimeout(cfg.FetchTimeout)

	log.Info().
		Str("environment", cfg.Environment).
		Str("dedup_backend", cfg.DedupBackend).
		Str("dedup_key_policy", cfg.DedupKeyPolicy).
		Str("eval_policy", cfg.EvalPolicy).
		Dur("crawl_interval", cfg.CrawlInterval).
		Msg("Starting application")

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Load the model catalog
	cat, err := catalog.Load(cfg.CatalogFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load catalog")
	}

	// Initialize services; a dedup store that cannot be opened is fatal
	// before anything is fetched or sent
	services, err := initializeServices(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize services")
	}
	defer services.Cleanup()

	// Create source adapters
	sources := source.CreateSources(cfg, services.Cache)
	if len(sources) == 0 {
		log.Fatal().Msg("No source adapters were created")
	}

	// Create the worker
	w := worker.NewWorker(
		ctx,
		sources,
		cat,
		services.Store,
		services.Notifier,
		dedup.KeyPolicy(cfg.DedupKeyPolicy),
		catalog.Policy(cfg.EvalPolicy),
		cfg.CrawlInterval,
	)

	// Start worker in a goroutine
	workerDone := make(chan error, 1)
	go func() {
		log.Info().Msg("Starting GPU deal worker")
		workerDone <- w.Start()
	}()

	// Wait for shutdown signal or worker error
	select {
	case sig := <-sigChan:
		log.Info().
			Str("signal", sig.String()).
			Msg("Received shutdown signal")
		cancel()
	case err := <-workerDone:
		if err != nil {
			log.Error().Err(err).Msg("Worker exited with error")
		} else {
			log.Info().Msg("Worker exited normally")
		}
	}

	// Graceful shutdown
	log.Info().Msg("Shutting down gracefully...")
}

// Services holds all the initialized services
type Services struct {
	Cache    cache.CacheService
	Store    dedup.Store
	Notifier notifier.Notifier
}

// Cleanup flushes and closes all services
func (s *Services) Cleanup() {
	if s.Store != nil {
		if err := s.Store.Close(); err != nil {
			logger.LogError("dedup", err, "Failed to close dedup store")
		}
	}
}

// initializeServices initializes all required services
func initializeServices(ctx context.Context, cfg *config.Config) (*Services, error) {
	services := &Services{}

	// Initialize cache service
	cacheService := cache.NewMemcacheService(cfg.MemcacheAddr)
	if cacheService == nil {
		return nil, fmt.Errorf("failed to create cache service")
	}
	services.Cache = cacheService

	logger.Info("Connected to Memcache at %s", cfg.MemcacheAddr)

	// Initialize the dedup store
	switch cfg.DedupBackend {
	case config.DedupBackendRedis:
		redisStore := dedup.NewRedisStore(ctx, cfg.RedisAddr, cfg.RedisDB, cfg.RedisSetKey)
		if err := redisStore.Ping(); err != nil {
			return nil, fmt.Errorf("failed to reach redis dedup store: %w", err)
		}
		services.Store = redisStore
		logger.Info("Using Redis dedup store at %s (DB: %d, Set: %s)",
			cfg.RedisAddr, cfg.RedisDB, cfg.RedisSetKey)
	default:
		fileStore, err := dedup.NewFileStore(cfg.SeenFile)
		if err != nil {
			return nil, fmt.Errorf("failed to open dedup store: %w", err)
		}
		services.Store = fileStore
		logger.Info("Using file dedup store at %s", cfg.SeenFile)
	}

	// Initialize the notifier
	if cfg.DiscordWebhookURL != "" {
		services.Notifier = notifier.NewDiscordNotifier(cfg.DiscordWebhookURL)
		logger.Info("Using Discord webhook notifier")
	} else {
		services.Notifier = notifier.NewLogNotifier()
		logger.Warn("DISCORD_WEBHOOK_URL not set; deals will only be logged")
	}

	return services, nil
}
