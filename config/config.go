package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Dedup key and evaluation policy names accepted by Validate
const (
	KeyPolicyModel      = "model"
	KeyPolicyModelPrice = "model-price"

	EvalPolicyStrict  = "strict"
	EvalPolicyCeiling = "ceiling"

	DedupBackendFile  = "file"
	DedupBackendRedis = "redis"
)

// Config represents the application configuration
type Config struct {
	// Notification configuration
	DiscordWebhookURL string

	// Dedup store configuration
	DedupBackend string
	SeenFile     string
	RedisAddr    string
	RedisDB      int
	RedisSetKey  string

	// Memcache configuration (source rate-limit blocks)
	MemcacheAddr string

	// Pipeline policies
	DedupKeyPolicy string
	EvalPolicy     string

	// Catalog override file (optional)
	CatalogFile string

	// Worker configuration
	CrawlInterval time.Duration
	FetchTimeout  time.Duration

	// URLs for the source search pages
	BestBuyURL     string
	AmazonURL      string
	NeweggURL      string
	MicroCenterURL string

	// Environment
	Environment string
}

// LoadConfig loads the configuration from environment variables with defaults
func LoadConfig() *Config {
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	crawlInterval, _ := strconv.Atoi(getEnv("CRAWL_INTERVAL_SECONDS", "300"))
	fetchTimeout, _ := strconv.Atoi(getEnv("FETCH_TIMEOUT_SECONDS", "8"))

	return &Config{
		DiscordWebhookURL: getEnv("DISCORD_WEBHOOK_URL", ""),
		DedupBackend:      getEnv("DEDUP_BACKEND", DedupBackendFile),
		SeenFile:          getEnv("SEEN_FILE", "seen_gpus.json"),
		RedisAddr:         getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:           redisDB,
		RedisSetKey:       getEnv("REDIS_SET_KEY", "gpudeals:seen"),
		MemcacheAddr:      getEnv("MEMCACHE_ADDR", "localhost:11211"),
		DedupKeyPolicy:    getEnv("DEDUP_KEY_POLICY", KeyPolicyModelPrice),
		EvalPolicy:        getEnv("EVAL_POLICY", EvalPolicyStrict),
		CatalogFile:       getEnv("CATALOG_FILE", ""),
		CrawlInterval:     time.Duration(crawlInterval) * time.Second,
		FetchTimeout:      time.Duration(fetchTimeout) * time.Second,
		BestBuyURL:        getEnv("BESTBUY_URL", "https://www.bestbuy.com/site/searchpage.jsp?st=rtx+4070"),
		AmazonURL:         getEnv("AMAZON_URL", "https://www.amazon.com/s?k=rtx+4070"),
		NeweggURL:         getEnv("NEWEGG_URL", "https://www.newegg.com/p/pl?d=rtx+4070"),
		MicroCenterURL:    getEnv("MICROCENTER_URL", "https://www.microcenter.com/search/search_results.aspx?N=&Ntt=rtx+4070"),
		Environment:       getEnv("DEALWORKER_ENVIRONMENT", "development"),
	}
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	switch c.DedupBackend {
	case DedupBackendFile:
		if c.SeenFile == "" {
			return fmt.Errorf("SEEN_FILE must not be empty with the file dedup backend")
		}
	case DedupBackendRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR must not be empty with the redis dedup backend")
		}
	default:
		return fmt.Errorf("unknown dedup backend %q", c.DedupBackend)
	}

	switch c.DedupKeyPolicy {
	case KeyPolicyModel, KeyPolicyModelPrice:
	default:
		return fmt.Errorf("unknown dedup key policy %q", c.DedupKeyPolicy)
	}

	switch c.EvalPolicy {
	case EvalPolicyStrict, EvalPolicyCeiling:
	default:
		return fmt.Errorf("unknown evaluation policy %q", c.EvalPolicy)
	}

	if c.CrawlInterval <= 0 {
		return fmt.Errorf("crawl interval must be positive")
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("fetch timeout must be positive")
	}

	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
