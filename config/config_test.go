package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	// Test with default values
	config := LoadConfig()
	assert.Equal(t, DedupBackendFile, config.DedupBackend)
	assert.Equal(t, "seen_gpus.json", config.SeenFile)
	assert.Equal(t, "localhost:11211", config.MemcacheAddr)
	assert.Equal(t, KeyPolicyModelPrice, config.DedupKeyPolicy)
	assert.Equal(t, EvalPolicyStrict, config.EvalPolicy)
	assert.Equal(t, 300*time.Second, config.CrawlInterval)
	assert.Equal(t, 8*time.Second, config.FetchTimeout)

	// Test with environment variables
	os.Setenv("DEDUP_BACKEND", "redis")
	os.Setenv("REDIS_ADDR", "redis.example.com:6379")
	os.Setenv("REDIS_DB", "1")
	os.Setenv("DEDUP_KEY_POLICY", "model")
	os.Setenv("EVAL_POLICY", "ceiling")
	os.Setenv("CRAWL_INTERVAL_SECONDS", "30")
	os.Setenv("NEWEGG_URL", "https://example.com/newegg")

	config = LoadConfig()
	assert.Equal(t, DedupBackendRedis, config.DedupBackend)
	assert.Equal(t, "redis.example.com:6379", config.RedisAddr)
	assert.Equal(t, 1, config.RedisDB)
	assert.Equal(t, KeyPolicyModel, config.DedupKeyPolicy)
	assert.Equal(t, EvalPolicyCeiling, config.EvalPolicy)
	assert.Equal(t, 30*time.Second, config.CrawlInterval)
	assert.Equal(t, "https://example.com/newegg", config.NeweggURL)

	// Clean up
	os.Unsetenv("DEDUP_BACKEND")
	os.Unsetenv("REDIS_ADDR")
	os.Unsetenv("REDIS_DB")
	os.Unsetenv("DEDUP_KEY_POLICY")
	os.Unsetenv("EVAL_POLICY")
	os.Unsetenv("CRAWL_INTERVAL_SECONDS")
	os.Unsetenv("NEWEGG_URL")
}

func TestValidate(t *testing.T) {
	config := LoadConfig()
	assert.NoError(t, config.Validate())

	bad := *config
	bad.DedupBackend = "dynamo"
	assert.Error(t, bad.Validate())

	bad = *config
	bad.DedupKeyPolicy = "model-price-title"
	assert.Error(t, bad.Validate())

	bad = *config
	bad.EvalPolicy = "loose"
	assert.Error(t, bad.Validate())

	bad = *config
	bad.CrawlInterval = 0
	assert.Error(t, bad.Validate())

	bad = *config
	bad.DedupBackend = DedupBackendFile
	bad.SeenFile = ""
	assert.Error(t, bad.Validate())
}
