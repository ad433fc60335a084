package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	domainconfig "ordbok-backend/domain/config"
)

// Store backends
const (
	StoreDynamoDB = "dynamodb"
	StoreMemory   = "memory"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string `yaml:"server_address"`
	Environment   string `yaml:"environment"`

	// Store backend: "dynamodb" or "memory"; SeedDir preloads the memory store
	StoreBackend string `yaml:"store_backend"`
	SeedDir      string `yaml:"seed_dir"`

	// AWS configuration
	AWSRegion        string `yaml:"aws_region"`
	DynamoDBTable    string `yaml:"dynamodb_table"`
	DynamoDBEndpoint string `yaml:"dynamodb_endpoint"`

	// Lambda configuration
	IsLambda bool `yaml:"is_lambda"`

	// Redis configuration; an empty address disables the shared tier
	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`

	// Cache configuration
	CacheTTLSeconds       int `yaml:"cache_ttl_seconds"`
	MemoryCacheTTLSeconds int `yaml:"memory_cache_ttl_seconds"`
	MemoryCacheMaxItems   int `yaml:"memory_cache_max_items"`

	// Circuit breaker around the entry store
	BreakerMaxRequests      uint32 `yaml:"breaker_max_requests"`
	BreakerIntervalSeconds  int    `yaml:"breaker_interval_seconds"`
	BreakerTimeoutSeconds   int    `yaml:"breaker_timeout_seconds"`
	BreakerFailureThreshold uint32 `yaml:"breaker_failure_threshold"`

	// Logging
	LogLevel string `yaml:"log_level"`

	// Feature flags
	EnableMetrics  bool     `yaml:"enable_metrics"`
	EnableTracing  bool     `yaml:"enable_tracing"`
	EnableCORS     bool     `yaml:"enable_cors"`
	AllowedOrigins []string `yaml:"allowed_origins"`

	// Domain rules
	Domain *domainconfig.DomainConfig `yaml:"domain"`
}

// Default returns the configuration used when nothing is set
func Default() *Config {
	env := getEnv("ENVIRONMENT", "development")
	return &Config{
		ServerAddress:           ":8080",
		Environment:             env,
		StoreBackend:            StoreDynamoDB,
		AWSRegion:               "eu-north-1",
		DynamoDBTable:           "ordbok-entries",
		CacheTTLSeconds:         3600,
		MemoryCacheTTLSeconds:   300,
		MemoryCacheMaxItems:     10000,
		BreakerMaxRequests:      1,
		BreakerIntervalSeconds:  60,
		BreakerTimeoutSeconds:   30,
		BreakerFailureThreshold: 5,
		LogLevel:                "info",
		EnableMetrics:           true,
		EnableCORS:              true,
		AllowedOrigins:          []string{"*"},
		Domain:                  domainconfig.LoadDomainConfig(env),
	}
}

// LoadConfig builds the configuration from defaults, the YAML file named by
// CONFIG_FILE (if any) and environment variables, in increasing precedence.
func LoadConfig() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Load is an alias for LoadConfig
func Load() (*Config, error) {
	return LoadConfig()
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if c.Domain == nil {
		c.Domain = domainconfig.LoadDomainConfig(c.Environment)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.ServerAddress = getEnv("SERVER_ADDRESS", c.ServerAddress)
	c.Environment = getEnv("ENVIRONMENT", c.Environment)

	c.StoreBackend = getEnv("STORE_BACKEND", c.StoreBackend)
	c.SeedDir = getEnv("SEED_DIR", c.SeedDir)

	c.AWSRegion = getEnv("AWS_REGION", c.AWSRegion)
	c.DynamoDBTable = getEnv("TABLE_NAME", getEnv("DYNAMODB_TABLE", c.DynamoDBTable))
	c.DynamoDBEndpoint = getEnv("DYNAMODB_ENDPOINT", c.DynamoDBEndpoint)

	c.IsLambda = getEnvBool("IS_LAMBDA", c.IsLambda || os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "")

	c.RedisAddr = getEnv("REDIS_ADDR", c.RedisAddr)
	c.RedisPassword = getEnv("REDIS_PASSWORD", c.RedisPassword)
	c.RedisDB = getEnvInt("REDIS_DB", c.RedisDB)

	c.CacheTTLSeconds = getEnvInt("CACHE_TTL_SECONDS", c.CacheTTLSeconds)
	c.MemoryCacheTTLSeconds = getEnvInt("MEMORY_CACHE_TTL_SECONDS", c.MemoryCacheTTLSeconds)
	c.MemoryCacheMaxItems = getEnvInt("MEMORY_CACHE_MAX_ITEMS", c.MemoryCacheMaxItems)

	c.BreakerMaxRequests = uint32(getEnvInt("BREAKER_MAX_REQUESTS", int(c.BreakerMaxRequests)))
	c.BreakerIntervalSeconds = getEnvInt("BREAKER_INTERVAL_SECONDS", c.BreakerIntervalSeconds)
	c.BreakerTimeoutSeconds = getEnvInt("BREAKER_TIMEOUT_SECONDS", c.BreakerTimeoutSeconds)
	c.BreakerFailureThreshold = uint32(getEnvInt("BREAKER_FAILURE_THRESHOLD", int(c.BreakerFailureThreshold)))

	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.EnableMetrics = getEnvBool("ENABLE_METRICS", c.EnableMetrics)
	c.EnableTracing = getEnvBool("ENABLE_TRACING", c.EnableTracing)
	c.EnableCORS = getEnvBool("ENABLE_CORS", c.EnableCORS)
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		c.AllowedOrigins = splitList(origins)
	}

	c.Domain.MaxGraphDepth = getEnvInt("MAX_GRAPH_DEPTH", c.Domain.MaxGraphDepth)
	c.Domain.DefaultGraphDepth = getEnvInt("DEFAULT_GRAPH_DEPTH", c.Domain.DefaultGraphDepth)
	c.Domain.GraphConcurrency = getEnvInt("GRAPH_CONCURRENCY", c.Domain.GraphConcurrency)
	if seconds := getEnvInt("CONCEPT_RETRY_SECONDS", 0); seconds > 0 {
		c.Domain.ConceptRetryInterval = time.Duration(seconds) * time.Second
	}
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case StoreDynamoDB, StoreMemory:
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}
	if c.StoreBackend == StoreMemory && c.Environment == "production" {
		return fmt.Errorf("the memory store cannot be used in production")
	}
	if c.Environment == "production" {
		if c.DynamoDBTable == "" {
			return fmt.Errorf("DYNAMODB_TABLE is required in production")
		}
		if c.DynamoDBEndpoint != "" {
			return fmt.Errorf("DYNAMODB_ENDPOINT must not be set in production")
		}
	}
	if c.CacheTTLSeconds < 0 || c.MemoryCacheTTLSeconds < 0 {
		return fmt.Errorf("cache TTLs must not be negative")
	}
	if c.MemoryCacheMaxItems <= 0 {
		return fmt.Errorf("MEMORY_CACHE_MAX_ITEMS must be positive")
	}
	if c.RedisDB < 0 {
		return fmt.Errorf("REDIS_DB must not be negative")
	}
	if c.BreakerFailureThreshold == 0 {
		return fmt.Errorf("BREAKER_FAILURE_THRESHOLD must be positive")
	}
	if c.Domain == nil {
		return fmt.Errorf("domain configuration is missing")
	}
	return c.Domain.Validate()
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// CacheTTL is the shared cache entry lifetime
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// MemoryCacheTTL is the in-process cache entry lifetime
func (c *Config) MemoryCacheTTL() time.Duration {
	return time.Duration(c.MemoryCacheTTLSeconds) * time.Second
}

// BreakerInterval is the period after which closed-state counts reset
func (c *Config) BreakerInterval() time.Duration {
	return time.Duration(c.BreakerIntervalSeconds) * time.Second
}

// BreakerTimeout is how long the breaker stays open
func (c *Config) BreakerTimeout() time.Duration {
	return time.Duration(c.BreakerTimeoutSeconds) * time.Second
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
