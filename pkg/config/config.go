package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ccplugins/pluginserve/pkg/marketplace"
)

// Config holds all application configuration.
type Config struct {
	Server        ServerConfig
	Marketplace   MarketplaceConfig
	Observability ObservabilityConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host            string
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	// Health/metrics server (separate port for probes and scraping)
	HealthPort string
}

// MarketplaceConfig holds plugin marketplace configuration.
type MarketplaceConfig struct {
	// RootDir is the directory containing marketplace directories.
	RootDir string
	// CacheSize bounds the plugin-name to directory lookup cache.
	CacheSize int
}

// ObservabilityConfig holds observability settings.
type ObservabilityConfig struct {
	LogLevel       string
	LogJSON        bool
	MetricsEnabled bool

	OTelEnabled        bool
	OTelEndpoint       string
	OTelServiceName    string
	OTelServiceVersion string
	OTelInsecure       bool
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Server:        loadServerConfig(),
		Marketplace:   loadMarketplaceConfig(),
		Observability: loadObservabilityConfig(),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func loadServerConfig() ServerConfig {
	return ServerConfig{
		Host:            getEnv("PLUGINSERVE_HOST", "0.0.0.0"),
		Port:            getEnv("PLUGINSERVE_PORT", "8080"),
		ReadTimeout:     getEnvDuration("PLUGINSERVE_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:    getEnvDuration("PLUGINSERVE_WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:     getEnvDuration("PLUGINSERVE_IDLE_TIMEOUT", 60*time.Second),
		ShutdownTimeout: getEnvDuration("PLUGINSERVE_SHUTDOWN_TIMEOUT", 30*time.Second),
		HealthPort:      getEnv("PLUGINSERVE_HEALTH_PORT", "9090"),
	}
}

func loadMarketplaceConfig() MarketplaceConfig {
	return MarketplaceConfig{
		RootDir:   getEnv("PLUGINSERVE_MARKETPLACES_DIR", marketplace.DefaultRootDir()),
		CacheSize: getEnvInt("PLUGINSERVE_CACHE_SIZE", marketplace.DefaultCacheSize),
	}
}

func loadObservabilityConfig() ObservabilityConfig {
	return ObservabilityConfig{
		LogLevel:       getEnv("PLUGINSERVE_LOG_LEVEL", "info"),
		LogJSON:        getEnvBool("PLUGINSERVE_LOG_JSON", false),
		MetricsEnabled: getEnvBool("PLUGINSERVE_METRICS_ENABLED", true),

		OTelEnabled:        getEnvBool("PLUGINSERVE_OTEL_ENABLED", false),
		OTelEndpoint:       getEnv("PLUGINSERVE_OTEL_ENDPOINT", "localhost:4317"),
		OTelServiceName:    getEnv("PLUGINSERVE_OTEL_SERVICE_NAME", "pluginserve"),
		OTelServiceVersion: getEnv("PLUGINSERVE_OTEL_SERVICE_VERSION", "1.0.0"),
		OTelInsecure:       getEnvBool("PLUGINSERVE_OTEL_INSECURE", true),
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	if c.Server.HealthPort == "" {
		return fmt.Errorf("health port is required")
	}
	if c.Server.Port == c.Server.HealthPort {
		return fmt.Errorf("server port and health port must be different")
	}

	if c.Marketplace.RootDir == "" {
		return fmt.Errorf("marketplaces root directory is required")
	}
	if c.Marketplace.CacheSize <= 0 {
		return fmt.Errorf("cache size must be positive")
	}

	if c.Observability.OTelEnabled {
		if c.Observability.OTelEndpoint == "" {
			return fmt.Errorf("OpenTelemetry endpoint is required when OTel is enabled")
		}
		if c.Observability.OTelServiceName == "" {
			return fmt.Errorf("OpenTelemetry service name is required when OTel is enabled")
		}
	}

	return nil
}

// getEnv returns an environment variable value or a default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool returns a boolean environment variable or a default.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return strings.ToLower(value) == "true" || value == "1"
	}
	return defaultValue
}

// getEnvInt returns an integer environment variable or a default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvDuration returns a duration environment variable or a default.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
