package config

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Dataset  DatasetConfig  `yaml:"dataset"`
	Logger   LoggerConfig   `yaml:"logger"`
	Security SecurityConfig `yaml:"security"`
}

type ServerConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type DatasetConfig struct {
	CSVFile     string        `yaml:"csv_file"`
	ModelFile   string        `yaml:"model_file"`
	CacheDir    string        `yaml:"cache_dir"`
	LoadTimeout time.Duration `yaml:"load_timeout"`
}

type LoggerConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type SecurityConfig struct {
	EnableRateLimit bool     `yaml:"enable_rate_limit"`
	RateLimitRPS    int      `yaml:"rate_limit_rps"`
	RateLimitBurst  int      `yaml:"rate_limit_burst"`
	AllowedOrigins  []string `yaml:"allowed_origins"`
	TrustedProxies  []string `yaml:"trusted_proxies"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "localhost",
			Port:            8050,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Dataset: DatasetConfig{
			CSVFile:     "data/processed/cleaned_data.csv",
			ModelFile:   "data/model/classification_model.pkl",
			LoadTimeout: 30 * time.Second,
		},
		Logger: LoggerConfig{
			Level:  "info",
			Format: "json",
		},
		Security: SecurityConfig{
			EnableRateLimit: true,
			RateLimitRPS:    100,
			RateLimitBurst:  10,
			AllowedOrigins:  []string{"http://localhost:8050"},
			TrustedProxies:  []string{"127.0.0.1"},
		},
	}
}

// Load builds the configuration from defaults, then the YAML file named by
// CONFIG_FILE (if set), then environment variables.
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Server.Host = getEnvString("SERVER_HOST", c.Server.Host)
	c.Server.Port = getEnvInt("SERVER_PORT", c.Server.Port)
	c.Server.ReadTimeout = getEnvDuration("SERVER_READ_TIMEOUT", c.Server.ReadTimeout)
	c.Server.WriteTimeout = getEnvDuration("SERVER_WRITE_TIMEOUT", c.Server.WriteTimeout)
	c.Server.IdleTimeout = getEnvDuration("SERVER_IDLE_TIMEOUT", c.Server.IdleTimeout)
	c.Server.ShutdownTimeout = getEnvDuration("SERVER_SHUTDOWN_TIMEOUT", c.Server.ShutdownTimeout)

	c.Dataset.CSVFile = getEnvString("CSV_FILE", c.Dataset.CSVFile)
	c.Dataset.ModelFile = getEnvString("MODEL_FILE", c.Dataset.ModelFile)
	c.Dataset.CacheDir = getEnvString("DATASET_CACHE_DIR", c.Dataset.CacheDir)
	c.Dataset.LoadTimeout = getEnvDuration("DATASET_LOAD_TIMEOUT", c.Dataset.LoadTimeout)

	c.Logger.Level = getEnvString("LOG_LEVEL", c.Logger.Level)
	c.Logger.Format = getEnvString("LOG_FORMAT", c.Logger.Format)

	c.Security.EnableRateLimit = getEnvBool("SECURITY_RATE_LIMIT_ENABLED", c.Security.EnableRateLimit)
	c.Security.RateLimitRPS = getEnvInt("SECURITY_RATE_LIMIT_RPS", c.Security.RateLimitRPS)
	c.Security.RateLimitBurst = getEnvInt("SECURITY_RATE_LIMIT_BURST", c.Security.RateLimitBurst)
	c.Security.AllowedOrigins = getEnvStringSlice("SECURITY_ALLOWED_ORIGINS", c.Security.AllowedOrigins)
	c.Security.TrustedProxies = getEnvStringSlice("SECURITY_TRUSTED_PROXIES", c.Security.TrustedProxies)
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server port must be between 1 and 65535, got %d", c.Server.Port)
	}

	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("server read timeout must be positive")
	}

	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server write timeout must be positive")
	}

	if c.Dataset.CSVFile == "" {
		return fmt.Errorf("CSV file path cannot be empty")
	}

	if c.Dataset.LoadTimeout <= 0 {
		return fmt.Errorf("dataset load timeout must be positive")
	}

	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !slices.Contains(validLogLevels, c.Logger.Level) {
		return fmt.Errorf("invalid log level %q, must be one of: %s", c.Logger.Level, strings.Join(validLogLevels, ", "))
	}

	validLogFormats := []string{"json", "text"}
	if !slices.Contains(validLogFormats, c.Logger.Format) {
		return fmt.Errorf("invalid log format %q, must be one of: %s", c.Logger.Format, strings.Join(validLogFormats, ", "))
	}

	if c.Security.RateLimitRPS <= 0 {
		return fmt.Errorf("rate limit RPS must be positive")
	}

	if c.Security.RateLimitBurst <= 0 {
		return fmt.Errorf("rate limit burst must be positive")
	}

	return nil
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvStringSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return defaultValue
}

func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
