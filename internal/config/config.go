package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"ipfs-uploader/internal/upload"
)

const (
	defaultIPFSAPIURL     = "https://ipfs.infura.io:5001/api/v0/add"
	defaultIPFSGatewayURL = "https://ipfs.infura.io"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Port            string
	AppEnv          string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	BodyLimit       int

	// IPFS endpoints
	IPFSAPIURL     string
	IPFSGatewayURL string

	// Upload acceptance policy
	UploadMaxFiles          int
	UploadMaxBytes          int64
	UploadAllowedExtensions []string

	// Logging configuration
	LogLevel string

	// API documentation
	EnableSwagger bool

	// Archive mirror configuration
	Mirror *MirrorConfiguration

	warnings []string
}

// Load loads configuration from environment variables and an optional .env file
func Load() *Config {
	l := &loader{}

	// .env is optional
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		l.warn("could not load .env file: %v", err)
	}

	cfg := &Config{
		Port:            l.getEnv("PORT", "8080"),
		AppEnv:          l.getEnv("APP_ENV", "development"),
		ReadTimeout:     l.getDuration("READ_TIMEOUT", 5*time.Minute),
		WriteTimeout:    l.getDuration("WRITE_TIMEOUT", 5*time.Minute),
		IdleTimeout:     l.getDuration("IDLE_TIMEOUT", 5*time.Minute),
		ShutdownTimeout: l.getDuration("SHUTDOWN_TIMEOUT", 30*time.Second),
		BodyLimit:       l.getInt("BODY_LIMIT", 110*1000*1000),

		IPFSAPIURL:     l.getEnv("IPFS_API_URL", defaultIPFSAPIURL),
		IPFSGatewayURL: l.getEnv("IPFS_GATEWAY_URL", defaultIPFSGatewayURL),

		UploadMaxFiles:          l.getInt("UPLOAD_MAX_FILES", upload.DefaultMaxFiles),
		UploadMaxBytes:          l.getInt64("UPLOAD_MAX_BYTES", upload.DefaultMaxByteLength),
		UploadAllowedExtensions: l.getStringSlice("UPLOAD_ALLOWED_EXTENSIONS", nil),

		LogLevel:      l.getEnv("LOG_LEVEL", "info"),
		EnableSwagger: l.getBool("ENABLE_SWAGGER", true),

		Mirror: loadMirrorConfig(l),
	}
	cfg.warnings = l.warnings
	return cfg
}

// loader reads typed values from the environment and remembers the values it
// had to replace with defaults.
type loader struct {
	warnings []string
}

func (l *loader) warn(format string, args ...any) {
	l.warnings = append(l.warnings, fmt.Sprintf(format, args...))
}

func (l *loader) getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func (l *loader) getInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
		l.warn("invalid integer value for %s: %s, using default: %d", key, value, defaultValue)
	}
	return defaultValue
}

func (l *loader) getInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
			return parsed
		}
		l.warn("invalid int64 value for %s: %s, using default: %d", key, value, defaultValue)
	}
	return defaultValue
}

func (l *loader) getBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
		l.warn("invalid boolean value for %s: %s, using default: %t", key, value, defaultValue)
	}
	return defaultValue
}

func (l *loader) getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
		l.warn("invalid duration value for %s: %s, using default: %s", key, value, defaultValue)
	}
	return defaultValue
}

func (l *loader) getStringSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		var result []string
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				result = append(result, part)
			}
		}
		return result
	}
	return defaultValue
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Warnings returns the problems found while loading and validating.
func (c *Config) Warnings() []string {
	return c.warnings
}

// Policy returns the upload acceptance policy.
func (c *Config) Policy() upload.Policy {
	policy := upload.NewPolicy(c.UploadMaxBytes, c.UploadAllowedExtensions)
	policy.MaxFiles = c.UploadMaxFiles
	return policy
}

// Validate normalises out-of-range values and rejects unusable endpoints.
func (c *Config) Validate() error {
	if c.IPFSAPIURL == "" {
		return fmt.Errorf("IPFS_API_URL is required")
	}
	if !strings.HasPrefix(c.IPFSAPIURL, "http://") && !strings.HasPrefix(c.IPFSAPIURL, "https://") {
		return fmt.Errorf("IPFS_API_URL must be an http(s) URL: %s", c.IPFSAPIURL)
	}

	// Result URLs are built as base + "/ipfs/" + hash
	c.IPFSGatewayURL = strings.TrimRight(c.IPFSGatewayURL, "/")
	if c.IPFSGatewayURL == "" {
		c.warnings = append(c.warnings, "IPFS_GATEWAY_URL is empty, using default: "+defaultIPFSGatewayURL)
		c.IPFSGatewayURL = defaultIPFSGatewayURL
	}

	if c.UploadMaxFiles != upload.DefaultMaxFiles {
		c.warnings = append(c.warnings, fmt.Sprintf("UPLOAD_MAX_FILES=%d is not supported, only one file per upload", c.UploadMaxFiles))
		c.UploadMaxFiles = upload.DefaultMaxFiles
	}

	if c.UploadMaxBytes <= 0 {
		c.warnings = append(c.warnings, fmt.Sprintf("UPLOAD_MAX_BYTES is 0 or negative, setting to default: %d", upload.DefaultMaxByteLength))
		c.UploadMaxBytes = upload.DefaultMaxByteLength
	}

	// The multipart form carries the file plus its envelope
	if int64(c.BodyLimit) < c.UploadMaxBytes {
		limit := c.UploadMaxBytes + 10*1000*1000
		c.warnings = append(c.warnings, fmt.Sprintf("BODY_LIMIT is below UPLOAD_MAX_BYTES, raising to %d", limit))
		c.BodyLimit = int(limit)
	}

	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = 30 * time.Second
	}

	if _, err := zap.ParseAtomicLevel(c.LogLevel); err != nil {
		c.warnings = append(c.warnings, fmt.Sprintf("invalid LOG_LEVEL %q, using info", c.LogLevel))
		c.LogLevel = "info"
	}

	if c.Mirror != nil {
		if err := c.Mirror.Validate(); err != nil {
			return err
		}
	}

	return nil
}

// NewLogger builds the application logger for the configured environment.
func (c *Config) NewLogger() (*zap.Logger, error) {
	zc := zap.NewDevelopmentConfig()
	if c.IsProduction() {
		zc = zap.NewProductionConfig()
	}

	level, err := zap.ParseAtomicLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	zc.Level = level

	return zc.Build()
}

// PrintConfig logs the current configuration (without sensitive data)
func (c *Config) PrintConfig(logger *zap.Logger) {
	for _, w := range c.warnings {
		logger.Warn("Configuration", zap.String("warning", w))
	}

	fields := []zap.Field{
		zap.String("env", c.AppEnv),
		zap.String("port", c.Port),
		zap.String("ipfs_api", c.IPFSAPIURL),
		zap.String("ipfs_gateway", c.IPFSGatewayURL),
		zap.Int64("max_bytes", c.UploadMaxBytes),
		zap.Strings("allowed_extensions", c.UploadAllowedExtensions),
		zap.Int("body_limit", c.BodyLimit),
		zap.Bool("swagger", c.EnableSwagger),
	}
	if c.Mirror != nil {
		fields = append(fields,
			zap.Bool("mirror", c.Mirror.Enabled),
			zap.String("mirror_provider", string(c.Mirror.Provider)),
			zap.String("mirror_bucket", c.Mirror.Bucket))
	}
	logger.Info("IPFS uploader configuration", fields...)
}
