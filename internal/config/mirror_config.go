package config

import (
	"fmt"
	"runtime"
	"time"

	"ipfs-uploader/internal/mirror"
)

// MirrorConfiguration holds the settings of the archive mirror
type MirrorConfiguration struct {
	Enabled bool `json:"enabled"`

	// Provider configuration
	Provider       mirror.ProviderType `json:"provider"`
	Endpoint       string              `json:"endpoint"`
	PublicEndpoint string              `json:"public_endpoint"`
	Region         string              `json:"region"`
	Bucket         string              `json:"bucket"`
	AccessKey      string              `json:"-"`
	SecretKey      string              `json:"-"`

	// Connection settings
	UseSSL        bool          `json:"use_ssl"`
	UploadTimeout time.Duration `json:"upload_timeout"`

	// Objects are stored as <KeyPrefix>/<content hash>
	KeyPrefix string `json:"key_prefix"`

	// Background workers
	Workers   int `json:"workers"`
	QueueSize int `json:"queue_size"`
}

func loadMirrorConfig(l *loader) *MirrorConfiguration {
	return &MirrorConfiguration{
		Enabled:        l.getBool("MIRROR_ENABLED", false),
		Provider:       mirror.ProviderType(l.getEnv("MIRROR_PROVIDER", "minio")),
		Endpoint:       l.getEnv("MIRROR_ENDPOINT", ""),
		PublicEndpoint: l.getEnv("MIRROR_PUBLIC_ENDPOINT", ""),
		Region:         l.getEnv("MIRROR_REGION", ""),
		Bucket:         l.getEnv("MIRROR_BUCKET", ""),
		AccessKey:      l.getEnv("MIRROR_ACCESS_KEY", ""),
		SecretKey:      l.getEnv("MIRROR_SECRET_KEY", ""),
		UseSSL:         l.getBool("MIRROR_USE_SSL", true),
		UploadTimeout:  l.getDuration("MIRROR_UPLOAD_TIMEOUT", 10*time.Minute),
		KeyPrefix:      l.getEnv("MIRROR_KEY_PREFIX", "ipfs"),
		Workers:        l.getInt("MIRROR_WORKERS", runtime.NumCPU()),
		QueueSize:      l.getInt("MIRROR_QUEUE_SIZE", 100),
	}
}

// ToProviderConfig converts the configuration to mirror.Config
func (c *MirrorConfiguration) ToProviderConfig() *mirror.Config {
	return &mirror.Config{
		Provider:       c.Provider,
		Endpoint:       c.Endpoint,
		PublicEndpoint: c.PublicEndpoint,
		Region:         c.Region,
		Bucket:         c.Bucket,
		AccessKey:      c.AccessKey,
		SecretKey:      c.SecretKey,
		UseSSL:         c.UseSSL,
		UploadTimeout:  c.UploadTimeout,
	}
}

// Validate checks the mirror settings when the mirror is enabled
func (c *MirrorConfiguration) Validate() error {
	if !c.Enabled {
		return nil
	}

	if c.Provider == "" {
		return fmt.Errorf("MIRROR_PROVIDER is required when the mirror is enabled")
	}
	if c.Endpoint == "" {
		return fmt.Errorf("MIRROR_ENDPOINT is required when the mirror is enabled")
	}
	if c.Bucket == "" {
		return fmt.Errorf("MIRROR_BUCKET is required when the mirror is enabled")
	}
	if c.AccessKey == "" || c.SecretKey == "" {
		return fmt.Errorf("MIRROR_ACCESS_KEY and MIRROR_SECRET_KEY are required when the mirror is enabled")
	}

	if c.Workers <= 0 {
		c.Workers = 1
	}
	if c.QueueSize <= 0 {
		c.QueueSize = 100
	}
	return nil
}
