package mirror

import (
	"context"
	"io"
	"strings"
	"time"
)

// Provider stores archive copies of published content.
type Provider interface {
	// Put stores size bytes from reader under key
	Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (*PutResult, error)

	// PublicURL returns the storage URL of key
	PublicURL(key string) string

	// HealthCheck verifies the bucket is reachable
	HealthCheck(ctx context.Context) error

	// Name identifies the provider in logs and results
	Name() string
}

// PutResult describes a stored archive object.
type PutResult struct {
	Key       string        `json:"key"`
	URL       string        `json:"url"`
	Size      int64         `json:"size"`
	ETag      string        `json:"etag"`
	VersionID string        `json:"version_id,omitempty"`
	Provider  string        `json:"provider"`
	Elapsed   time.Duration `json:"elapsed"`
}

// ProviderType names a supported S3-compatible backend.
type ProviderType string

const (
	ProviderAWS          ProviderType = "aws"
	ProviderMinIO        ProviderType = "minio"
	ProviderBackblaze    ProviderType = "backblaze"
	ProviderDigitalOcean ProviderType = "digitalocean"
	ProviderCloudflare   ProviderType = "cloudflare"
	ProviderWasabi       ProviderType = "wasabi"
)

// Config holds the connection settings of a mirror provider.
type Config struct {
	Provider       ProviderType
	Endpoint       string
	PublicEndpoint string
	Region         string
	Bucket         string
	AccessKey      string
	SecretKey      string
	UseSSL         bool
	PathStyle      bool
	UploadTimeout  time.Duration
}

// Validate checks required fields and fills defaults.
func (c *Config) Validate() error {
	if c.Provider == "" {
		return ErrInvalidProvider
	}
	if c.Endpoint == "" {
		return ErrMissingEndpoint
	}
	if c.Bucket == "" {
		return ErrMissingBucket
	}
	if c.AccessKey == "" {
		return ErrMissingAccessKey
	}
	if c.SecretKey == "" {
		return ErrMissingSecretKey
	}
	if c.UploadTimeout <= 0 {
		c.UploadTimeout = 10 * time.Minute
	}
	return nil
}

// PublicURL builds the object URL for key, honouring path-style addressing.
func (c *Config) PublicURL(key string) string {
	base := c.PublicEndpoint
	if base == "" {
		base = c.Endpoint
	}
	base = strings.TrimSuffix(base, "/")

	if c.PathStyle || c.PublicEndpoint != "" {
		if c.PathStyle {
			return base + "/" + c.Bucket + "/" + key
		}
		return base + "/" + key
	}

	host := strings.TrimPrefix(strings.TrimPrefix(base, "https://"), "http://")
	return "https://" + c.Bucket + "." + host + "/" + key
}
