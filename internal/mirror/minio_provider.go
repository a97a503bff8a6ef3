package mirror

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	miniocreds "github.com/minio/minio-go/v7/pkg/credentials"
)

// MinIOProvider stores archive copies on a MinIO server.
type MinIOProvider struct {
	client *minio.Client
	config *Config
}

// NewMinIOProvider creates a MinIO-backed provider.
func NewMinIOProvider(cfg *Config) (*MinIOProvider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid MinIO mirror config: %w", err)
	}

	// minio-go wants a bare host:port
	endpoint := cfg.Endpoint
	switch {
	case strings.HasPrefix(endpoint, "http://"):
		endpoint = strings.TrimPrefix(endpoint, "http://")
		cfg.UseSSL = false
	case strings.HasPrefix(endpoint, "https://"):
		endpoint = strings.TrimPrefix(endpoint, "https://")
		cfg.UseSSL = true
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  miniocreds.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, NewError(string(ProviderMinIO), "configure", "", err)
	}

	return &MinIOProvider{
		client: client,
		config: cfg,
	}, nil
}

func (p *MinIOProvider) Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (*PutResult, error) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, p.config.UploadTimeout)
	defer cancel()

	info, err := p.client.PutObject(ctx, p.config.Bucket, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return nil, NewError(p.Name(), "put", key, err)
	}

	return &PutResult{
		Key:       key,
		URL:       p.PublicURL(key),
		Size:      info.Size,
		ETag:      info.ETag,
		VersionID: info.VersionID,
		Provider:  p.Name(),
		Elapsed:   time.Since(start),
	}, nil
}

func (p *MinIOProvider) PublicURL(key string) string {
	return p.config.PublicURL(key)
}

func (p *MinIOProvider) HealthCheck(ctx context.Context) error {
	exists, err := p.client.BucketExists(ctx, p.config.Bucket)
	if err != nil {
		return NewError(p.Name(), "health_check", "", err)
	}
	if !exists {
		return NewError(p.Name(), "health_check", "", ErrBucketNotFound)
	}
	return nil
}

func (p *MinIOProvider) Name() string {
	return string(ProviderMinIO)
}
