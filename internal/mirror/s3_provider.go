package mirror

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const awsDefaultEndpoint = "https://s3.amazonaws.com"

// S3Provider stores archive copies through the AWS SDK. It also serves the
// S3-compatible services reached via a custom endpoint (Spaces, R2, Wasabi, B2).
type S3Provider struct {
	client *s3.Client
	config *Config
	name   string
}

// NewS3Provider creates a provider for cfg; name labels it in results.
func NewS3Provider(name string, cfg *Config) (*S3Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s mirror config: %w", name, err)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, NewError(name, "configure", "", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" && cfg.Endpoint != awsDefaultEndpoint {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.PathStyle
	})

	return &S3Provider{
		client: client,
		config: cfg,
		name:   name,
	}, nil
}

// Put uploads the object in a single PutObject call.
func (p *S3Provider) Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (*PutResult, error) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, p.config.UploadTimeout)
	defer cancel()

	out, err := p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(p.config.Bucket),
		Key:           aws.String(key),
		Body:          reader,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return nil, NewError(p.name, "put", key, err)
	}

	return &PutResult{
		Key:       key,
		URL:       p.PublicURL(key),
		Size:      size,
		ETag:      aws.ToString(out.ETag),
		VersionID: aws.ToString(out.VersionId),
		Provider:  p.name,
		Elapsed:   time.Since(start),
	}, nil
}

func (p *S3Provider) PublicURL(key string) string {
	return p.config.PublicURL(key)
}

// HealthCheck issues a HeadBucket against the configured bucket.
func (p *S3Provider) HealthCheck(ctx context.Context) error {
	_, err := p.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(p.config.Bucket),
	})
	if err != nil {
		return NewError(p.name, "health_check", "", err)
	}
	return nil
}

func (p *S3Provider) Name() string {
	return p.name
}
