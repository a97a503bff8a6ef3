package mirror

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig(provider ProviderType) *Config {
	return &Config{
		Provider:  provider,
		Endpoint:  "http://localhost:9000",
		Bucket:    "ipfs-archive",
		AccessKey: "minioadmin",
		SecretKey: "minioadmin",
	}
}

func TestNewProviderMinIO(t *testing.T) {
	cfg := validConfig("MinIO")

	p, err := NewProvider(cfg)
	require.NoError(t, err)

	assert.Equal(t, "minio", p.Name())
	assert.True(t, cfg.PathStyle)
	assert.False(t, cfg.UseSSL)
	assert.Equal(t, "http://localhost:9000/ipfs-archive/Qm1", p.PublicURL("Qm1"))
}

func TestNewProviderS3Compatible(t *testing.T) {
	for _, kind := range []ProviderType{ProviderAWS, ProviderCloudflare, ProviderDigitalOcean, ProviderWasabi} {
		t.Run(string(kind), func(t *testing.T) {
			cfg := validConfig(kind)
			cfg.Region = "us-east-1"

			p, err := NewProvider(cfg)
			require.NoError(t, err)
			assert.Equal(t, string(kind), p.Name())
			assert.False(t, cfg.PathStyle)
		})
	}
}

func TestNewProviderRejectsBadConfig(t *testing.T) {
	_, err := NewProvider(nil)
	assert.Error(t, err)

	_, err = NewProvider(validConfig("ftp"))
	assert.ErrorIs(t, err, ErrProviderNotSupported)

	cfg := validConfig(ProviderBackblaze)
	_, err = NewProvider(cfg)
	assert.ErrorContains(t, err, "invalid Backblaze B2 endpoint")

	cfg = validConfig(ProviderMinIO)
	cfg.Bucket = ""
	_, err = NewProvider(cfg)
	assert.ErrorIs(t, err, ErrMissingBucket)
}

func TestConfigPublicURL(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{
			name: "path style",
			cfg:  Config{Endpoint: "http://minio:9000", Bucket: "b", PathStyle: true},
			want: "http://minio:9000/b/k",
		},
		{
			name: "virtual hosted",
			cfg:  Config{Endpoint: "https://s3.amazonaws.com", Bucket: "b"},
			want: "https://b.s3.amazonaws.com/k",
		},
		{
			name: "public endpoint",
			cfg:  Config{Endpoint: "https://s3.amazonaws.com", PublicEndpoint: "https://cdn.example/", Bucket: "b"},
			want: "https://cdn.example/k",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.PublicURL("k"))
		})
	}
}

func TestErrorUnwrap(t *testing.T) {
	err := NewError("minio", "put", "k", ErrBucketNotFound)
	assert.ErrorIs(t, err, ErrBucketNotFound)
	assert.Equal(t, "mirror minio put failed for key 'k': mirror bucket not found", err.Error())
}
