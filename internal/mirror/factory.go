package mirror

import (
	"fmt"
	"strings"
)

// NewProvider creates the provider named by cfg.Provider.
func NewProvider(cfg *Config) (Provider, error) {
	if cfg == nil {
		return nil, fmt.Errorf("mirror config cannot be nil")
	}

	kind := ProviderType(strings.ToLower(string(cfg.Provider)))
	cfg.Provider = kind
	applyProviderDefaults(cfg)

	switch kind {
	case ProviderMinIO:
		return NewMinIOProvider(cfg)
	case ProviderAWS, ProviderDigitalOcean, ProviderWasabi:
		if cfg.Region == "" {
			return nil, ErrMissingRegion
		}
		return NewS3Provider(string(kind), cfg)
	case ProviderBackblaze:
		if !strings.Contains(cfg.Endpoint, "backblazeb2.com") {
			return nil, fmt.Errorf("invalid Backblaze B2 endpoint: %s", cfg.Endpoint)
		}
		return NewS3Provider(string(kind), cfg)
	case ProviderCloudflare:
		return NewS3Provider(string(kind), cfg)
	default:
		return nil, fmt.Errorf("%w: %s", ErrProviderNotSupported, cfg.Provider)
	}
}

// SupportedProviders lists the accepted provider names.
func SupportedProviders() []ProviderType {
	return []ProviderType{
		ProviderAWS,
		ProviderMinIO,
		ProviderBackblaze,
		ProviderDigitalOcean,
		ProviderCloudflare,
		ProviderWasabi,
	}
}

// applyProviderDefaults sets addressing style and region per provider.
func applyProviderDefaults(cfg *Config) {
	switch cfg.Provider {
	case ProviderAWS:
		if cfg.Endpoint == "" {
			cfg.Endpoint = awsDefaultEndpoint
		}
		cfg.PathStyle = false
	case ProviderMinIO:
		cfg.PathStyle = true
	case ProviderBackblaze:
		cfg.PathStyle = true
		if cfg.Region == "" {
			cfg.Region = "us-west-000"
		}
	case ProviderDigitalOcean:
		cfg.PathStyle = false
		if cfg.Region == "" {
			cfg.Region = "nyc3"
		}
	case ProviderCloudflare:
		cfg.PathStyle = false
		if cfg.Region == "" {
			cfg.Region = "auto"
		}
	case ProviderWasabi:
		cfg.PathStyle = false
		if cfg.Region == "" {
			cfg.Region = "us-east-1"
		}
	}
}
