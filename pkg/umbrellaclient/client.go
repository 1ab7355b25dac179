// Package umbrellaclient provides constructors for the Umbrella API client.
package umbrellaclient

import (
	"context"

	"github.com/policyops/umbrella/internal/client"
	"github.com/policyops/umbrella/internal/constants"
	"github.com/policyops/umbrella/pkg/umbrella"
)

// New creates a new Umbrella API client from the given configuration.
// Missing endpoint URLs default to the public Umbrella API.
func New(ctx context.Context, config *umbrella.Config) (umbrella.Client, error) {
	if config == nil {
		return nil, umbrella.ErrConfigRequired
	}

	cfg := *config

	if cfg.BaseURL == "" {
		cfg.BaseURL = constants.DefaultBaseURL
	}

	if cfg.TokenURL == "" {
		cfg.TokenURL = constants.DefaultTokenURL
	}

	return client.New(ctx, &cfg)
}

// NewWithCredentials creates a client that authenticates with the OAuth2
// client-credentials flow using an Umbrella API key and secret.
func NewWithCredentials(ctx context.Context, apiKey, apiSecret string) (umbrella.Client, error) {
	return New(ctx, &umbrella.Config{
		APIKey:    apiKey,
		APISecret: apiSecret,
	})
}

// NewWithToken creates a client that uses an existing access token. The token
// is not refreshed when it expires; requests fail with an authentication
// error instead.
func NewWithToken(ctx context.Context, accessToken string) (umbrella.Client, error) {
	return New(ctx, &umbrella.Config{
		AccessToken: accessToken,
	})
}
