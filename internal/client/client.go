// Package client provides the implementation of the Umbrella API client.
package client

import (
	"context"
	"fmt"

	"github.com/policyops/umbrella/internal/auth"
	"github.com/policyops/umbrella/internal/constants"
	internalhttp "github.com/policyops/umbrella/internal/http"
	"github.com/policyops/umbrella/pkg/umbrella"
)

// Client is the implementation of the umbrella.Client interface.
type Client struct {
	config     *umbrella.Config
	httpClient *internalhttp.Client

	destinationLists *DestinationListsClient
}

// New creates a new Umbrella API client from the given configuration.
func New(ctx context.Context, config *umbrella.Config) (*Client, error) {
	if config == nil {
		return nil, umbrella.ErrConfigRequired
	}

	if config.BaseURL == "" {
		return nil, umbrella.ErrBaseURLRequired
	}

	tokenManager, err := createTokenManager(config)
	if err != nil {
		return nil, err
	}

	httpOpts := buildHTTPOptions(config)

	c := &Client{
		config:     config,
		httpClient: internalhttp.NewClient(config.BaseURL, tokenManager, httpOpts...),
	}

	c.destinationLists = NewDestinationListsClient(c.httpClient)

	return c, nil
}

// createTokenManager builds the token manager for the configured credential
// mode: API key plus secret for the client-credentials flow, or a static
// access token the caller refreshes out of band.
func createTokenManager(config *umbrella.Config) (auth.TokenManager, error) {
	switch {
	case config.APIKey != "" && config.APISecret != "":
		return auth.NewOAuth2TokenManager(&auth.OAuth2Config{
			TokenURL:     config.TokenURL,
			ClientID:     config.APIKey,
			ClientSecret: config.APISecret,
		}), nil
	case config.AccessToken != "":
		return auth.NewOAuth2TokenManager(&auth.OAuth2Config{
			AccessToken: config.AccessToken,
		}), nil
	default:
		return nil, fmt.Errorf("%w: set APIKey and APISecret, or AccessToken", umbrella.ErrCredentialsRequired)
	}
}

func buildHTTPOptions(config *umbrella.Config) []internalhttp.Option {
	var opts []internalhttp.Option

	if config.Logger != nil {
		opts = append(opts, internalhttp.WithLogger(&loggerAdapter{logger: config.Logger}))
	}

	if config.Debug {
		opts = append(opts, internalhttp.WithDebug(true))
	}

	if config.UserAgent != "" {
		opts = append(opts, internalhttp.WithUserAgent(config.UserAgent))
	}

	if config.HTTPTimeout > 0 {
		opts = append(opts, internalhttp.WithTimeout(config.HTTPTimeout))
	}

	if config.RetryMax > 0 {
		retryWaitMin := config.RetryWaitMin
		if retryWaitMin == 0 {
			retryWaitMin = constants.DefaultRetryWaitMin
		}

		retryWaitMax := config.RetryWaitMax
		if retryWaitMax == 0 {
			retryWaitMax = constants.DefaultRetryWaitMax
		}

		opts = append(opts, internalhttp.WithRetryConfig(config.RetryMax, retryWaitMin, retryWaitMax))
	}

	if config.Interceptors != nil {
		opts = append(opts, internalhttp.WithInterceptors(config.Interceptors))
	}

	return opts
}

// DestinationLists returns the destination lists client.
func (c *Client) DestinationLists() umbrella.DestinationListsClient {
	return c.destinationLists
}

// loggerAdapter adapts an umbrella.Logger to the transport's Logger.
type loggerAdapter struct {
	logger umbrella.Logger
}

func (a *loggerAdapter) Debug(msg string, fields map[string]interface{}) {
	a.logger.Debug(msg, fields)
}

func (a *loggerAdapter) Info(msg string, fields map[string]interface{}) {
	a.logger.Info(msg, fields)
}

func (a *loggerAdapter) Warn(msg string, fields map[string]interface{}) {
	a.logger.Warn(msg, fields)
}

func (a *loggerAdapter) Error(msg string, fields map[string]interface{}) {
	a.logger.Error(msg, fields)
}
