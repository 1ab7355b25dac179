package umbrella

import (
	"context"
	"time"
)

// Client provides access to the Umbrella Policies API.
type Client interface {
	DestinationLists() DestinationListsClient
}

// DestinationListsClient manages destination lists and their destinations.
//
// List and ListDestinations hide pagination: they return the complete result
// set. AddDestinations and RemoveDestinations hide batching: inputs larger
// than BatchSize are submitted in chunks and the last chunk's response data is
// returned. Empty inputs issue no requests and return nil.
type DestinationListsClient interface {
	List(ctx context.Context, params *QueryParams) ([]DestinationList, error)
	Create(ctx context.Context, request *DestinationListCreateRequest) (*DestinationList, error)
	Get(ctx context.Context, listID int) (*DestinationList, error)
	Update(ctx context.Context, listID int, request *DestinationListUpdateRequest) (*DestinationList, error)
	Delete(ctx context.Context, listID int) (*Status, error)
	ListDestinations(ctx context.Context, listID int, params *QueryParams) ([]Destination, error)
	AddDestinations(ctx context.Context, listID int, destinations []string) (*DestinationList, error)
	RemoveDestinations(ctx context.Context, listID int, destinationIDs []int) (*DestinationList, error)
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building an umbrella.Client.
//
// APIKey and APISecret are the Umbrella API credentials, exchanged for a
// bearer token using the OAuth2 client_credentials grant against TokenURL.
// The token is fetched lazily on the first request and replaced once when the
// API signals expiry; credentials are never sent to resource endpoints.
type Config struct {
	// BaseURL is the base URL for the Policies API. umbrellaclient.New
	// defaults it to the production endpoint.
	BaseURL string
	// TokenURL is the full OAuth2 token endpoint. Defaulted alongside BaseURL.
	TokenURL string

	// APIKey is the Umbrella API key (OAuth2 client ID).
	APIKey string
	// APISecret is the Umbrella API secret (OAuth2 client secret).
	APISecret string
	// AccessToken optionally seeds the client with an existing bearer token.
	AccessToken string

	// HTTPTimeout bounds each request. Zero means the 5 second default.
	HTTPTimeout time.Duration
	// RetryMax enables transport-level retries for 5xx/429/connection errors
	// when > 0. Token-expiry handling is separate and always bounded to one
	// refresh per request.
	RetryMax int
	// RetryWaitMin is the minimum backoff between transport retries.
	RetryWaitMin time.Duration
	// RetryWaitMax is the maximum backoff between transport retries.
	RetryWaitMax time.Duration
	// Debug enables verbose request/response logging when a Logger is set.
	Debug bool
	// Logger is an optional structured logger used by the HTTP layer.
	Logger Logger
	// UserAgent overrides the default User-Agent header.
	UserAgent string
	// Interceptors are run around every HTTP exchange, for rate limiting or
	// custom instrumentation.
	Interceptors *InterceptorChain
}
