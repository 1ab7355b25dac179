// Package http implements the authenticated transport for the Umbrella API.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/policyops/umbrella/internal/auth"
	"github.com/policyops/umbrella/internal/constants"
	"github.com/policyops/umbrella/pkg/umbrella"
)

// Logger interface for HTTP client logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Request represents an API request.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Headers map[string]string
	Body    interface{}
}

// Response represents an API response.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Client performs authenticated HTTP exchanges against a single base URL. It
// owns the bearer token lifecycle: a token is fetched lazily before the first
// request and replaced exactly once per request when the API signals expiry
// with 401. All other non-2xx statuses surface as umbrella.HTTPError without
// a retry.
type Client struct {
	baseURL      string
	tokenManager auth.TokenManager
	httpClient   *retryablehttp.Client
	logger       Logger
	debug        bool
	userAgent    string
	interceptors *umbrella.InterceptorChain
}

// Option configures the client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(logger Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.HTTPClient.Timeout = timeout
	}
}

// WithRetryConfig enables transport retries for 5xx, 429, and connection
// errors. Token-expiry handling is independent of this setting.
func WithRetryConfig(retryMax int, retryWaitMin, retryWaitMax time.Duration) Option {
	return func(c *Client) {
		c.httpClient.RetryMax = retryMax
		c.httpClient.RetryWaitMin = retryWaitMin
		c.httpClient.RetryWaitMax = retryWaitMax
	}
}

// WithInterceptors sets the interceptor chain run around each exchange.
func WithInterceptors(chain *umbrella.InterceptorChain) Option {
	return func(c *Client) {
		c.interceptors = chain
	}
}

// NewClient creates a new API client. A nil token manager sends requests
// without authentication, which is only useful in tests.
func NewClient(baseURL string, tokenManager auth.TokenManager, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.Logger = nil
	retryClient.HTTPClient.Timeout = constants.DefaultHTTPTimeout

	client := &Client{
		baseURL:      baseURL,
		tokenManager: tokenManager,
		httpClient:   retryClient,
		userAgent:    "umbrella-go-client",
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Do executes a request. On 401 the token is refreshed and the request is
// replayed once; a second 401 fails with umbrella.AuthError instead of
// looping.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	body, err := marshalBody(req.Body)
	if err != nil {
		return nil, err
	}

	info := &umbrella.RequestInfo{Method: req.Method, Path: req.Path}

	if c.interceptors != nil {
		err = c.interceptors.ExecuteRequestInterceptors(ctx, info)
		if err != nil {
			return nil, err
		}
	}

	var resp *Response

	for attempt := 0; ; attempt++ {
		resp, err = c.doOnce(ctx, req, body)
		if err != nil {
			break
		}

		if resp.StatusCode != http.StatusUnauthorized || c.tokenManager == nil {
			break
		}

		if attempt >= constants.MaxAuthRetries {
			err = &umbrella.AuthError{
				StatusCode:  resp.StatusCode,
				Description: "token rejected after refresh",
			}

			break
		}

		if c.debug && c.logger != nil {
			c.logger.Debug("Token expired, refreshing", map[string]interface{}{
				"path": req.Path,
			})
		}

		err = c.tokenManager.RefreshToken(ctx)
		if err != nil {
			break
		}
	}

	if err == nil && (resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices) {
		err = &umbrella.HTTPError{StatusCode: resp.StatusCode, Body: resp.Body}
	}

	if c.interceptors != nil {
		respInfo := &umbrella.ResponseInfo{Err: err}
		if resp != nil {
			respInfo.StatusCode = resp.StatusCode
			respInfo.Headers = resp.Headers
		}

		interceptErr := c.interceptors.ExecuteResponseInterceptors(ctx, info, respInfo)
		if interceptErr != nil && err == nil {
			err = interceptErr
		}
	}

	return resp, err
}

// doOnce performs a single HTTP exchange, including token acquisition.
func (c *Client) doOnce(ctx context.Context, req *Request, body []byte) (*Response, error) {
	fullURL := c.baseURL + req.Path
	if len(req.Query) > 0 {
		fullURL += "?" + req.Query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		reqBody = bytes.NewReader(body)
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, fullURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)

	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	if c.tokenManager != nil {
		token, err := c.tokenManager.GetToken(ctx)
		if err != nil {
			return nil, err
		}

		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": req.Method,
			"url":    fullURL,
		})
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &umbrella.NetworkError{Err: err}
	}

	defer func() { _ = httpResp.Body.Close() }()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"method": req.Method,
			"url":    fullURL,
			"status": httpResp.StatusCode,
		})
	}

	return &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       respBody,
	}, nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query})
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Body: body})
}

// Patch performs a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPatch, Path: path, Body: body})
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path})
}

// DeleteWithBody performs a DELETE request carrying a JSON body. The bulk
// destination removal endpoint takes the IDs to remove in the request body.
func (c *Client) DeleteWithBody(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path, Body: body})
}

func marshalBody(body interface{}) ([]byte, error) {
	if body == nil {
		return nil, nil
	}

	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request body: %w", err)
	}

	return data, nil
}
