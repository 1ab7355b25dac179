package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	umbrellahttp "github.com/policyops/umbrella/internal/http"
	"github.com/policyops/umbrella/pkg/umbrella"
)

// MockTokenManager for testing.
type MockTokenManager struct {
	token     string
	err       error
	refreshes int32
	// refreshedToken replaces token after a refresh, when set.
	refreshedToken string
}

func (m *MockTokenManager) GetToken(ctx context.Context) (string, error) {
	return m.token, m.err
}

func (m *MockTokenManager) RefreshToken(ctx context.Context) error {
	atomic.AddInt32(&m.refreshes, 1)

	if m.refreshedToken != "" {
		m.token = m.refreshedToken
	}

	return nil
}

func (m *MockTokenManager) SetToken(token string, expiresAt time.Time) {
	m.token = token
}

// MockLogger for testing.
type MockLogger struct {
	logs []map[string]interface{}
}

func (l *MockLogger) Debug(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "debug", "msg": msg, "fields": fields})
}

func (l *MockLogger) Info(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "info", "msg": msg, "fields": fields})
}

func (l *MockLogger) Warn(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "warn", "msg": msg, "fields": fields})
}

func (l *MockLogger) Error(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "error", "msg": msg, "fields": fields})
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_Do(t *testing.T) {
	t.Parallel()

	t.Run("successful request", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/destinationlists", request.URL.Path)
			assert.Equal(t, "GET", request.Method)
			assert.Equal(t, "Bearer test-token", request.Header.Get("Authorization"))
			assert.Equal(t, "application/json", request.Header.Get("Accept"))

			_ = json.NewEncoder(writer).Encode(map[string]interface{}{
				"data": []map[string]interface{}{{"id": 1, "name": "Block List"}},
			})
		}))
		defer server.Close()

		tokenManager := &MockTokenManager{token: "test-token"}
		client := umbrellahttp.NewClient(server.URL, tokenManager)

		req := &umbrellahttp.Request{
			Method: "GET",
			Path:   "/destinationlists",
		}

		resp, err := client.Do(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var result umbrella.ListResponse[umbrella.DestinationList]

		err = json.Unmarshal(resp.Body, &result)
		require.NoError(t, err)
		require.Len(t, result.Data, 1)
		assert.Equal(t, "Block List", result.Data[0].Name)
	})

	t.Run("request with query parameters", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/destinationlists", request.URL.Path)
			assert.Equal(t, "limit=100&page=2", request.URL.RawQuery)
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := umbrellahttp.NewClient(server.URL, nil)

		req := &umbrellahttp.Request{
			Method: "GET",
			Path:   "/destinationlists",
			Query:  url.Values{"page": []string{"2"}, "limit": []string{"100"}},
		}

		resp, err := client.Do(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("request with body", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "POST", request.Method)
			assert.Equal(t, "application/json", request.Header.Get("Content-Type"))

			var body map[string]interface{}

			_ = json.NewDecoder(request.Body).Decode(&body)
			assert.Equal(t, "Test List", body["name"])

			writer.WriteHeader(http.StatusOK)
			_ = json.NewEncoder(writer).Encode(map[string]interface{}{"data": map[string]interface{}{"id": 1}})
		}))
		defer server.Close()

		client := umbrellahttp.NewClient(server.URL, nil)

		req := &umbrellahttp.Request{
			Method: "POST",
			Path:   "/destinationlists",
			Body:   map[string]string{"name": "Test List"},
		}

		resp, err := client.Do(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("error response", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(writer).Encode(map[string]interface{}{
				"status": map[string]interface{}{"code": 404, "text": "Not Found"},
			})
		}))
		defer server.Close()

		client := umbrellahttp.NewClient(server.URL, nil)

		req := &umbrellahttp.Request{
			Method: "GET",
			Path:   "/destinationlists/99999",
		}

		resp, err := client.Do(context.Background(), req)
		require.Error(t, err)
		assert.Equal(t, 404, resp.StatusCode)

		var httpErr *umbrella.HTTPError

		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, 404, httpErr.StatusCode)
		assert.True(t, umbrella.IsNotFound(err))
	})

	t.Run("custom headers", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "custom-value", request.Header.Get("X-Custom-Header"))
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := umbrellahttp.NewClient(server.URL, nil)

		req := &umbrellahttp.Request{
			Method: "GET",
			Path:   "/destinationlists",
			Headers: map[string]string{
				"X-Custom-Header": "custom-value",
			},
		}

		resp, err := client.Do(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("with debug logging", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusOK)
			_ = json.NewEncoder(writer).Encode(map[string]string{"result": "ok"})
		}))
		defer server.Close()

		logger := &MockLogger{}
		client := umbrellahttp.NewClient(server.URL, nil, umbrellahttp.WithLogger(logger), umbrellahttp.WithDebug(true))

		req := &umbrellahttp.Request{
			Method: "GET",
			Path:   "/destinationlists",
		}

		_, err := client.Do(context.Background(), req)
		require.NoError(t, err)

		// Should have logged request and response
		assert.Len(t, logger.logs, 2)
		assert.Equal(t, "HTTP Request", logger.logs[0]["msg"])
		assert.Equal(t, "HTTP Response", logger.logs[1]["msg"])
	})
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_TokenRefresh(t *testing.T) {
	t.Parallel()

	t.Run("refreshes once on 401 and replays the request", func(t *testing.T) {
		t.Parallel()

		var requests int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			atomic.AddInt32(&requests, 1)

			if request.Header.Get("Authorization") != "Bearer fresh-token" {
				writer.WriteHeader(http.StatusUnauthorized)

				return
			}

			_ = json.NewEncoder(writer).Encode(map[string]interface{}{"data": map[string]interface{}{"id": 1}})
		}))
		defer server.Close()

		tokenManager := &MockTokenManager{token: "stale-token", refreshedToken: "fresh-token"}
		client := umbrellahttp.NewClient(server.URL, tokenManager)

		resp, err := client.Get(context.Background(), "/destinationlists/1", nil)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		assert.Equal(t, int32(2), atomic.LoadInt32(&requests))
		assert.Equal(t, int32(1), atomic.LoadInt32(&tokenManager.refreshes))
	})

	t.Run("second 401 fails without a third attempt", func(t *testing.T) {
		t.Parallel()

		var requests int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			atomic.AddInt32(&requests, 1)
			writer.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		tokenManager := &MockTokenManager{token: "rejected-token", refreshedToken: "still-rejected"}
		client := umbrellahttp.NewClient(server.URL, tokenManager)

		_, err := client.Get(context.Background(), "/destinationlists/1", nil)
		require.Error(t, err)

		var authErr *umbrella.AuthError

		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, http.StatusUnauthorized, authErr.StatusCode)
		assert.Equal(t, int32(2), atomic.LoadInt32(&requests))
		assert.Equal(t, int32(1), atomic.LoadInt32(&tokenManager.refreshes))
	})

	t.Run("401 without token manager is a plain HTTP error", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		client := umbrellahttp.NewClient(server.URL, nil)

		_, err := client.Get(context.Background(), "/destinationlists", nil)
		require.Error(t, err)

		var httpErr *umbrella.HTTPError

		require.ErrorAs(t, err, &httpErr)
		assert.True(t, umbrella.IsUnauthorized(err))
	})
}

func TestClient_Methods(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		method string
		fn     func(*umbrellahttp.Client, context.Context) (*umbrellahttp.Response, error)
	}{
		{
			name:   "GET",
			method: "GET",
			fn: func(c *umbrellahttp.Client, ctx context.Context) (*umbrellahttp.Response, error) {
				return c.Get(ctx, "/test", nil)
			},
		},
		{
			name:   "POST",
			method: "POST",
			fn: func(c *umbrellahttp.Client, ctx context.Context) (*umbrellahttp.Response, error) {
				return c.Post(ctx, "/test", map[string]string{"key": "value"})
			},
		},
		{
			name:   "PATCH",
			method: "PATCH",
			fn: func(c *umbrellahttp.Client, ctx context.Context) (*umbrellahttp.Response, error) {
				return c.Patch(ctx, "/test", map[string]string{"key": "value"})
			},
		},
		{
			name:   "DELETE",
			method: "DELETE",
			fn: func(c *umbrellahttp.Client, ctx context.Context) (*umbrellahttp.Response, error) {
				return c.Delete(ctx, "/test")
			},
		},
		{
			name:   "DELETE with body",
			method: "DELETE",
			fn: func(c *umbrellahttp.Client, ctx context.Context) (*umbrellahttp.Response, error) {
				return c.DeleteWithBody(ctx, "/test", []int{1, 2, 3})
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				assert.Equal(t, tt.method, request.Method)
				writer.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			client := umbrellahttp.NewClient(server.URL, nil)

			resp, err := tt.fn(client, context.Background())
			require.NoError(t, err)
			assert.Equal(t, 200, resp.StatusCode)
		})
	}
}

func TestClient_NetworkError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()

	client := umbrellahttp.NewClient(server.URL, nil)

	_, err := client.Get(context.Background(), "/destinationlists", nil)
	require.Error(t, err)

	var netErr *umbrella.NetworkError

	require.ErrorAs(t, err, &netErr)
	assert.True(t, umbrella.IsNetworkError(err))
}

func TestClient_Interceptors(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	chain := umbrella.NewInterceptorChain()

	var sawRequest, sawResponse bool

	chain.AddRequestInterceptor(func(ctx context.Context, req *umbrella.RequestInfo) error {
		sawRequest = true

		assert.Equal(t, "GET", req.Method)
		assert.Equal(t, "/destinationlists", req.Path)

		return nil
	})
	chain.AddResponseInterceptor(func(ctx context.Context, req *umbrella.RequestInfo, resp *umbrella.ResponseInfo) error {
		sawResponse = true

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		return nil
	})

	client := umbrellahttp.NewClient(server.URL, nil, umbrellahttp.WithInterceptors(chain))

	_, err := client.Get(context.Background(), "/destinationlists", nil)
	require.NoError(t, err)
	assert.True(t, sawRequest)
	assert.True(t, sawResponse)
}

func TestClient_RetryConfig(t *testing.T) {
	t.Parallel()

	var requests int32

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if atomic.AddInt32(&requests, 1) == 1 {
			writer.WriteHeader(http.StatusServiceUnavailable)

			return
		}

		writer.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := umbrellahttp.NewClient(server.URL, nil,
		umbrellahttp.WithRetryConfig(2, 10*time.Millisecond, 50*time.Millisecond))

	resp, err := client.Get(context.Background(), "/test", nil)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, int32(2), atomic.LoadInt32(&requests))
}
