package auth_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/policyops/umbrella/internal/auth"
	"github.com/policyops/umbrella/pkg/umbrella"
)

func TestOAuth2TokenManager_GetToken(t *testing.T) {
	t.Parallel()

	t.Run("fetches token with client credentials", func(t *testing.T) {
		t.Parallel()

		var requests int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			atomic.AddInt32(&requests, 1)

			assert.Equal(t, "POST", request.Method)
			assert.Equal(t, "application/x-www-form-urlencoded", request.Header.Get("Content-Type"))

			username, password, ok := request.BasicAuth()
			require.True(t, ok)
			assert.Equal(t, "test-key", username)
			assert.Equal(t, "test-secret", password)

			require.NoError(t, request.ParseForm())
			assert.Equal(t, "client_credentials", request.PostForm.Get("grant_type"))

			_ = json.NewEncoder(writer).Encode(map[string]interface{}{
				"access_token": "new-token",
				"token_type":   "bearer",
				"expires_in":   3600,
			})
		}))
		defer server.Close()

		manager := auth.NewOAuth2TokenManager(&auth.OAuth2Config{
			TokenURL:     server.URL,
			ClientID:     "test-key",
			ClientSecret: "test-secret",
		})

		token, err := manager.GetToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "new-token", token)

		// Second call uses the cached token.
		token, err = manager.GetToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "new-token", token)
		assert.Equal(t, int32(1), atomic.LoadInt32(&requests))
	})

	t.Run("returns auth error on rejected credentials", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(writer).Encode(map[string]string{
				"error":             "invalid_client",
				"error_description": "Client authentication failed",
			})
		}))
		defer server.Close()

		manager := auth.NewOAuth2TokenManager(&auth.OAuth2Config{
			TokenURL:     server.URL,
			ClientID:     "bad-key",
			ClientSecret: "bad-secret",
		})

		_, err := manager.GetToken(context.Background())
		require.Error(t, err)

		var authErr *umbrella.AuthError

		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, http.StatusUnauthorized, authErr.StatusCode)
		assert.Equal(t, "invalid_client", authErr.ErrorCode)
		assert.Equal(t, "Client authentication failed", authErr.Description)
	})

	t.Run("returns auth error when token response has no token", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			_ = json.NewEncoder(writer).Encode(map[string]string{"token_type": "bearer"})
		}))
		defer server.Close()

		manager := auth.NewOAuth2TokenManager(&auth.OAuth2Config{
			TokenURL:     server.URL,
			ClientID:     "test-key",
			ClientSecret: "test-secret",
		})

		_, err := manager.GetToken(context.Background())

		var authErr *umbrella.AuthError

		require.ErrorAs(t, err, &authErr)
	})

	t.Run("unreachable token endpoint is an auth error", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.NotFoundHandler())
		server.Close()

		manager := auth.NewOAuth2TokenManager(&auth.OAuth2Config{
			TokenURL:     server.URL,
			ClientID:     "test-key",
			ClientSecret: "test-secret",
		})

		_, err := manager.GetToken(context.Background())
		require.Error(t, err)

		var authErr *umbrella.AuthError

		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, "token endpoint unreachable", authErr.Description)
		// The transport cause stays reachable through the chain.
		require.Error(t, authErr.Unwrap())
	})

	t.Run("uses seeded access token without a request", func(t *testing.T) {
		t.Parallel()

		manager := auth.NewOAuth2TokenManager(&auth.OAuth2Config{
			AccessToken: "static-token",
		})

		token, err := manager.GetToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "static-token", token)
	})
}

func TestOAuth2TokenManager_RefreshToken(t *testing.T) {
	t.Parallel()

	t.Run("replaces cached token", func(t *testing.T) {
		t.Parallel()

		var requests int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			accessToken := "first-token"
			if atomic.AddInt32(&requests, 1) > 1 {
				accessToken = "second-token"
			}

			_ = json.NewEncoder(writer).Encode(map[string]interface{}{
				"access_token": accessToken,
				"token_type":   "bearer",
				"expires_in":   3600,
			})
		}))
		defer server.Close()

		manager := auth.NewOAuth2TokenManager(&auth.OAuth2Config{
			TokenURL:     server.URL,
			ClientID:     "test-key",
			ClientSecret: "test-secret",
		})

		token, err := manager.GetToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "first-token", token)

		require.NoError(t, manager.RefreshToken(context.Background()))

		token, err = manager.GetToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "second-token", token)
	})

	t.Run("fails without credentials", func(t *testing.T) {
		t.Parallel()

		manager := auth.NewOAuth2TokenManager(&auth.OAuth2Config{
			AccessToken: "static-token",
		})

		err := manager.RefreshToken(context.Background())
		require.Error(t, err)

		var authErr *umbrella.AuthError

		assert.True(t, errors.As(err, &authErr))
	})
}

func TestOAuth2TokenManager_SetToken(t *testing.T) {
	t.Parallel()

	manager := auth.NewOAuth2TokenManager(&auth.OAuth2Config{})
	manager.SetToken("manual-token", time.Now().Add(1*time.Hour))

	token, err := manager.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "manual-token", token)
}
