package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/policyops/umbrella/internal/constants"
	"github.com/policyops/umbrella/pkg/umbrella"
)

// TokenManager handles token acquisition and refresh for the transport.
type TokenManager interface {
	// GetToken returns a valid access token, fetching one if necessary.
	GetToken(ctx context.Context) (string, error)
	// RefreshToken forces a new token to be fetched.
	RefreshToken(ctx context.Context) error
	// SetToken manually sets the current token.
	SetToken(token string, expiresAt time.Time)
}

// OAuth2Config configures the client-credentials token manager.
type OAuth2Config struct {
	// TokenURL is the full OAuth2 token endpoint.
	TokenURL string
	// ClientID is the Umbrella API key.
	ClientID string
	// ClientSecret is the Umbrella API secret.
	ClientSecret string
	// AccessToken optionally seeds the manager with an existing token.
	AccessToken string
}

// OAuth2TokenManager performs the OAuth2 client-credentials grant against the
// token endpoint and caches the resulting token.
type OAuth2TokenManager struct {
	config     *OAuth2Config
	store      *TokenStore
	httpClient *http.Client
}

// NewOAuth2TokenManager creates a token manager for the given config.
func NewOAuth2TokenManager(config *OAuth2Config) *OAuth2TokenManager {
	manager := &OAuth2TokenManager{
		config: config,
		store:  NewTokenStore(),
		httpClient: &http.Client{
			Timeout: constants.TokenHTTPTimeout,
		},
	}

	if config.AccessToken != "" {
		manager.store.Set(&Token{
			AccessToken: config.AccessToken,
			TokenType:   constants.DefaultTokenType,
		})
	}

	return manager
}

// GetToken returns the cached token if it is still valid, otherwise performs
// a credential exchange.
func (m *OAuth2TokenManager) GetToken(ctx context.Context) (string, error) {
	token := m.store.Get()
	if token.Valid() {
		return token.AccessToken, nil
	}

	token, err := m.fetchToken(ctx)
	if err != nil {
		return "", err
	}

	m.store.Set(token)

	return token.AccessToken, nil
}

// RefreshToken discards the current token and fetches a new one.
func (m *OAuth2TokenManager) RefreshToken(ctx context.Context) error {
	token, err := m.fetchToken(ctx)
	if err != nil {
		return err
	}

	m.store.Set(token)

	return nil
}

// SetToken manually sets the access token.
func (m *OAuth2TokenManager) SetToken(token string, expiresAt time.Time) {
	m.store.Set(&Token{
		AccessToken: token,
		TokenType:   constants.DefaultTokenType,
		ExpiresAt:   expiresAt,
	})
}

// fetchToken performs the client-credentials exchange. The credentials go in
// the Basic auth header, not the form body.
func (m *OAuth2TokenManager) fetchToken(ctx context.Context) (*Token, error) {
	if m.config.ClientID == "" || m.config.ClientSecret == "" {
		return nil, &umbrella.AuthError{Description: "no valid credentials available"}
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.config.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("creating token request: %w", err)
	}

	req.SetBasicAuth(m.config.ClientID, m.config.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return nil, &umbrella.AuthError{Description: "token endpoint unreachable", Err: err}
	}

	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading token response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		authErr := &umbrella.AuthError{StatusCode: resp.StatusCode}

		var oauthErr struct {
			ErrorCode   string `json:"error"`
			Description string `json:"error_description"`
		}

		if json.Unmarshal(body, &oauthErr) == nil {
			authErr.ErrorCode = oauthErr.ErrorCode
			authErr.Description = oauthErr.Description
		}

		if authErr.Description == "" {
			authErr.Description = strings.TrimSpace(string(body))
		}

		return nil, authErr
	}

	var token Token

	err = json.Unmarshal(body, &token)
	if err != nil {
		return nil, fmt.Errorf("parsing token response: %w", err)
	}

	if token.AccessToken == "" {
		return nil, &umbrella.AuthError{Description: "token response missing access_token"}
	}

	if token.ExpiresIn > 0 {
		token.ExpiresAt = time.Now().Add(time.Duration(token.ExpiresIn) * time.Second)
	}

	return &token, nil
}
