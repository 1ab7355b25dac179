package umbrella

import (
	"errors"
	"fmt"
	"net/http"
)

// AuthError represents a failed credential exchange — rejected credentials,
// an unreachable token endpoint — or a request that kept failing with an
// expired-token signal after a refresh.
type AuthError struct {
	StatusCode  int
	ErrorCode   string
	Description string
	Err         error
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	switch {
	case e.ErrorCode != "" && e.Description != "":
		return fmt.Sprintf("authentication failed: %s: %s", e.ErrorCode, e.Description)
	case e.Description != "" && e.Err != nil:
		return fmt.Sprintf("authentication failed: %s: %v", e.Description, e.Err)
	case e.Description != "":
		return "authentication failed: " + e.Description
	case e.StatusCode != 0:
		return fmt.Sprintf("authentication failed with status %d", e.StatusCode)
	case e.Err != nil:
		return "authentication failed: " + e.Err.Error()
	default:
		return "authentication failed"
	}
}

// Unwrap returns the underlying cause, if any.
func (e *AuthError) Unwrap() error {
	return e.Err
}

// HTTPError represents a non-2xx API response that is not an auth-expiry
// signal. The body is kept verbatim for diagnosis.
type HTTPError struct {
	StatusCode int
	Body       []byte
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if len(e.Body) == 0 {
		return fmt.Sprintf("unexpected status %d", e.StatusCode)
	}

	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Body)
}

// NetworkError represents a transport-level failure (timeout, connection
// refused, DNS) before any HTTP status was received.
type NetworkError struct {
	Err error
}

// Error implements the error interface.
func (e *NetworkError) Error() string {
	return "request failed: " + e.Err.Error()
}

// Unwrap returns the underlying transport error.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ChunkError reports a failed chunked submission. Chunks before Completed were
// already applied server-side and are not rolled back.
type ChunkError struct {
	Completed int
	Total     int
	Err       error
}

// Error implements the error interface.
func (e *ChunkError) Error() string {
	return fmt.Sprintf("submitted %d of %d chunks: %v", e.Completed, e.Total, e.Err)
}

// Unwrap returns the underlying request error.
func (e *ChunkError) Unwrap() error {
	return e.Err
}

// Static errors that can be wrapped with context.
var (
	ErrConfigRequired      = errors.New("config is required")
	ErrBaseURLRequired     = errors.New("base URL is required")
	ErrCredentialsRequired = errors.New("API key and secret are required")
	ErrNoMoreItems         = errors.New("no more items")
)

// IsNotFound checks if the error is a not found response.
func IsNotFound(err error) bool {
	httpErr := &HTTPError{}
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == http.StatusNotFound
	}

	return false
}

// IsUnauthorized checks if the error is an authentication failure.
func IsUnauthorized(err error) bool {
	authErr := &AuthError{}
	if errors.As(err, &authErr) {
		return true
	}

	httpErr := &HTTPError{}
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == http.StatusUnauthorized
	}

	return false
}

// IsNetworkError checks if the error is a transport-level failure.
func IsNetworkError(err error) bool {
	netErr := &NetworkError{}

	return errors.As(err, &netErr)
}

// IsConflict checks if the error is a conflicting-resource response.
func IsConflict(err error) bool {
	httpErr := &HTTPError{}
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == http.StatusConflict
	}

	return false
}
