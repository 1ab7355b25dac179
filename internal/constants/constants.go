package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for API requests.
	DefaultHTTPTimeout = 5 * time.Second

	// TokenHTTPTimeout is the timeout for token endpoint requests.
	TokenHTTPTimeout = 10 * time.Second
)

// Retry limits.
const (
	// DefaultRetryWaitMin is the minimum wait time between transport retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait time between transport retries.
	DefaultRetryWaitMax = 10 * time.Second

	// MaxAuthRetries bounds how many times a request is replayed after a
	// token refresh. The API signals expiry with 401; one refresh is enough
	// and anything beyond it means the credentials themselves are bad.
	MaxAuthRetries = 1
)

// Pagination and batching limits.
const (
	// PageSize is the fixed page size for paginated listing endpoints.
	PageSize = 100

	// BatchSize is the fixed chunk size for bulk destination endpoints.
	BatchSize = 100
)

// Token handling.
const (
	// TokenExpirationBuffer is the buffer time before token expiration.
	TokenExpirationBuffer = 30 * time.Second

	// DefaultTokenType is the token type reported for manually set tokens.
	DefaultTokenType = "bearer"
)

// Umbrella API endpoints.
const (
	// DefaultBaseURL is the base URL for the Umbrella Policies v2 API.
	DefaultBaseURL = "https://api.umbrella.com/policies/v2"

	// DefaultTokenURL is the OAuth2 token endpoint for the Umbrella API.
	DefaultTokenURL = "https://api.umbrella.com/auth/v2/token"
)

// Access levels for destination lists.
const (
	// AccessBlock marks a destination list as a block list.
	AccessBlock = "block"

	// AccessAllow marks a destination list as an allow list.
	AccessAllow = "allow"
)

// Format constants.
const (
	// FormatJSON for JSON output format.
	FormatJSON = "json"

	// FormatYAML for YAML output format.
	FormatYAML = "yaml"

	// FormatTable for tabular output format.
	FormatTable = "table"

	// JSONIndentSize is the number of spaces for JSON indentation.
	JSONIndentSize = 2
)
