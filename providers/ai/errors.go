package ai

import "fmt"

// The error taxonomy is a closed set of sibling kinds so callers can match
// narrowly with errors.As or treat any of them as an opaque failure. Every
// value is built once, is immutable, and carries enough context (provider,
// HTTP status where applicable, underlying message) to be actionable without
// re-querying the vendor. Nothing in this package retries or swallows errors.

// MissingAPIKeyError reports that no credential could be resolved for a
// provider: no explicit key was configured and the provider's environment
// variable is unset. It is raised before any transport call is attempted.
type MissingAPIKeyError struct {
	Provider ProviderID
	EnvVar   string
}

func (e *MissingAPIKeyError) Error() string {
	return fmt.Sprintf("missing API key for provider %q: set %s or pass the key explicitly", e.Provider, e.EnvVar)
}

// ValidationError reports a local configuration or argument failure: an
// unsupported parameter key, a mistyped parameter value, an unknown provider,
// or malformed call arguments. It is always raised before the network is
// touched.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// InvalidRoleError reports a conversation turn whose role is outside the
// closed {user, model} vocabulary, identifying the offending position.
type InvalidRoleError struct {
	Position int
	Role     string
}

func (e *InvalidRoleError) Error() string {
	return fmt.Sprintf("messages[%d]: unsupported role %q (use %q or %q)", e.Position, e.Role, RoleUser, RoleModel)
}

// HTTPError reports a transport failure or a non-2xx vendor status.
// StatusCode is 0 and Err carries the underlying cause when the transport
// call itself failed (connection refused, timeout, DNS); otherwise StatusCode
// holds the vendor status and Message the vendor's error message when its
// error body was parseable, or the raw body text when it was not.
type HTTPError struct {
	Provider   ProviderID
	StatusCode int
	Message    string
	Body       []byte
	Err        error
}

func (e *HTTPError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s: transport failure: %v", e.Provider, e.Err)
	}
	return fmt.Sprintf("%s: HTTP %d: %s", e.Provider, e.StatusCode, e.Message)
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// ParseError reports a 2xx response body that did not match the vendor's
// expected envelope shape (missing keys, wrong types). It is a local,
// recoverable failure surfaced to the caller, never a crash.
type ParseError struct {
	Provider ProviderID
	Message  string
	Body     []byte
	Err      error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: unexpected response shape: %s: %v", e.Provider, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: unexpected response shape: %s", e.Provider, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// APIError reports an application-level failure the vendor signaled despite a
// success status (an "error" object inside a 2xx envelope), or any vendor
// error not cleanly classified as HTTP or parse.
type APIError struct {
	Provider ProviderID
	ErrType  string
	Code     string
	Message  string
	Body     []byte
}

func (e *APIError) Error() string {
	if e.ErrType != "" {
		return fmt.Sprintf("%s: API error (%s): %s", e.Provider, e.ErrType, e.Message)
	}
	return fmt.Sprintf("%s: API error: %s", e.Provider, e.Message)
}
