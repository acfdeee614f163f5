package client

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/Pranav-Yeola/unifiedllm/providers/ai"
)

// Option configures a [Client] at construction time. Options that validate
// input return an error so misconfiguration fails at [New], not at the first
// network call.
type Option func(*Client) error

// WithAPIKey sets an explicit API key for the client. An explicit key always
// wins over the provider's environment variable during credential resolution.
func WithAPIKey(apiKey string) Option {
	return func(c *Client) error {
		c.apiKey = apiKey
		return nil
	}
}

// WithBaseURL overrides the adapter's endpoint base. Use this when targeting
// a proxy or local testing endpoint.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) error {
		c.adapter = c.adapter.WithBaseURL(baseURL)
		return nil
	}
}

// WithHTTPClient replaces the default [http.Client] used for API calls.
// Useful for injecting custom timeouts, transport layers, or test doubles.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) error {
		if httpClient != nil {
			c.httpClient = httpClient
		}
		return nil
	}
}

// WithLogger attaches a zap logger for debug-level request/response traces.
// The default is a no-op logger; failures always surface as returned errors,
// never as log lines.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) error {
		if logger != nil {
			c.logger = logger
		}
		return nil
	}
}

// WithSystemPrompt sets the stored system prompt applied to every chat call.
func WithSystemPrompt(text string) Option {
	return func(c *Client) error {
		c.systemPrompt = text
		return nil
	}
}

// WithParams sets the stored parameter defaults, validated against the
// recognized key enumeration immediately.
func WithParams(params ai.Params) Option {
	return func(c *Client) error {
		if err := params.Validate(); err != nil {
			return err
		}
		c.params = params.Clone()
		return nil
	}
}
