package anthropic

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/Pranav-Yeola/unifiedllm/providers/ai"
)

const (
	// defaultBaseURL is the canonical base URL for Anthropic's Messages API.
	defaultBaseURL = "https://api.anthropic.com/v1"

	// messagesEndpoint is the path for the Messages API endpoint.
	messagesEndpoint = "/messages"

	// anthropicVersion is the required anthropic-version header value.
	// Anthropic uses this to version-lock response formats independently of the URL.
	anthropicVersion = "2023-06-01"

	// defaultMaxTokens is used when the caller set no maxTokens parameter;
	// Anthropic rejects requests without max_tokens.
	defaultMaxTokens = 1024
)

// AnthropicAdapter implements [ai.Adapter] for Anthropic's Messages API.
type AnthropicAdapter struct {
	baseURL string
}

// New returns an [AnthropicAdapter] targeting Anthropic's public endpoint, or
// the base URL from ANTHROPIC_API_BASE_URL when that is set.
func New() *AnthropicAdapter {
	baseURL := os.Getenv("ANTHROPIC_API_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &AnthropicAdapter{baseURL: baseURL}
}

// ID implements [ai.Adapter].
func (a *AnthropicAdapter) ID() ai.ProviderID {
	return ai.ProviderAnthropic
}

// WithBaseURL overrides the API base URL and returns the adapter so calls can
// be chained. Use this when targeting a proxy or local testing endpoint.
func (a *AnthropicAdapter) WithBaseURL(baseURL string) ai.Adapter {
	a.baseURL = baseURL
	return a
}

// BuildRequest implements [ai.Adapter]. Anthropic authenticates with the
// x-api-key header (not a Bearer token) and pins its wire format with the
// anthropic-version header.
func (a *AnthropicAdapter) BuildRequest(conversation ai.Conversation, credential ai.Credential) (*ai.Request, error) {
	if conversation.Model == "" {
		return nil, &ai.ValidationError{Message: "anthropic: model must be non-empty"}
	}

	body, err := json.Marshal(requestToAnthropic(conversation))
	if err != nil {
		return nil, fmt.Errorf("anthropic: error marshaling request body: %w", err)
	}

	header := http.Header{}
	header.Set("Content-Type", "application/json")
	header.Set("x-api-key", credential.APIKey)
	header.Set("anthropic-version", anthropicVersion)

	return &ai.Request{
		URL:    a.baseURL + messagesEndpoint,
		Header: header,
		Body:   body,
	}, nil
}

// ParseResponse implements [ai.Adapter]. It is only called on success
// statuses; non-2xx outcomes go through [ai.Classify] instead.
func (a *AnthropicAdapter) ParseResponse(status int, header http.Header, body []byte) (*ai.ChatResponse, error) {
	var resp messagesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &ai.ParseError{Provider: ai.ProviderAnthropic, Message: "body is not valid JSON", Body: body, Err: err}
	}

	return anthropicToUnified(resp, header, body)
}
