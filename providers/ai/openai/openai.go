package openai

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/Pranav-Yeola/unifiedllm/providers/ai"
)

const (
	defaultBaseURL          = "https://api.openai.com/v1"
	chatCompletionsEndpoint = "/chat/completions"
)

// OpenAIAdapter implements [ai.Adapter] for OpenAI's Chat Completions API.
type OpenAIAdapter struct {
	baseURL string
}

// New returns an [OpenAIAdapter] targeting OpenAI's public endpoint, or the
// base URL from OPENAI_API_BASE_URL when that is set.
func New() *OpenAIAdapter {
	baseURL := os.Getenv("OPENAI_API_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &OpenAIAdapter{baseURL: baseURL}
}

// ID implements [ai.Adapter].
func (a *OpenAIAdapter) ID() ai.ProviderID {
	return ai.ProviderOpenAI
}

// WithBaseURL overrides the API base URL and returns the adapter so calls can
// be chained. Use this when targeting a proxy or local testing endpoint.
func (a *OpenAIAdapter) WithBaseURL(baseURL string) ai.Adapter {
	a.baseURL = baseURL
	return a
}

// BuildRequest implements [ai.Adapter]. OpenAI authenticates with a standard
// Bearer token.
func (a *OpenAIAdapter) BuildRequest(conversation ai.Conversation, credential ai.Credential) (*ai.Request, error) {
	if conversation.Model == "" {
		return nil, &ai.ValidationError{Message: "openai: model must be non-empty"}
	}

	body, err := json.Marshal(requestToOpenAI(conversation))
	if err != nil {
		return nil, fmt.Errorf("openai: error marshaling request body: %w", err)
	}

	header := http.Header{}
	header.Set("Content-Type", "application/json")
	header.Set("Authorization", "Bearer "+credential.APIKey)

	return &ai.Request{
		URL:    a.baseURL + chatCompletionsEndpoint,
		Header: header,
		Body:   body,
	}, nil
}

// ParseResponse implements [ai.Adapter]. It is only called on success
// statuses; non-2xx outcomes go through [ai.Classify] instead.
func (a *OpenAIAdapter) ParseResponse(status int, header http.Header, body []byte) (*ai.ChatResponse, error) {
	var resp chatCompletionsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &ai.ParseError{Provider: ai.ProviderOpenAI, Message: "body is not valid JSON", Body: body, Err: err}
	}

	return openaiToUnified(resp, header, body)
}
