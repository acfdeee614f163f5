package gemini

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/Pranav-Yeola/unifiedllm/providers/ai"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// GeminiAdapter implements [ai.Adapter] for Google's Gemini generateContent API.
type GeminiAdapter struct {
	baseURL string
}

// New returns a [GeminiAdapter] targeting Google's public endpoint, or the
// base URL from GEMINI_API_BASE_URL when that is set.
func New() *GeminiAdapter {
	baseURL := os.Getenv("GEMINI_API_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &GeminiAdapter{baseURL: baseURL}
}

// ID implements [ai.Adapter].
func (a *GeminiAdapter) ID() ai.ProviderID {
	return ai.ProviderGemini
}

// WithBaseURL overrides the API base URL and returns the adapter so calls can
// be chained. Use this when targeting a proxy or local testing endpoint.
func (a *GeminiAdapter) WithBaseURL(baseURL string) ai.Adapter {
	a.baseURL = baseURL
	return a
}

// BuildRequest implements [ai.Adapter]. Gemini embeds the model in the URL
// path and authenticates with the x-goog-api-key header rather than a Bearer
// token.
func (a *GeminiAdapter) BuildRequest(conversation ai.Conversation, credential ai.Credential) (*ai.Request, error) {
	if conversation.Model == "" {
		return nil, &ai.ValidationError{Message: "gemini: model must be non-empty"}
	}

	body, err := json.Marshal(requestToGemini(conversation))
	if err != nil {
		return nil, fmt.Errorf("gemini: error marshaling request body: %w", err)
	}

	header := http.Header{}
	header.Set("Content-Type", "application/json")
	header.Set("x-goog-api-key", credential.APIKey)

	return &ai.Request{
		URL:    fmt.Sprintf("%s/models/%s:generateContent", a.baseURL, conversation.Model),
		Header: header,
		Body:   body,
	}, nil
}

// ParseResponse implements [ai.Adapter]. It is only called on success
// statuses; non-2xx outcomes go through [ai.Classify] instead.
func (a *GeminiAdapter) ParseResponse(status int, header http.Header, body []byte) (*ai.ChatResponse, error) {
	var resp generateContentResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &ai.ParseError{Provider: ai.ProviderGemini, Message: "body is not valid JSON", Body: body, Err: err}
	}

	return geminiToUnified(resp, body)
}
