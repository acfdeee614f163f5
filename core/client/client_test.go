package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pranav-Yeola/unifiedllm/providers/ai"
)

const (
	geminiSuccessBody = `{
		"candidates": [{"content": {"role": "model", "parts": [{"text": "gemini says hi"}]}, "finishReason": "STOP"}],
		"usageMetadata": {"promptTokenCount": 5, "candidatesTokenCount": 3, "totalTokenCount": 8},
		"responseId": "resp-gem-1"
	}`
	anthropicSuccessBody = `{
		"id": "msg_01",
		"type": "message",
		"role": "assistant",
		"content": [{"type": "text", "text": "claude says hi"}],
		"model": "claude-sonnet-4-20250514",
		"stop_reason": "end_turn",
		"usage": {"input_tokens": 7, "output_tokens": 4}
	}`
	openaiSuccessBody = `{
		"id": "chatcmpl-5",
		"object": "chat.completion",
		"model": "gpt-4o-mini",
		"choices": [{"index": 0, "message": {"role": "assistant", "content": "gpt says hi"}, "finish_reason": "stop"}],
		"usage": {"prompt_tokens": 6, "completion_tokens": 3, "total_tokens": 9}
	}`
)

// countingTransport counts round trips so tests can assert the network was
// never touched on pre-flight failures.
type countingTransport struct {
	calls int
	inner http.RoundTripper
}

func (t *countingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	t.calls++
	return t.inner.RoundTrip(req)
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name     string
		provider ai.ProviderID
		model    string
	}{
		{name: "unknown provider", provider: "mistral", model: "mistral-large"},
		{name: "empty model", provider: ai.ProviderGemini, model: ""},
		{name: "blank model", provider: ai.ProviderOpenAI, model: "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.provider, tt.model)

			var validation *ai.ValidationError
			require.ErrorAs(t, err, &validation)
		})
	}
}

func TestNew_RejectsUnknownParamKey(t *testing.T) {
	_, err := New(ai.ProviderOpenAI, "gpt-4o-mini",
		WithAPIKey("k"),
		WithParams(ai.Params{"bestOfN": 3}),
	)

	var validation *ai.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Contains(t, validation.Message, "bestOfN")
}

func TestChat_SuccessAcrossProviders(t *testing.T) {
	tests := []struct {
		name     string
		provider ai.ProviderID
		model    string
		path     string
		body     string
		wantText string
	}{
		{
			name:     "gemini",
			provider: ai.ProviderGemini,
			model:    "gemini-2.0-flash",
			path:     "/models/gemini-2.0-flash:generateContent",
			body:     geminiSuccessBody,
			wantText: "gemini says hi",
		},
		{
			name:     "anthropic",
			provider: ai.ProviderAnthropic,
			model:    "claude-sonnet-4-20250514",
			path:     "/messages",
			body:     anthropicSuccessBody,
			wantText: "claude says hi",
		},
		{
			name:     "openai",
			provider: ai.ProviderOpenAI,
			model:    "gpt-4o-mini",
			path:     "/chat/completions",
			body:     openaiSuccessBody,
			wantText: "gpt says hi",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, tt.path, r.URL.Path)
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			c, err := New(tt.provider, tt.model,
				WithAPIKey("test-key"),
				WithBaseURL(server.URL),
			)
			require.NoError(t, err)

			response, err := c.Chat(context.Background(), "hello")
			require.NoError(t, err)

			assert.Equal(t, tt.provider, response.Provider)
			assert.Equal(t, tt.wantText, response.Text)
			assert.NotEmpty(t, response.Model)
			assert.NotEmpty(t, response.RequestID)
			require.NotNil(t, response.Usage)
			assert.Positive(t, response.Usage.InputTokens)
			assert.Positive(t, response.Usage.OutputTokens)
			assert.Positive(t, response.Usage.TotalTokens)
		})
	}
}

func TestChat_ExplicitKeyBeatsEnvironment(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "env-key")

	var seenKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenKey = r.Header.Get("x-api-key")
		_, _ = w.Write([]byte(anthropicSuccessBody))
	}))
	defer server.Close()

	c, err := New(ai.ProviderAnthropic, "claude-sonnet-4-20250514",
		WithAPIKey("explicit-key"),
		WithBaseURL(server.URL),
	)
	require.NoError(t, err)

	_, err = c.Chat(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "explicit-key", seenKey)
}

func TestChat_MissingKeySkipsTransport(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	transport := &countingTransport{inner: http.DefaultTransport}
	c, err := New(ai.ProviderGemini, "gemini-2.0-flash",
		WithHTTPClient(&http.Client{Transport: transport}),
	)
	require.NoError(t, err)

	_, err = c.Chat(context.Background(), "hello")

	var missing *ai.MissingAPIKeyError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "GEMINI_API_KEY", missing.EnvVar)
	assert.Zero(t, transport.calls, "transport must not be touched without a credential")
}

func TestChat_HTTPErrorCarriesStatusAndVendorMessage(t *testing.T) {
	tests := []struct {
		name     string
		provider ai.ProviderID
		model    string
		body     string
	}{
		{
			name:     "gemini",
			provider: ai.ProviderGemini,
			model:    "gemini-2.0-flash",
			body:     `{"error": {"code": 429, "message": "Resource has been exhausted", "status": "RESOURCE_EXHAUSTED"}}`,
		},
		{
			name:     "anthropic",
			provider: ai.ProviderAnthropic,
			model:    "claude-sonnet-4-20250514",
			body:     `{"type": "error", "error": {"type": "rate_limit_error", "message": "Number of requests has exceeded your rate limit"}}`,
		},
		{
			name:     "openai",
			provider: ai.ProviderOpenAI,
			model:    "gpt-4o-mini",
			body:     `{"error": {"message": "Rate limit reached", "type": "rate_limit_error", "code": "rate_limit_exceeded"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			c, err := New(tt.provider, tt.model, WithAPIKey("k"), WithBaseURL(server.URL))
			require.NoError(t, err)

			_, err = c.Chat(context.Background(), "hello")

			var httpErr *ai.HTTPError
			require.ErrorAs(t, err, &httpErr)
			assert.Equal(t, http.StatusTooManyRequests, httpErr.StatusCode)
			assert.Equal(t, tt.provider, httpErr.Provider)
			assert.NotEmpty(t, httpErr.Message)
		})
	}
}

func TestChat_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	c, err := New(ai.ProviderOpenAI, "gpt-4o-mini", WithAPIKey("k"), WithBaseURL(server.URL))
	require.NoError(t, err)

	_, err = c.Chat(context.Background(), "hello")

	var httpErr *ai.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Zero(t, httpErr.StatusCode)
	assert.Error(t, httpErr.Unwrap())
}

func TestChat_MalformedSuccessBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"unexpected": "shape"}`))
	}))
	defer server.Close()

	c, err := New(ai.ProviderGemini, "gemini-2.0-flash", WithAPIKey("k"), WithBaseURL(server.URL))
	require.NoError(t, err)

	_, err = c.Chat(context.Background(), "hello")

	var parseErr *ai.ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestChatMessages_Validation(t *testing.T) {
	c, err := New(ai.ProviderOpenAI, "gpt-4o-mini", WithAPIKey("k"))
	require.NoError(t, err)

	t.Run("empty sequence", func(t *testing.T) {
		_, err := c.ChatMessages(context.Background(), nil)

		var validation *ai.ValidationError
		require.ErrorAs(t, err, &validation)
	})

	t.Run("invalid role", func(t *testing.T) {
		_, err := c.ChatMessages(context.Background(), []ai.Message{
			{Role: ai.RoleUser, Content: "hi"},
			{Role: "assistant", Content: "hello"},
		})

		var invalidRole *ai.InvalidRoleError
		require.ErrorAs(t, err, &invalidRole)
		assert.Equal(t, 1, invalidRole.Position)
		assert.Equal(t, "assistant", invalidRole.Role)
	})
}

func TestChatMessages_MultiTurn(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(openaiSuccessBody))
	}))
	defer server.Close()

	c, err := New(ai.ProviderOpenAI, "gpt-4o-mini", WithAPIKey("k"), WithBaseURL(server.URL))
	require.NoError(t, err)

	response, err := c.ChatMessages(context.Background(), []ai.Message{
		{Role: ai.RoleUser, Content: "What is 2+2?"},
		{Role: ai.RoleModel, Content: "4."},
		{Role: ai.RoleUser, Content: "And doubled?"},
	})
	require.NoError(t, err)
	assert.Equal(t, "gpt says hi", response.Text)
}

func TestWithSystemPrompt_Snapshot(t *testing.T) {
	base, err := New(ai.ProviderOpenAI, "gpt-4o-mini", WithAPIKey("k"))
	require.NoError(t, err)

	derived := base.WithSystemPrompt("You are terse.")

	assert.NotSame(t, base, derived)
	assert.Empty(t, base.systemPrompt)
	assert.Equal(t, "You are terse.", derived.systemPrompt)
	assert.Equal(t, base.Provider(), derived.Provider())
	assert.Equal(t, base.Model(), derived.Model())
}

func TestWithParams_Snapshot(t *testing.T) {
	base, err := New(ai.ProviderAnthropic, "claude-sonnet-4-20250514", WithAPIKey("k"))
	require.NoError(t, err)

	params := ai.Params{ai.ParamTemperature: 0.2}
	derived, err := base.WithParams(params)
	require.NoError(t, err)

	// Mutating the caller's map after the fact must not leak into the client.
	params[ai.ParamTemperature] = 0.9

	assert.Empty(t, base.params)
	got, ok := derived.params.Float(ai.ParamTemperature)
	require.True(t, ok)
	assert.Equal(t, 0.2, got)

	_, err = base.WithParams(ai.Params{"nope": 1})
	var validation *ai.ValidationError
	require.ErrorAs(t, err, &validation)
}
