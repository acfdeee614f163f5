package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/Pranav-Yeola/unifiedllm/internal/utils"
	"github.com/Pranav-Yeola/unifiedllm/providers/ai"
	"github.com/Pranav-Yeola/unifiedllm/providers/ai/anthropic"
	"github.com/Pranav-Yeola/unifiedllm/providers/ai/gemini"
	"github.com/Pranav-Yeola/unifiedllm/providers/ai/openai"
	"github.com/Pranav-Yeola/unifiedllm/providers/credentials"
)

// Client is the provider-agnostic chat façade. It holds the per-instance
// configuration (provider, model, optional explicit key, stored system prompt
// and parameter defaults) and orchestrates one chat call end to end:
// credential resolution, request building, the transport call, and response
// parsing or error classification.
//
// A Client value is safe for concurrent Chat calls; reconfiguration goes
// through the snapshot-returning [Client.WithSystemPrompt] and
// [Client.WithParams] rather than in-place mutation.
type Client struct {
	provider     ai.ProviderID
	model        string
	adapter      ai.Adapter
	apiKey       string
	systemPrompt string
	params       ai.Params
	httpClient   *http.Client
	logger       *zap.Logger
}

// New returns a Client bound to one provider and model. The adapter variant
// is selected here, once; the client never branches on provider identity
// again. An unknown provider or empty model fails with an
// [ai.ValidationError] immediately.
func New(provider ai.ProviderID, model string, opts ...Option) (*Client, error) {
	model = strings.TrimSpace(model)
	if model == "" {
		return nil, &ai.ValidationError{Message: "model must be a non-empty string"}
	}

	var adapter ai.Adapter
	switch provider {
	case ai.ProviderGemini:
		adapter = gemini.New()
	case ai.ProviderAnthropic:
		adapter = anthropic.New()
	case ai.ProviderOpenAI:
		adapter = openai.New()
	default:
		return nil, &ai.ValidationError{Message: fmt.Sprintf("provider %q is not supported; supported: gemini, anthropic, openai", provider)}
	}

	c := &Client{
		provider:   provider,
		model:      model,
		adapter:    adapter,
		httpClient: &http.Client{},
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// WithSystemPrompt returns a snapshot of the client with the stored system
// prompt replaced. The receiver is left untouched, so calls in flight on it
// keep reading a consistent configuration.
func (c *Client) WithSystemPrompt(text string) *Client {
	out := *c
	out.systemPrompt = text
	return &out
}

// WithParams returns a snapshot of the client with the stored parameter
// defaults replaced. The set is validated against the recognized key
// enumeration here, not deferred to the network call.
func (c *Client) WithParams(params ai.Params) (*Client, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	out := *c
	out.params = params.Clone()
	return &out, nil
}

// Provider returns the provider this client was bound to at construction.
func (c *Client) Provider() ai.ProviderID {
	return c.provider
}

// Model returns the model this client targets.
func (c *Client) Model() string {
	return c.model
}

// Chat sends a single-prompt chat request: the prompt becomes one user turn,
// combined with the stored system prompt and parameter defaults.
func (c *Client) Chat(ctx context.Context, prompt string) (*ai.ChatResponse, error) {
	return c.send(ctx, ai.FromPrompt(prompt))
}

// ChatMessages sends a multi-turn chat request from an explicit ordered
// sequence of {role, content} turns. Roles are validated against the closed
// {user, model} vocabulary; an empty sequence is a validation failure.
func (c *Client) ChatMessages(ctx context.Context, messages []ai.Message) (*ai.ChatResponse, error) {
	conversation, err := ai.FromMessages(messages)
	if err != nil {
		return nil, err
	}
	return c.send(ctx, conversation)
}

// send runs one chat invocation: merge stored defaults into the conversation,
// resolve the credential (before any transport touch), build the vendor
// request, perform the single transport attempt, classify failures, and parse
// the success body. A failed call never returns a partial response.
func (c *Client) send(ctx context.Context, conversation ai.Conversation) (*ai.ChatResponse, error) {
	conversation = conversation.WithModel(c.model)
	if c.systemPrompt != "" {
		conversation = conversation.WithSystemPrompt(c.systemPrompt)
	}
	if len(c.params) > 0 {
		conversation = conversation.WithParams(c.params)
	}

	credential, err := credentials.Resolve(c.provider, c.apiKey)
	if err != nil {
		return nil, err
	}

	request, err := c.adapter.BuildRequest(conversation, credential)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("sending chat request",
		zap.String("provider", string(c.provider)),
		zap.String("model", c.model),
		zap.String("url", request.URL),
		zap.Int("turns", len(conversation.Turns)),
	)

	status, header, body, err := utils.DoPost(ctx, c.httpClient, request.URL, request.Header, request.Body)
	if err != nil {
		classified := ai.Classify(c.provider, 0, nil, err)
		c.logger.Debug("chat transport failed",
			zap.String("provider", string(c.provider)),
			zap.Error(classified),
		)
		return nil, classified
	}

	if err := ai.Classify(c.provider, status, body, nil); err != nil {
		c.logger.Debug("chat request rejected",
			zap.String("provider", string(c.provider)),
			zap.Int("status", status),
			zap.Error(err),
		)
		return nil, err
	}

	response, err := c.adapter.ParseResponse(status, header, body)
	if err != nil {
		return nil, err
	}

	// Some vendors omit the model from the response; fall back to the
	// configured one so callers always see a non-empty Model.
	if response.Model == "" {
		response.Model = c.model
	}

	c.logger.Debug("chat request completed",
		zap.String("provider", string(c.provider)),
		zap.String("request_id", response.RequestID),
		zap.Int("status", status),
		zap.String("preview", utils.TruncateString(response.Text, 120)),
	)

	return response, nil
}
