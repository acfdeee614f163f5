package openai

/*
	OPENAI CHAT COMPLETIONS API - REQUEST TYPES
*/

// chatCompletionsRequest represents the request body for OpenAI's Chat
// Completions API.
type chatCompletionsRequest struct {
	Model            string        `json:"model"`
	Messages         []chatMessage `json:"messages"`
	MaxTokens        *int          `json:"max_tokens,omitempty"`
	Temperature      *float64      `json:"temperature,omitempty"`
	TopP             *float64      `json:"top_p,omitempty"`
	N                *int          `json:"n,omitempty"`
	Stop             []string      `json:"stop,omitempty"`
	FrequencyPenalty *float64      `json:"frequency_penalty,omitempty"`
	PresencePenalty  *float64      `json:"presence_penalty,omitempty"`
}

// chatMessage represents a single message; role is "system", "user", or
// "assistant".
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

/*
	OPENAI CHAT COMPLETIONS API - RESPONSE TYPES
*/

// chatCompletionsResponse represents the response envelope.
type chatCompletionsResponse struct {
	ID      string       `json:"id"`
	Object  string       `json:"object"`
	Created int64        `json:"created"`
	Model   string       `json:"model"`
	Choices []choice     `json:"choices"`
	Usage   *openaiUsage `json:"usage,omitempty"`
}

// choice represents one completion candidate.
type choice struct {
	Index        int          `json:"index"`
	Message      *chatMessage `json:"message,omitempty"`
	FinishReason string       `json:"finish_reason,omitempty"`
}

// openaiUsage represents token accounting for one request.
type openaiUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}
