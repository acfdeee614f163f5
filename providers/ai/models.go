package ai

import "encoding/json"

// ProviderID identifies one of the supported LLM vendors.
type ProviderID string

const (
	ProviderGemini    ProviderID = "gemini"
	ProviderAnthropic ProviderID = "anthropic"
	ProviderOpenAI    ProviderID = "openai"
)

// Providers lists every supported vendor, in a stable order.
func Providers() []ProviderID {
	return []ProviderID{ProviderGemini, ProviderAnthropic, ProviderOpenAI}
}

// MessageRole represents the role of a conversation turn; compatible with string.
// The vocabulary is deliberately closed: callers speak in terms of the user and
// the model, and each adapter translates to its vendor's own role names
// (e.g. "assistant" where the vendor uses that for model turns).
type MessageRole string

const (
	RoleUser  MessageRole = "user"  // End-user message
	RoleModel MessageRole = "model" // Model response
)

// Valid reports whether the role is one of the two recognized values.
func (r MessageRole) Valid() bool {
	return r == RoleUser || r == RoleModel
}

// Message represents a single role-tagged turn in a conversation.
// Ordering is significant: conversation order is turn order.
type Message struct {
	Role    MessageRole `json:"role"`
	Content string      `json:"content"`
}

// Credential is a resolved API key for one provider. It is produced once per
// chat call by the credentials resolver and never persisted beyond it.
type Credential struct {
	Provider ProviderID
	APIKey   string
}

// Usage carries normalized token counters. Vendors name these fields
// differently (prompt/completion, input/output, promptTokenCount/...);
// adapters map them onto this one shape.
type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

// ChatResponse is the unified result of a successful chat call, regardless of
// which vendor produced it. It is constructed once and never mutated.
type ChatResponse struct {
	Provider ProviderID `json:"provider"`
	Model    string     `json:"model"`

	// Text is the generated text, extracted from the vendor's envelope.
	Text string `json:"text"`

	// RequestID is the vendor-supplied correlation id when one exists
	// (response body or header); otherwise a locally generated UUID, so it
	// is never empty.
	RequestID string `json:"request_id"`

	// FinishReason is the vendor's stop reason normalized to
	// "stop" | "length" | "content_filter".
	FinishReason string `json:"finish_reason,omitempty"`

	Usage *Usage `json:"usage,omitempty"`

	// Raw retains the unmodified vendor response body for debugging.
	// Treat it as read-only.
	Raw json.RawMessage `json:"raw,omitempty"`
}
