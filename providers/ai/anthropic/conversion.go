package anthropic

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/Pranav-Yeola/unifiedllm/providers/ai"
)

// Parameter mapping, total over the recognized key set:
//
//	maxTokens        -> max_tokens (mandatory; defaulted to 1024 when unset)
//	temperature      -> temperature
//	topP             -> top_p
//	topK             -> top_k
//	stopSequences    -> stop_sequences
//	candidateCount   -> ignored (the Messages API returns exactly one completion)
//	frequencyPenalty -> ignored (no equivalent concept)
//	presencePenalty  -> ignored (no equivalent concept)

// requestToAnthropic converts an ai.Conversation to an Anthropic messagesRequest.
// Role mapping: user -> user, model -> assistant. The system prompt goes into
// the dedicated top-level system field.
func requestToAnthropic(conversation ai.Conversation) messagesRequest {
	req := messagesRequest{
		Model:     conversation.Model,
		System:    conversation.SystemPrompt,
		MaxTokens: defaultMaxTokens,
	}

	req.Messages = make([]anthropicMessage, len(conversation.Turns))
	for i, turn := range conversation.Turns {
		role := "user"
		if turn.Role == ai.RoleModel {
			role = "assistant"
		}
		req.Messages[i] = anthropicMessage{Role: role, Content: turn.Content}
	}

	params := conversation.Params
	if v, ok := params.Int(ai.ParamMaxTokens); ok {
		req.MaxTokens = v
	}
	if v, ok := params.Float(ai.ParamTemperature); ok {
		req.Temperature = &v
	}
	if v, ok := params.Float(ai.ParamTopP); ok {
		req.TopP = &v
	}
	if v, ok := params.Int(ai.ParamTopK); ok {
		req.TopK = &v
	}
	if v, ok := params.Strings(ai.ParamStopSequences); ok {
		req.StopSequences = v
	}

	return req
}

// anthropicToUnified converts an Anthropic messagesResponse to the unified
// ai.ChatResponse. Text is the concatenation of all "text" content blocks;
// an envelope without any is an ai.ParseError.
func anthropicToUnified(resp messagesResponse, header http.Header, body []byte) (*ai.ChatResponse, error) {
	if len(resp.Content) == 0 {
		return nil, &ai.ParseError{Provider: ai.ProviderAnthropic, Message: "'content' missing or empty", Body: body}
	}

	var texts []string
	for _, block := range resp.Content {
		if block.Type == "text" && block.Text != "" {
			texts = append(texts, block.Text)
		}
	}
	if len(texts) == 0 {
		return nil, &ai.ParseError{Provider: ai.ProviderAnthropic, Message: "no text block in 'content'", Body: body}
	}

	result := &ai.ChatResponse{
		Provider:     ai.ProviderAnthropic,
		Model:        resp.Model,
		Text:         strings.Join(texts, ""),
		RequestID:    requestID(resp, header),
		FinishReason: mapStopReason(resp.StopReason),
		Raw:          append([]byte(nil), body...),
	}

	if resp.Usage != nil {
		result.Usage = &ai.Usage{
			InputTokens:  resp.Usage.InputTokens,
			OutputTokens: resp.Usage.OutputTokens,
			// Anthropic reports no total; synthesize it.
			TotalTokens: resp.Usage.InputTokens + resp.Usage.OutputTokens,
		}
	}

	return result, nil
}

// requestID prefers the message id from the body, then the request-id
// response headers, and synthesizes a UUID when neither is present.
func requestID(resp messagesResponse, header http.Header) string {
	if id := strings.TrimSpace(resp.ID); id != "" {
		return id
	}
	if rid := strings.TrimSpace(header.Get("request-id")); rid != "" {
		return rid
	}
	if rid := strings.TrimSpace(header.Get("x-request-id")); rid != "" {
		return rid
	}
	return uuid.NewString()
}

// mapStopReason converts Anthropic stop reasons to the normalized vocabulary.
func mapStopReason(stopReason string) string {
	switch stopReason {
	case "end_turn", "stop_sequence", "":
		return "stop"
	case "max_tokens":
		return "length"
	case "refusal":
		return "content_filter"
	default:
		return "stop"
	}
}
