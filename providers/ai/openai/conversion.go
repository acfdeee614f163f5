package openai

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/Pranav-Yeola/unifiedllm/providers/ai"
)

// Parameter mapping, total over the recognized key set:
//
//	maxTokens        -> max_tokens
//	temperature      -> temperature
//	topP             -> top_p
//	topK             -> ignored (no equivalent concept)
//	stopSequences    -> stop
//	candidateCount   -> n
//	frequencyPenalty -> frequency_penalty
//	presencePenalty  -> presence_penalty

// requestToOpenAI converts an ai.Conversation to an OpenAI
// chatCompletionsRequest. Role mapping: user -> user, model -> assistant.
// OpenAI has no dedicated system-instruction field; the system prompt becomes
// a synthetic leading message with role "system".
func requestToOpenAI(conversation ai.Conversation) chatCompletionsRequest {
	req := chatCompletionsRequest{Model: conversation.Model}

	messages := make([]chatMessage, 0, len(conversation.Turns)+1)
	if conversation.SystemPrompt != "" {
		messages = append(messages, chatMessage{Role: "system", Content: conversation.SystemPrompt})
	}
	for _, turn := range conversation.Turns {
		role := "user"
		if turn.Role == ai.RoleModel {
			role = "assistant"
		}
		messages = append(messages, chatMessage{Role: role, Content: turn.Content})
	}
	req.Messages = messages

	params := conversation.Params
	if v, ok := params.Int(ai.ParamMaxTokens); ok {
		req.MaxTokens = &v
	}
	if v, ok := params.Float(ai.ParamTemperature); ok {
		req.Temperature = &v
	}
	if v, ok := params.Float(ai.ParamTopP); ok {
		req.TopP = &v
	}
	if v, ok := params.Int(ai.ParamCandidateCount); ok {
		req.N = &v
	}
	if v, ok := params.Strings(ai.ParamStopSequences); ok {
		req.Stop = v
	}
	if v, ok := params.Float(ai.ParamFrequencyPenalty); ok {
		req.FrequencyPenalty = &v
	}
	if v, ok := params.Float(ai.ParamPresencePenalty); ok {
		req.PresencePenalty = &v
	}

	return req
}

// openaiToUnified converts an OpenAI chatCompletionsResponse to the unified
// ai.ChatResponse. An envelope without choices or without message content is
// an ai.ParseError, never a silently empty success.
func openaiToUnified(resp chatCompletionsResponse, header http.Header, body []byte) (*ai.ChatResponse, error) {
	if len(resp.Choices) == 0 {
		return nil, &ai.ParseError{Provider: ai.ProviderOpenAI, Message: "'choices' missing or empty", Body: body}
	}

	first := resp.Choices[0]
	if first.Message == nil || first.Message.Content == "" {
		return nil, &ai.ParseError{Provider: ai.ProviderOpenAI, Message: "choice carries no message content", Body: body}
	}

	requestID := strings.TrimSpace(resp.ID)
	if requestID == "" {
		requestID = strings.TrimSpace(header.Get("x-request-id"))
	}
	if requestID == "" {
		requestID = uuid.NewString()
	}

	result := &ai.ChatResponse{
		Provider:     ai.ProviderOpenAI,
		Model:        resp.Model,
		Text:         first.Message.Content,
		RequestID:    requestID,
		FinishReason: mapFinishReason(first.FinishReason),
		Raw:          append([]byte(nil), body...),
	}

	if resp.Usage != nil {
		result.Usage = &ai.Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		}
	}

	return result, nil
}

// mapFinishReason converts OpenAI finish reasons to the normalized vocabulary.
func mapFinishReason(reason string) string {
	switch reason {
	case "stop", "":
		return "stop"
	case "length":
		return "length"
	case "content_filter":
		return "content_filter"
	default:
		return "stop"
	}
}
