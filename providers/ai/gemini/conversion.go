package gemini

import (
	"strings"

	"github.com/google/uuid"

	"github.com/Pranav-Yeola/unifiedllm/providers/ai"
)

// Parameter mapping, total over the recognized key set. Gemini's
// generationConfig has a slot for every key:
//
//	maxTokens        -> generationConfig.maxOutputTokens
//	temperature      -> generationConfig.temperature
//	topP             -> generationConfig.topP
//	topK             -> generationConfig.topK
//	stopSequences    -> generationConfig.stopSequences
//	candidateCount   -> generationConfig.candidateCount
//	frequencyPenalty -> generationConfig.frequencyPenalty
//	presencePenalty  -> generationConfig.presencePenalty

// requestToGemini converts an ai.Conversation to a Gemini generateContentRequest.
// Role mapping: user -> user, model -> model (Gemini shares this vocabulary).
// The system prompt goes into the dedicated systemInstruction field.
func requestToGemini(conversation ai.Conversation) generateContentRequest {
	req := generateContentRequest{}

	if conversation.SystemPrompt != "" {
		req.SystemInstruction = &systemInstruction{
			Parts: []part{{Text: conversation.SystemPrompt}},
		}
	}

	req.Contents = make([]content, len(conversation.Turns))
	for i, turn := range conversation.Turns {
		req.Contents[i] = content{
			Role:  string(turn.Role),
			Parts: []part{{Text: turn.Content}},
		}
	}

	req.GenerationConfig = buildGenerationConfig(conversation.Params)

	return req
}

// buildGenerationConfig converts the parameter set to Gemini generationConfig.
// Returns nil when no recognized parameter is set so the field is omitted.
func buildGenerationConfig(params ai.Params) *generationConfig {
	if len(params) == 0 {
		return nil
	}

	gc := &generationConfig{}

	if v, ok := params.Float(ai.ParamTemperature); ok {
		gc.Temperature = &v
	}
	if v, ok := params.Float(ai.ParamTopP); ok {
		gc.TopP = &v
	}
	if v, ok := params.Int(ai.ParamTopK); ok {
		gc.TopK = &v
	}
	if v, ok := params.Int(ai.ParamMaxTokens); ok {
		gc.MaxOutputTokens = &v
	}
	if v, ok := params.Strings(ai.ParamStopSequences); ok {
		gc.StopSequences = v
	}
	if v, ok := params.Int(ai.ParamCandidateCount); ok {
		gc.CandidateCount = &v
	}
	if v, ok := params.Float(ai.ParamFrequencyPenalty); ok {
		gc.FrequencyPenalty = &v
	}
	if v, ok := params.Float(ai.ParamPresencePenalty); ok {
		gc.PresencePenalty = &v
	}

	return gc
}

// geminiToUnified converts a Gemini generateContentResponse to the unified
// ai.ChatResponse. A prompt blocked by safety filters (blockReason set, no
// candidates) is a vendor-signaled failure inside a success envelope and
// surfaces as an ai.APIError; an envelope missing candidates or text parts
// for any other reason is an ai.ParseError.
func geminiToUnified(resp generateContentResponse, body []byte) (*ai.ChatResponse, error) {
	if len(resp.Candidates) == 0 {
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			return nil, &ai.APIError{
				Provider: ai.ProviderGemini,
				ErrType:  resp.PromptFeedback.BlockReason,
				Message:  "prompt blocked by safety filters",
				Body:     body,
			}
		}
		return nil, &ai.ParseError{Provider: ai.ProviderGemini, Message: "'candidates' missing or empty", Body: body}
	}

	first := resp.Candidates[0]
	if first.Content == nil || len(first.Content.Parts) == 0 {
		return nil, &ai.ParseError{Provider: ai.ProviderGemini, Message: "candidate has no content parts", Body: body}
	}

	var texts []string
	for _, p := range first.Content.Parts {
		if p.Text != "" {
			texts = append(texts, p.Text)
		}
	}
	if len(texts) == 0 {
		return nil, &ai.ParseError{Provider: ai.ProviderGemini, Message: "candidate content carries no text part", Body: body}
	}

	requestID := strings.TrimSpace(resp.ResponseID)
	if requestID == "" {
		// Gemini does not reliably echo a correlation id; synthesize one so
		// RequestID is never empty.
		requestID = uuid.NewString()
	}

	result := &ai.ChatResponse{
		Provider:     ai.ProviderGemini,
		Model:        resp.ModelVersion,
		Text:         strings.Join(texts, ""),
		RequestID:    requestID,
		FinishReason: mapFinishReason(first.FinishReason),
		Raw:          append([]byte(nil), body...),
	}

	if resp.UsageMetadata != nil {
		result.Usage = &ai.Usage{
			InputTokens:  resp.UsageMetadata.PromptTokenCount,
			OutputTokens: resp.UsageMetadata.CandidatesTokenCount,
			TotalTokens:  resp.UsageMetadata.TotalTokenCount,
		}
	}

	return result, nil
}

// mapFinishReason converts Gemini finish reasons to the normalized vocabulary.
func mapFinishReason(geminiReason string) string {
	switch geminiReason {
	case "STOP", "OTHER", "":
		return "stop"
	case "MAX_TOKENS":
		return "length"
	case "SAFETY", "RECITATION":
		return "content_filter"
	default:
		return "stop"
	}
}
