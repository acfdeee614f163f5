package ai

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/kaptinlin/jsonrepair"

	"github.com/Pranav-Yeola/unifiedllm/internal/utils"
)

// errorEnvelope covers the error shapes the three vendors actually return.
// OpenAI and Anthropic wrap details under "error" with string type/code;
// Google nests an integer code and a status string. Top-level message and
// request_id are fallbacks some envelopes carry instead.
type errorEnvelope struct {
	Error     *errorDetail `json:"error"`
	Message   string       `json:"message"`
	RequestID string       `json:"request_id"`
}

type errorDetail struct {
	Message string          `json:"message"`
	Type    string          `json:"type"`
	Status  string          `json:"status"`
	Code    json.RawMessage `json:"code"`
}

// Classify maps a transport outcome onto the error taxonomy. Decision order:
//
//  1. transportErr != nil → *HTTPError with no status, wrapping the cause.
//  2. non-2xx status → *HTTPError carrying the status and the vendor's error
//     message when the body is parseable, the raw body text otherwise.
//  3. 2xx status whose body still carries a vendor "error" object →
//     *APIError (some vendors signal application failures inside a success
//     envelope).
//  4. nil — the caller may hand the body to the adapter's ParseResponse.
//
// Parse failures of a 2xx body are not classified here; they surface as
// *ParseError from the adapter attempting the parse.
func Classify(provider ProviderID, status int, body []byte, transportErr error) error {
	if transportErr != nil {
		return &HTTPError{Provider: provider, Message: "transport failure", Err: transportErr}
	}

	if status < 200 || status >= 300 {
		message := string(bytes.TrimSpace(body))
		if env := decodeErrorEnvelope(body); env != nil && env.message() != "" {
			message = env.message()
		}
		return &HTTPError{Provider: provider, StatusCode: status, Message: message, Body: body}
	}

	if env := decodeErrorEnvelope(body); env != nil && env.Error != nil {
		return &APIError{
			Provider: provider,
			ErrType:  env.Error.errType(),
			Code:     rawToString(env.Error.Code),
			Message:  env.Error.Message,
			Body:     body,
		}
	}

	return nil
}

// decodeErrorEnvelope decodes a vendor error body best-effort. Bodies that are
// not valid JSON get one repair attempt (providers occasionally emit truncated
// or otherwise mangled JSON under load) before giving up and returning nil.
func decodeErrorEnvelope(body []byte) *errorEnvelope {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}

	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err == nil {
		return &env
	}

	repaired, err := jsonrepair.JSONRepair(string(body))
	if err != nil {
		return nil
	}
	if err := json.Unmarshal([]byte(repaired), &env); err != nil {
		return nil
	}
	return &env
}

// message returns the most specific human-readable message in the envelope.
func (e *errorEnvelope) message() string {
	if e.Error != nil && e.Error.Message != "" {
		return e.Error.Message
	}
	return e.Message
}

// errType returns the vendor's machine-readable error kind: "type" for
// OpenAI/Anthropic, "status" for Google-style envelopes.
func (d *errorDetail) errType() string {
	if d.Type != "" {
		return d.Type
	}
	return d.Status
}

// rawToString renders a code field that may be a JSON string, number, or null.
func rawToString(raw json.RawMessage) string {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return strconv.Itoa(n)
	}
	return utils.TruncateStringDefault(string(raw))
}
