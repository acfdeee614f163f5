package ai

import "net/http"

// Request is a fully prepared vendor HTTP call: endpoint URL, authentication
// and content headers, and the JSON-encoded body. Building a Request twice
// from the same Conversation and Credential produces byte-identical bodies;
// adapters encode through typed wire structs rather than maps to keep the
// output deterministic.
type Request struct {
	URL    string
	Header http.Header
	Body   []byte
}

// Adapter is the per-vendor translation contract. One implementation exists
// per provider; the client façade selects a variant once at construction time
// and never branches on provider identity again.
//
// Adapters never touch the network: BuildRequest prepares the wire call, the
// transport is an external capability, and ParseResponse interprets what came
// back. ParseResponse is only invoked on success statuses; non-2xx outcomes
// are handed to [Classify] instead.
type Adapter interface {
	// ID returns the vendor this adapter translates for.
	ID() ProviderID

	// BuildRequest maps the conversation's roles, system prompt, and
	// parameter set onto the vendor's wire format and attaches the
	// credential in the vendor's authentication header.
	BuildRequest(conversation Conversation, credential Credential) (*Request, error)

	// ParseResponse extracts the generated text, normalized usage counters,
	// and a request identifier from the vendor's response envelope. The
	// unmodified body is preserved in [ChatResponse.Raw]. A body that does
	// not match the expected envelope shape fails with a [ParseError]; a
	// vendor error signaled inside a success envelope fails with an
	// [APIError].
	ParseResponse(status int, header http.Header, body []byte) (*ChatResponse, error)

	// WithBaseURL overrides the vendor's default endpoint base, for proxies
	// and test doubles. It returns the adapter so calls can be chained.
	WithBaseURL(baseURL string) Adapter
}
