// Package ai defines the shared, provider-agnostic types used across all LLM
// provider implementations (Gemini, Anthropic, OpenAI). Each provider's
// conversion layer is responsible for mapping these types to its own wire
// format, keeping the rest of the codebase decoupled from provider-specific
// details.
//
// The central interface is [Adapter]: it turns a [Conversation] plus a
// [Credential] into a ready-to-send [Request], and turns the vendor's raw
// HTTP response back into the unified [ChatResponse]. Transport outcomes are
// mapped onto the closed error taxonomy ([MissingAPIKeyError],
// [ValidationError], [InvalidRoleError], [HTTPError], [ParseError],
// [APIError]) by [Classify].
package ai
