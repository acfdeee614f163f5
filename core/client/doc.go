// Package client provides the provider-agnostic chat façade. A [Client] is
// bound to one provider and model at construction time via [New] and a set of
// functional options (e.g. [WithAPIKey], [WithSystemPrompt], [WithParams]);
// the provider choice is immutable for the life of the client.
//
// Reconfiguration after construction follows an immutable-snapshot model:
// [Client.WithSystemPrompt] and [Client.WithParams] return a new client
// sharing the adapter and transport, so an in-flight chat call never observes
// a half-updated configuration.
//
// Each chat call is a single attempt: credential resolution, request
// building, one HTTP POST, and response parsing or error classification.
// There are no retries and no backoff; layering those on top is the caller's
// choice.
package client
