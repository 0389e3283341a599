// Package provider defines the transports used to reach a hosted
// chat-completion endpoint.
//
// Two transports exist, mirroring the two-stage defense of the query layer:
//
//   - "router": a normalizing multi-provider gateway that reports usage and a
//     native cost estimate per completion.
//   - "direct": a plain OpenAI-compatible endpoint with usage but no cost.
//
// Both accept the same Request and return the same Response shape; the query
// package tries them in order. Transports tag errors with recoverability at
// the throw site (see Error) so the fallback machinery never has to guess
// from error prose alone.
package provider

import "context"

// Transport performs one chat completion attempt against an endpoint.
// Implementations must be safe for concurrent use.
type Transport interface {
	// Complete sends a request and returns the full response.
	// The context controls cancellation and timeouts.
	Complete(ctx context.Context, req Request) (*Response, error)

	// Name returns the transport name (e.g., "router", "direct").
	Name() string
}
