package provider

import (
	"context"
	"fmt"
)

// TransportRouter is the registry name of the router transport.
const TransportRouter = "router"

// Router reaches models through a normalizing multi-provider gateway. The
// gateway speaks the OpenAI chat-completions wire format, routes on a
// prefixed model name, and reports a native per-completion cost estimate.
type Router struct {
	cfg Config
}

// NewRouter creates a router transport for the given gateway.
func NewRouter(cfg Config) (*Router, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("router: base_url is required")
	}
	if cfg.ModelPrefix == "" {
		cfg.ModelPrefix = "openai/"
	}
	return &Router{cfg: cfg}, nil
}

// Name returns the transport name.
func (r *Router) Name() string { return TransportRouter }

// Complete sends one chat completion through the gateway.
func (r *Router) Complete(ctx context.Context, req Request) (*Response, error) {
	return completeChat(ctx, TransportRouter, r.cfg, req)
}

func init() {
	Register(TransportRouter, func(cfg Config) (Transport, error) {
		return NewRouter(cfg)
	})
}
