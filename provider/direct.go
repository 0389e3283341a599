package provider

import (
	"context"
	"fmt"
)

// TransportDirect is the registry name of the direct transport.
const TransportDirect = "direct"

// Direct reaches a single OpenAI-compatible endpoint without a gateway in
// between. It is the simpler retry path: no model-name prefixing and no
// native cost estimate, so callers price its usage with fixed rates.
type Direct struct {
	cfg Config
}

// NewDirect creates a direct transport for the given endpoint.
func NewDirect(cfg Config) (*Direct, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("direct: base_url is required")
	}
	cfg.ModelPrefix = ""
	return &Direct{cfg: cfg}, nil
}

// Name returns the transport name.
func (d *Direct) Name() string { return TransportDirect }

// Complete sends one chat completion to the endpoint.
func (d *Direct) Complete(ctx context.Context, req Request) (*Response, error) {
	resp, err := completeChat(ctx, TransportDirect, d.cfg, req)
	if err != nil {
		return nil, err
	}
	// The direct endpoint never reports cost; make that explicit even if the
	// wire carried a stray value.
	resp.CostUSD = 0
	return resp, nil
}

func init() {
	Register(TransportDirect, func(cfg Config) (Transport, error) {
		return NewDirect(cfg)
	})
}
