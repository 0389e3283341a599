package query

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/quorumlab/consensuskit/model"
	"github.com/quorumlab/consensuskit/provider"
	"github.com/quorumlab/consensuskit/usage"
)

// DefaultMaxTokens caps response length for debate turns. Short punchy
// replies keep the simulation affordable.
const DefaultMaxTokens = 200

// Client queries models with transport and model-level fallback.
type Client struct {
	transports []provider.Transport
	chains     model.ChainSet
	rates      model.Rates
	session    *usage.Session
	maxTokens  int
	log        *log.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithChains overrides the fallback chain table.
func WithChains(chains model.ChainSet) Option {
	return func(c *Client) { c.chains = chains }
}

// WithRates overrides the fixed per-million-token pricing used when the
// transport has no native cost estimate.
func WithRates(rates model.Rates) Option {
	return func(c *Client) { c.rates = rates }
}

// WithMaxTokens overrides the response length cap.
func WithMaxTokens(n int) Option {
	return func(c *Client) { c.maxTokens = n }
}

// WithLogger attaches a logger for fallback diagnostics. The client is
// silent without one.
func WithLogger(logger *log.Logger) Option {
	return func(c *Client) { c.log = logger }
}

// New creates a client that tries the given transports in order for each
// invocation and records successes into the session ledger.
func New(session *usage.Session, transports []provider.Transport, opts ...Option) *Client {
	c := &Client{
		transports: transports,
		chains:     model.DefaultChains,
		rates:      model.DefaultRates,
		session:    session,
		maxTokens:  DefaultMaxTokens,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Invoke performs one attempt to obtain a completion from the named model,
// falling back across transports. A response whose content is empty after
// trimming counts as a failure even when the transport call succeeded.
// Exactly one usage record is written per successful invocation.
func (c *Client) Invoke(ctx context.Context, messages []provider.Message, m model.Name) (*provider.Response, error) {
	resp, soft, fatal := tryEach(c.transports,
		func(tr provider.Transport) (*provider.Response, error) {
			return c.attempt(ctx, tr, messages, m)
		},
		// The second transport is tried on any failure of the first; the
		// recoverable/fatal split applies to model fallback, not here.
		func(error) bool { return true },
	)
	if fatal != nil {
		return nil, fatal
	}
	if resp == nil {
		return nil, &TransportsError{Model: m, Errs: soft}
	}

	cost := resp.CostUSD
	if cost == 0 {
		cost = c.rates.Cost(resp.Usage.InputTokens, resp.Usage.OutputTokens)
		resp.CostUSD = cost
	}
	c.session.Record(m, resp.Usage.InputTokens, resp.Usage.OutputTokens, resp.Usage.TotalTokens, cost)
	return resp, nil
}

// attempt runs a single transport call and applies the empty-content check.
func (c *Client) attempt(ctx context.Context, tr provider.Transport, messages []provider.Message, m model.Name) (*provider.Response, error) {
	resp, err := tr.Complete(ctx, provider.Request{
		Model:     string(m),
		Messages:  messages,
		MaxTokens: c.maxTokens,
	})
	if err != nil {
		c.logf("transport failed", "transport", tr.Name(), "model", m, "err", err)
		return nil, err
	}
	if strings.TrimSpace(resp.Content) == "" {
		c.logf("empty response", "transport", tr.Name(), "model", m)
		return nil, provider.NewError(tr.Name(), "complete",
			fmt.Errorf("%w %q", provider.ErrEmptyResponse, m), true)
	}
	return resp, nil
}

// Query obtains a completion for the requested model, walking its fallback
// chain while failures stay recoverable. A non-recoverable failure (auth,
// quota) propagates immediately: it would almost certainly recur for every
// candidate, so failing fast avoids wasted calls.
func (c *Client) Query(ctx context.Context, messages []provider.Message, id model.Name) (*provider.Response, error) {
	chain := c.chains.Resolve(id)

	var attempted []model.Name
	resp, soft, fatal := tryEach(chain,
		func(candidate model.Name) (*provider.Response, error) {
			attempted = append(attempted, candidate)
			r, err := c.Invoke(ctx, messages, candidate)
			if err != nil && provider.Recoverable(err) {
				c.logf("model unavailable or empty, trying fallback", "model", candidate)
			}
			return r, err
		},
		provider.Recoverable,
	)
	if fatal != nil {
		return nil, fatal
	}
	if resp != nil {
		return resp, nil
	}

	exhausted := &ExhaustedError{Model: id, Attempted: attempted}
	if len(soft) > 0 {
		exhausted.LastErr = soft[len(soft)-1]
	}
	return nil, exhausted
}

// Session returns the ledger this client records into.
func (c *Client) Session() *usage.Session { return c.session }

func (c *Client) logf(msg string, kv ...any) {
	if c.log != nil {
		c.log.Warn(msg, kv...)
	}
}
