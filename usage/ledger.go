// Package usage tracks token consumption and estimated cost across the model
// invocations of one session.
//
// A Session is an explicit caller-owned handle rather than process-wide
// state: each simulation creates its own, passes it into the query layer,
// and resets or discards it when done. That makes concurrent sessions safe
// by construction while the ledger itself stays mutex-guarded for callers
// that share one across goroutines.
package usage

import (
	"sync"

	"github.com/google/uuid"
	"github.com/quorumlab/consensuskit/model"
)

// Detail records one successful model invocation.
type Detail struct {
	Model       model.Name `json:"model"`
	TokensIn    int        `json:"tokens_in"`
	TokensOut   int        `json:"tokens_out"`
	TotalTokens int        `json:"total_tokens"`
	Cost        float64    `json:"cost"`
}

// Totals is the running aggregate over all recorded details.
type Totals struct {
	TokensIn  int     `json:"tokens_in"`
	TokensOut int     `json:"tokens_out"`
	Cost      float64 `json:"cost"`
}

// Session accumulates usage for one simulation run. Only successful
// invocations are recorded; failed attempts never touch the ledger, so the
// totals always equal the sum over the detail entries.
type Session struct {
	id string

	mu      sync.RWMutex
	totals  Totals
	details []Detail
}

// NewSession creates an empty ledger with a fresh id.
func NewSession() *Session {
	return &Session{id: uuid.NewString()}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Record appends a detail entry and folds its numbers into the running
// totals. Inputs are taken as-is; validation is the caller's job.
func (s *Session) Record(m model.Name, tokensIn, tokensOut, totalTokens int, cost float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.totals.TokensIn += tokensIn
	s.totals.TokensOut += tokensOut
	s.totals.Cost += cost
	s.details = append(s.details, Detail{
		Model:       m,
		TokensIn:    tokensIn,
		TokensOut:   tokensOut,
		TotalTokens: totalTokens,
		Cost:        cost,
	})
}

// Totals returns the running aggregate.
func (s *Session) Totals() Totals {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.totals
}

// Details returns a copy of the per-call entries in recording order.
func (s *Session) Details() []Detail {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Detail, len(s.details))
	copy(out, s.details)
	return out
}

// Calls returns the number of recorded invocations.
func (s *Session) Calls() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.details)
}

// Reset clears the ledger for a new run, keeping the session id.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.totals = Totals{}
	s.details = nil
}
