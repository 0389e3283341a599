package usage

import (
	"sync"
	"testing"

	"github.com/quorumlab/consensuskit/model"
)

func TestSessionRecord(t *testing.T) {
	s := NewSession()
	if s.ID() == "" {
		t.Fatal("NewSession() produced empty id")
	}

	s.Record("gpt-4.1", 100, 40, 140, 0.0007)
	s.Record("gpt-4o", 50, 10, 60, 0.000225)

	totals := s.Totals()
	if totals.TokensIn != 150 {
		t.Errorf("TokensIn = %d, want 150", totals.TokensIn)
	}
	if totals.TokensOut != 50 {
		t.Errorf("TokensOut = %d, want 50", totals.TokensOut)
	}

	details := s.Details()
	if len(details) != 2 {
		t.Fatalf("len(details) = %d, want 2", len(details))
	}
	if details[0].Model != model.Name("gpt-4.1") || details[1].Model != model.Name("gpt-4o") {
		t.Errorf("details out of recording order: %v", details)
	}
	if details[1].TotalTokens != 60 {
		t.Errorf("details[1].TotalTokens = %d, want 60", details[1].TotalTokens)
	}
}

// Totals must always equal the sum over detail entries.
func TestSessionTotalsMatchDetails(t *testing.T) {
	s := NewSession()
	for i := 0; i < 10; i++ {
		s.Record("gpt-4o-mini", i, i*2, i*3, float64(i)*0.001)
	}

	var sum Totals
	for _, d := range s.Details() {
		sum.TokensIn += d.TokensIn
		sum.TokensOut += d.TokensOut
		sum.Cost += d.Cost
	}

	if got := s.Totals(); got != sum {
		t.Errorf("Totals() = %+v, sum of details = %+v", got, sum)
	}
	if s.Calls() != 10 {
		t.Errorf("Calls() = %d, want 10", s.Calls())
	}
}

func TestSessionReset(t *testing.T) {
	s := NewSession()
	id := s.ID()
	s.Record("gpt-4.1", 1, 2, 3, 0.1)

	s.Reset()

	if got := s.Totals(); got != (Totals{}) {
		t.Errorf("Totals() after Reset = %+v, want zero", got)
	}
	if len(s.Details()) != 0 {
		t.Error("Details() after Reset should be empty")
	}
	if s.ID() != id {
		t.Error("Reset must keep the session id")
	}
}

func TestSessionConcurrentRecord(t *testing.T) {
	s := NewSession()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				s.Record("gpt-4o", 1, 1, 2, 0.001)
			}
		}()
	}
	wg.Wait()

	if got := s.Totals().TokensIn; got != 800 {
		t.Errorf("TokensIn = %d, want 800", got)
	}
	if got := s.Calls(); got != 800 {
		t.Errorf("Calls() = %d, want 800", got)
	}
}
