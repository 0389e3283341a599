package query

import (
	"fmt"
	"strings"

	"github.com/quorumlab/consensuskit/model"
	"github.com/quorumlab/consensuskit/provider"
)

// TransportsError reports that every transport failed for one invocation of
// one model. Both underlying causes are kept so the true root cause stays
// diagnosable without log access.
type TransportsError struct {
	Model model.Name
	Errs  []error
}

// Error implements the error interface.
func (e *TransportsError) Error() string {
	causes := make([]string, len(e.Errs))
	for i, err := range e.Errs {
		causes[i] = err.Error()
	}
	return fmt.Sprintf("all transports failed for model %q: %s",
		e.Model, strings.Join(causes, "; "))
}

// Unwrap exposes the underlying causes for errors.Is/As.
func (e *TransportsError) Unwrap() []error { return e.Errs }

// RecoverableError reports whether falling back to another model may help:
// true when any underlying cause is recoverable. An auth failure on one
// transport does not mask a model-not-found on the other.
func (e *TransportsError) RecoverableError() bool {
	for _, err := range e.Errs {
		if provider.Recoverable(err) {
			return true
		}
	}
	return false
}

// ExhaustedError reports that every candidate in the resolved fallback chain
// failed recoverably. LastErr is the final underlying failure.
type ExhaustedError struct {
	Model     model.Name
	Attempted []model.Name
	LastErr   error
}

// Error implements the error interface.
func (e *ExhaustedError) Error() string {
	names := make([]string, len(e.Attempted))
	for i, n := range e.Attempted {
		names[i] = string(n)
	}
	if e.LastErr == nil {
		return fmt.Sprintf("all fallbacks exhausted for model %q (tried %s)",
			e.Model, strings.Join(names, ", "))
	}
	return fmt.Sprintf("all fallbacks exhausted for model %q (tried %s): %v",
		e.Model, strings.Join(names, ", "), e.LastErr)
}

// Unwrap returns the last underlying failure.
func (e *ExhaustedError) Unwrap() error { return e.LastErr }
