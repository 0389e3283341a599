package provider

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for transport operations.
var (
	// ErrUnknownTransport indicates the requested transport is not registered.
	ErrUnknownTransport = errors.New("unknown transport")

	// ErrEmptyResponse indicates the endpoint answered at the protocol level
	// but returned no usable text. Always recoverable: the next candidate in
	// a fallback chain may answer properly.
	ErrEmptyResponse = errors.New("empty response from model")

	// ErrModelNotFound indicates the endpoint does not serve the requested model.
	ErrModelNotFound = errors.New("model_not_found")
)

// Error wraps transport errors with context.
// Recoverable is assigned at the throw site so recoverability is a property
// of the error value rather than a guess re-derived from its prose.
type Error struct {
	Transport   string // Transport name ("router", "direct")
	Op          string // Operation that failed ("complete")
	Err         error  // Underlying error
	Recoverable bool   // Whether a different model/transport may succeed
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Transport != "" {
		return fmt.Sprintf("%s %s: %v", e.Transport, e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a new transport error.
func NewError(transport, op string, err error, recoverable bool) *Error {
	return &Error{
		Transport:   transport,
		Op:          op,
		Err:         err,
		Recoverable: recoverable,
	}
}

// recoverablePhrases are matched case-insensitively against error text when
// the error carries no explicit recoverability tag. They cover the ways
// OpenAI-compatible endpoints phrase "this model is not available here" plus
// the empty-response condition.
var recoverablePhrases = []string{
	"model_not_found",
	"does not exist",
	"not find model",
	"empty response",
	"no content returned",
}

// recoverabler is implemented by error values that know their own
// recoverability, *Error included. Aggregate errors (e.g. the combined
// both-transports-failed error) implement it too, so classification never
// has to re-derive the judgment from concatenated prose.
type recoverabler interface {
	RecoverableError() bool
}

// RecoverableError reports the tag assigned at the throw site.
func (e *Error) RecoverableError() bool { return e.Recoverable }

// Recoverable reports whether an error warrants falling back to the next
// candidate model or transport. Tagged errors answer directly; for
// everything else the error text is scanned for the known recoverable phrases.
// Auth and quota failures match neither path and so fail fast.
func Recoverable(err error) bool {
	if err == nil {
		return false
	}

	var tagged recoverabler
	if errors.As(err, &tagged) {
		return tagged.RecoverableError()
	}
	if errors.Is(err, ErrEmptyResponse) || errors.Is(err, ErrModelNotFound) {
		return true
	}

	text := strings.ToLower(err.Error())
	for _, phrase := range recoverablePhrases {
		if strings.Contains(text, phrase) {
			return true
		}
	}
	return false
}
