package provider

import (
	"errors"
	"fmt"
	"testing"
)

func TestRecoverable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"tagged recoverable", NewError("router", "complete", errors.New("boom"), true), true},
		{"tagged fatal", NewError("router", "complete", errors.New("model_not_found"), false), false},
		{"empty response sentinel", fmt.Errorf("model gpt-4o: %w", ErrEmptyResponse), true},
		{"model not found phrase", errors.New("HTTP 404: The MODEL_NOT_FOUND for this org"), true},
		{"does not exist phrase", errors.New("model gpt-9 does not exist"), true},
		{"not find model phrase", errors.New("could not find model gpt-9 in registry"), true},
		{"no content phrase", errors.New("no content returned for model"), true},
		{"auth failure", errors.New("invalid_api_key: incorrect API key"), false},
		{"quota failure", errors.New("insufficient_quota: billing limit reached"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Recoverable(tt.err); got != tt.want {
				t.Errorf("Recoverable(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestErrorUnwrap(t *testing.T) {
	underlying := errors.New("boom")
	err := NewError("direct", "complete", underlying, false)

	if !errors.Is(err, underlying) {
		t.Error("errors.Is should reach the underlying error")
	}

	var provErr *Error
	if !errors.As(err, &provErr) {
		t.Fatal("errors.As failed")
	}
	if provErr.Transport != "direct" {
		t.Errorf("Transport = %q, want %q", provErr.Transport, "direct")
	}
}

func TestErrorMessage(t *testing.T) {
	err := NewError("router", "complete", errors.New("boom"), true)
	want := "router complete: boom"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	bare := &Error{Op: "complete", Err: errors.New("boom")}
	if bare.Error() != "complete: boom" {
		t.Errorf("Error() = %q, want %q", bare.Error(), "complete: boom")
	}
}

func TestRegistry(t *testing.T) {
	for _, name := range []string{TransportRouter, TransportDirect} {
		if !IsRegistered(name) {
			t.Errorf("transport %q not registered", name)
		}
	}

	if _, err := New("bogus", Config{}); !errors.Is(err, ErrUnknownTransport) {
		t.Errorf("New(bogus) error = %v, want ErrUnknownTransport", err)
	}

	names := Available()
	if len(names) < 2 {
		t.Fatalf("Available() = %v, want at least router and direct", names)
	}
}
