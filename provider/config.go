package provider

import (
	"net/http"
	"time"
)

// DefaultTimeout bounds a single completion request when no HTTP client is
// supplied. Completions for long conversations can take a while.
const DefaultTimeout = 2 * time.Minute

// Config holds configuration for creating a transport.
type Config struct {
	// BaseURL is the endpoint root, e.g. "https://api.openai.com/v1" for the
	// direct transport or the gateway address for the router transport.
	// Required.
	BaseURL string `json:"base_url" yaml:"base_url" toml:"base_url"`

	// APIKey is sent as a bearer token. Required by most endpoints.
	APIKey string `json:"api_key" yaml:"api_key" toml:"api_key"`

	// ModelPrefix is prepended to the model name on the wire. Normalizing
	// gateways route on a "provider/model" form, e.g. "openai/gpt-4.1".
	// Empty means the model name is sent as-is.
	ModelPrefix string `json:"model_prefix" yaml:"model_prefix" toml:"model_prefix"`

	// Timeout is the maximum duration for a completion request.
	// 0 uses DefaultTimeout. Ignored when HTTPClient is set.
	Timeout time.Duration `json:"timeout" yaml:"timeout" toml:"timeout"`

	// HTTPClient overrides the HTTP client used for requests.
	// Mainly useful for tests.
	HTTPClient *http.Client `json:"-" yaml:"-" toml:"-"`
}

// httpClient returns the configured client or a default one.
func (c Config) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	timeout := c.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}
