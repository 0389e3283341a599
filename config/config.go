// Package config loads engine configuration from TOML files.
//
// Everything has a usable default: role models, the fallback table, pricing,
// and the token cap all work out of the box, so a config file only needs the
// endpoint sections. The API key falls back to the OPENAI_API_KEY
// environment variable when the file omits it.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/quorumlab/consensuskit/model"
	"github.com/quorumlab/consensuskit/provider"
)

// apiKeyEnv is consulted when a transport section has no api_key.
const apiKeyEnv = "OPENAI_API_KEY"

// Endpoint configures one transport.
type Endpoint struct {
	// BaseURL is the endpoint root. Required for the transport to be built.
	BaseURL string `toml:"base_url"`

	// APIKey overrides the OPENAI_API_KEY environment variable.
	APIKey string `toml:"api_key"`

	// ModelPrefix overrides the router's default "openai/" routing prefix.
	// Ignored by the direct transport.
	ModelPrefix string `toml:"model_prefix"`

	// TimeoutSeconds bounds one completion request. 0 uses the transport
	// default.
	TimeoutSeconds int `toml:"timeout_seconds"`
}

// Fallback is one fallback-table entry.
type Fallback struct {
	Base        string   `toml:"base"`
	Substitutes []string `toml:"substitutes"`
}

// Config holds the full engine configuration.
type Config struct {
	// ChiefModel runs the chief architect role.
	ChiefModel string `toml:"chief_model"`

	// LogicModel runs the logic strategist role.
	LogicModel string `toml:"logic_model"`

	// CriticModel runs the pragmatic critic role.
	CriticModel string `toml:"critic_model"`

	// MaxTokens caps each reply. Default: query.DefaultMaxTokens.
	MaxTokens int `toml:"max_tokens"`

	// Iterations is the number of consensus rounds. Default: 3.
	Iterations int `toml:"iterations"`

	// Rates is the fixed pricing used when the transport reports no cost.
	Rates model.Rates `toml:"rates"`

	// Router configures the normalizing gateway transport.
	Router Endpoint `toml:"router"`

	// Direct configures the plain endpoint transport.
	Direct Endpoint `toml:"direct"`

	// Fallbacks overrides the built-in fallback table when non-empty.
	Fallbacks []Fallback `toml:"fallbacks"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		ChiefModel:  string(model.ChiefModel),
		LogicModel:  string(model.LogicModel),
		CriticModel: string(model.CriticModel),
		MaxTokens:   200,
		Iterations:  3,
		Rates:       model.DefaultRates,
	}
}

// Load reads a TOML config file and applies defaults.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// WithDefaults returns a copy with defaults applied for unset fields.
func (c Config) WithDefaults() Config {
	defaults := DefaultConfig()
	if c.ChiefModel == "" {
		c.ChiefModel = defaults.ChiefModel
	}
	if c.LogicModel == "" {
		c.LogicModel = defaults.LogicModel
	}
	if c.CriticModel == "" {
		c.CriticModel = defaults.CriticModel
	}
	if c.MaxTokens == 0 {
		c.MaxTokens = defaults.MaxTokens
	}
	if c.Iterations == 0 {
		c.Iterations = defaults.Iterations
	}
	if c.Rates == (model.Rates{}) {
		c.Rates = defaults.Rates
	}
	if c.Router.APIKey == "" {
		c.Router.APIKey = os.Getenv(apiKeyEnv)
	}
	if c.Direct.APIKey == "" {
		c.Direct.APIKey = os.Getenv(apiKeyEnv)
	}
	return c
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.MaxTokens < 0 {
		return fmt.Errorf("max_tokens must be >= 0")
	}
	if c.Iterations < 1 {
		return fmt.Errorf("iterations must be >= 1")
	}
	for _, f := range c.Fallbacks {
		if f.Base == "" {
			return fmt.Errorf("fallback entry with empty base")
		}
	}
	return nil
}

// Chains returns the fallback table: the file's override when present,
// otherwise the built-in default. Declaration order in the file is the
// lookup scan order.
func (c Config) Chains() model.ChainSet {
	if len(c.Fallbacks) == 0 {
		return model.DefaultChains
	}
	chains := make(model.ChainSet, 0, len(c.Fallbacks))
	for _, f := range c.Fallbacks {
		subs := make([]model.Name, 0, len(f.Substitutes))
		for _, s := range f.Substitutes {
			subs = append(subs, model.Name(s))
		}
		chains = append(chains, model.FallbackEntry{Base: model.Name(f.Base), Substitutes: subs})
	}
	return chains
}

// Transports builds the configured transports in invocation order, router
// first. A transport with no base URL is skipped; at least one must remain.
func (c Config) Transports() ([]provider.Transport, error) {
	var transports []provider.Transport

	if c.Router.BaseURL != "" {
		tr, err := provider.New(provider.TransportRouter, provider.Config{
			BaseURL:     c.Router.BaseURL,
			APIKey:      c.Router.APIKey,
			ModelPrefix: c.Router.ModelPrefix,
			Timeout:     time.Duration(c.Router.TimeoutSeconds) * time.Second,
		})
		if err != nil {
			return nil, err
		}
		transports = append(transports, tr)
	}
	if c.Direct.BaseURL != "" {
		tr, err := provider.New(provider.TransportDirect, provider.Config{
			BaseURL: c.Direct.BaseURL,
			APIKey:  c.Direct.APIKey,
			Timeout: time.Duration(c.Direct.TimeoutSeconds) * time.Second,
		})
		if err != nil {
			return nil, err
		}
		transports = append(transports, tr)
	}

	if len(transports) == 0 {
		return nil, fmt.Errorf("no transport configured: set router.base_url or direct.base_url")
	}
	return transports, nil
}
