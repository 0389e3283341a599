package provider

import (
	"fmt"
	"sort"
	"sync"
)

// Factory creates a new Transport from the given configuration.
// Each transport registers its own factory function.
type Factory func(cfg Config) (Transport, error)

// registry stores registered transport factories.
var (
	registryMu sync.RWMutex
	registry   = make(map[string]Factory)
)

// Register adds a transport factory to the registry.
// Transports call this in their init() function.
// Panics if a transport with the same name is already registered.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[name]; exists {
		panic(fmt.Sprintf("transport %q already registered", name))
	}
	registry[name] = factory
}

// New creates a new Transport using the named factory.
// Returns ErrUnknownTransport if the name is not registered.
func New(name string, cfg Config) (Transport, error) {
	registryMu.RLock()
	factory, ok := registry[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTransport, name)
	}
	return factory(cfg)
}

// Available returns the names of all registered transports,
// sorted alphabetically for consistent ordering.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered checks if a transport is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()

	_, ok := registry[name]
	return ok
}
