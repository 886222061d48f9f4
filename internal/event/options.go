package event

import (
	"log/slog"

	"github.com/google/uuid"
)

// RegistryOption configures a Registry.
type RegistryOption func(*registryConfig)

// registryConfig contains configuration for a registry.
type registryConfig struct {
	// logger receives reclamation debug records.
	logger *slog.Logger
}

// defaultRegistryConfig returns sensible default configuration.
func defaultRegistryConfig() registryConfig {
	return registryConfig{
		logger: slog.Default().With("system", "event-registry"),
	}
}

// WithRegistryLogger sets the registry's logger.
func WithRegistryLogger(l *slog.Logger) RegistryOption {
	return func(c *registryConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// Option configures an Observable.
type Option func(*observableConfig)

// observableConfig contains configuration for an observable collection.
type observableConfig struct {
	// id is the collection identity; a random UUID when unset.
	id uuid.UUID

	// registry holds the listeners; the process-wide registry when unset.
	registry *Listeners

	// logger receives subscription debug records.
	logger *slog.Logger
}

// defaultObservableConfig returns sensible default configuration.
func defaultObservableConfig() observableConfig {
	return observableConfig{
		registry: DefaultListeners(),
		logger:   slog.Default().With("system", "observable"),
	}
}

// WithID sets the collection identity used as the registry group key.
func WithID(id uuid.UUID) Option {
	return func(c *observableConfig) {
		c.id = id
	}
}

// WithRegistry sets the registry listeners are stored in.
func WithRegistry(r *Listeners) Option {
	return func(c *observableConfig) {
		if r != nil {
			c.registry = r
		}
	}
}

// WithLogger sets the observable's logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *observableConfig) {
		if l != nil {
			c.logger = l
		}
	}
}
