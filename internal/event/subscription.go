package event

import (
	"sync"

	"github.com/google/uuid"
)

// Subscriber is the registry value for one subscribed listener.
// It boxes the typed Listener so collections of any element type can share a
// registry.
type Subscriber struct {
	listener any
}

// Listeners is the registry type observable collections store subscribers in,
// grouped by collection ID.
type Listeners = Registry[uuid.UUID, Subscriber]

// NewListeners creates a listener registry.
func NewListeners(opts ...RegistryOption) *Listeners {
	return NewRegistry[uuid.UUID, Subscriber](opts...)
}

var (
	defaultListeners     *Listeners
	defaultListenersOnce sync.Once
)

// DefaultListeners returns the process-wide listener registry.
func DefaultListeners() *Listeners {
	defaultListenersOnce.Do(func() {
		defaultListeners = NewListeners()
	})
	return defaultListeners
}
