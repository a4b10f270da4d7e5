package bridge

import (
	"fmt"
	"sync"
)

// TransportFactory builds a transport from its untyped configuration.
type TransportFactory func(cfg map[string]any) (Transport, error)

var (
	factoryMu  sync.RWMutex
	factoryMap = make(map[string]TransportFactory)
)

// RegisterTransport registers a named transport factory. Transport
// implementations call this from their init functions; the loader picks
// a factory by name at bootstrap.
func RegisterTransport(name string, factory TransportFactory) error {
	if name == "" {
		return fmt.Errorf("transport name is empty")
	}
	if factory == nil {
		return fmt.Errorf("transport factory %q is nil", name)
	}
	factoryMu.Lock()
	defer factoryMu.Unlock()
	if _, ok := factoryMap[name]; ok {
		return fmt.Errorf("transport factory %q already registered", name)
	}
	factoryMap[name] = factory
	return nil
}

// NewTransport builds a transport from a registered factory.
func NewTransport(name string, cfg map[string]any) (Transport, error) {
	factoryMu.RLock()
	factory, ok := factoryMap[name]
	factoryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown transport %q", name)
	}
	return factory(cfg)
}
