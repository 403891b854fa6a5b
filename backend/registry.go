package backend

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/gogpu/gesso"
)

// Factory opens a backend.
type Factory func(opts Options) (Backend, error)

var (
	registryMu sync.RWMutex
	backends   = make(map[string]Factory)
	// Selection order for OpenDefault; unlisted backends follow by name.
	backendPriority = []string{BackendWGPU, BackendSoftware}
)

// Register adds a backend factory, replacing any with the same name.
// Backend packages call it from init.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	backends[name] = factory
}

// Unregister removes a backend. It is mainly useful in tests.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(backends, name)
}

// IsRegistered reports whether name has a factory.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := backends[name]
	return ok
}

// Available returns registered backend names in selection order.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(backends))
	for _, name := range backendPriority {
		if _, ok := backends[name]; ok {
			names = append(names, name)
		}
	}
	var rest []string
	for name := range backends {
		if !slices.Contains(backendPriority, name) {
			rest = append(rest, name)
		}
	}
	slices.Sort(rest)
	return append(names, rest...)
}

// Open opens the named backend.
func Open(name string, opts Options) (Backend, error) {
	registryMu.RLock()
	factory, ok := backends[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, name)
	}
	b, err := factory(opts)
	if err != nil {
		return nil, fmt.Errorf("backend %s: %w", name, err)
	}
	return b, nil
}

// OpenDefault opens the first backend in selection order that succeeds.
// Failures are logged and joined into the returned error when none does.
func OpenDefault(opts Options) (Backend, error) {
	errs := []error{ErrBackendNotAvailable}
	for _, name := range Available() {
		b, err := Open(name, opts)
		if err == nil {
			gesso.Logger().Debug("backend selected", "backend", name)
			return b, nil
		}
		gesso.Logger().Debug("backend unavailable", "backend", name, "error", err)
		errs = append(errs, err)
	}
	return nil, errors.Join(errs...)
}

// OpenNamed opens name, or the default backend when name is empty.
func OpenNamed(name string, opts Options) (Backend, error) {
	if name == "" {
		return OpenDefault(opts)
	}
	return Open(name, opts)
}
