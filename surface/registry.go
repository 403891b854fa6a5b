// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/gogpu/gesso"
)

// Factory creates a new Surface with the given options.
// Implementations should validate options and return descriptive errors.
type Factory func(opts Options) (Surface, error)

// Entry is a registered surface backend.
type Entry struct {
	// Name is the unique identifier for this backend.
	Name string

	// Priority determines selection order (higher = preferred).
	// Standard priorities:
	//   - 100: GPU backends
	//   - 10: in-memory image surfaces
	Priority int

	// Factory creates surface instances.
	Factory Factory

	// Available reports if the backend can be used on this system.
	Available func() bool
}

// defaultRegistry is the process-wide registry.
var defaultRegistry = NewRegistry()

// Registry manages named surface backends.
//
// Example registration:
//
//	func init() {
//	    surface.Register("wgpu", 100, newTextureSurface, gpuAvailable)
//	}
//
// Example usage:
//
//	s, err := surface.NewSurfaceByName("wgpu", 800, 600)
//	// or auto-select best available:
//	s, err := surface.NewSurface(800, 600)
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*Entry
}

// NewRegistry creates an empty registry.
// Most code should use the package-level Register and NewSurface.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*Entry)}
}

// Register adds a backend to the default registry. A nil available func
// means always available. Registering an existing name replaces it.
func Register(name string, priority int, factory Factory, available func() bool) {
	defaultRegistry.Register(name, priority, factory, available)
}

// Unregister removes a backend from the default registry.
func Unregister(name string) {
	defaultRegistry.Unregister(name)
}

// List returns all registered backend names, highest priority first.
func List() []string {
	return defaultRegistry.List()
}

// Available returns the names of available backends, highest priority first.
func Available() []string {
	return defaultRegistry.Available()
}

// NewSurface creates a surface with the best available backend.
func NewSurface(width, height int) (Surface, error) {
	return defaultRegistry.NewSurface(DefaultOptions(width, height))
}

// NewSurfaceByName creates a surface with the named backend.
func NewSurfaceByName(name string, width, height int) (Surface, error) {
	return defaultRegistry.NewSurfaceByName(name, DefaultOptions(width, height))
}

// Register adds a backend to this registry.
func (r *Registry) Register(name string, priority int, factory Factory, available func() bool) {
	if available == nil {
		available = func() bool { return true }
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[name] = &Entry{
		Name:      name,
		Priority:  priority,
		Factory:   factory,
		Available: available,
	}
}

// Unregister removes a backend from this registry.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, name)
}

// List returns all registered backend names, highest priority first.
func (r *Registry) List() []string {
	return r.names(false)
}

// Available returns the names of available backends, highest priority first.
func (r *Registry) Available() []string {
	return r.names(true)
}

// Get returns a copy of the named entry.
func (r *Registry) Get(name string) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[name]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// NewSurface tries each available backend in priority order and returns
// the first surface that could be created.
func (r *Registry) NewSurface(opts Options) (Surface, error) {
	names := r.Available()
	if len(names) == 0 {
		return nil, ErrNoBackendAvailable
	}

	var errs []error
	for _, name := range names {
		s, err := r.NewSurfaceByName(name, opts)
		if err == nil {
			return s, nil
		}
		gesso.Logger().Debug("surface backend failed", "backend", name, "error", err)
		errs = append(errs, err)
	}
	return nil, errors.Join(errs...)
}

// NewSurfaceByName creates a surface with a specific backend.
func (r *Registry) NewSurfaceByName(name string, opts Options) (Surface, error) {
	e, ok := r.Get(name)
	if !ok {
		return nil, &BackendNotFoundError{Name: name}
	}
	if !e.Available() {
		return nil, &BackendUnavailableError{Name: name}
	}

	s, err := e.Factory(opts)
	if err != nil {
		return nil, fmt.Errorf("surface: %s: %w", name, err)
	}
	return s, nil
}

// names returns backend names sorted by priority, then name.
func (r *Registry) names(onlyAvailable bool) []string {
	r.mu.RLock()
	entries := make([]*Entry, 0, len(r.entries))
	for _, e := range r.entries {
		entries = append(entries, e)
	}
	r.mu.RUnlock()

	slices.SortFunc(entries, func(a, b *Entry) int {
		if c := cmp.Compare(b.Priority, a.Priority); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if onlyAvailable && !e.Available() {
			continue
		}
		names = append(names, e.Name)
	}
	return names
}

// ErrNoBackendAvailable is returned when no surface backends are
// registered or available on the current system.
var ErrNoBackendAvailable = errors.New("surface: no backend available")

// BackendNotFoundError indicates a named backend is not registered.
type BackendNotFoundError struct {
	Name string
}

func (e *BackendNotFoundError) Error() string {
	return "surface: backend not found: " + e.Name
}

// BackendUnavailableError indicates a backend exists but is not available.
type BackendUnavailableError struct {
	Name string
}

func (e *BackendUnavailableError) Error() string {
	return "surface: backend unavailable: " + e.Name
}

func init() {
	Register("image", 10, func(opts Options) (Surface, error) {
		return NewImageSurface(opts.Width, opts.Height), nil
	}, nil)
}
