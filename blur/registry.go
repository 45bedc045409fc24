// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package blur

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/gogpu/frost"
)

// Errors.
var (
	// ErrUnknownAlgorithm is returned when a name is not registered.
	ErrUnknownAlgorithm = errors.New("blur: unknown algorithm")

	// ErrNoAlgorithm is returned when the registry is empty.
	ErrNoAlgorithm = errors.New("blur: no algorithm registered")

	// ErrInvalidScaleFactor is returned for negative, NaN or infinite
	// scale factors.
	ErrInvalidScaleFactor = errors.New("blur: invalid scale factor")
)

// Factory creates a new algorithm instance.
// Implementations should validate options and return descriptive errors.
type Factory func(opts Options) (frost.Algorithm, error)

// RegistryEntry represents a registered algorithm.
type RegistryEntry struct {
	// Name is the unique identifier for this algorithm.
	Name string

	// Priority determines default selection order (higher = preferred).
	Priority int

	// Factory creates algorithm instances.
	Factory Factory
}

// Registry maps algorithm names to factories so configuration files and
// command lines can select an algorithm by name.
//
// Example:
//
//	blur.Register("stackblur", 60, func(opts blur.Options) (frost.Algorithm, error) {
//	    return newStackBlur(opts), nil
//	})
//
//	alg, err := blur.New("stackblur", blur.Options{ScaleFactor: 8})
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*RegistryEntry
}

// globalRegistry is the default registry.
var globalRegistry = NewRegistry()

// NewRegistry creates a new empty registry.
// Most code should use the global registry via Register and New.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]*RegistryEntry),
	}
}

// Register adds an algorithm to the global registry.
// Registering a name that already exists replaces the previous entry.
func Register(name string, priority int, factory Factory) {
	globalRegistry.Register(name, priority, factory)
}

// Unregister removes an algorithm from the global registry.
func Unregister(name string) {
	globalRegistry.Unregister(name)
}

// List returns all registered names sorted by priority (highest first).
func List() []string {
	return globalRegistry.List()
}

// Get returns the global registry entry for name.
func Get(name string) (*RegistryEntry, bool) {
	return globalRegistry.Get(name)
}

// New creates an algorithm by name from the global registry.
func New(name string, opts Options) (frost.Algorithm, error) {
	return globalRegistry.New(name, opts)
}

// NewDefault creates the highest-priority algorithm of the global registry.
func NewDefault(opts Options) (frost.Algorithm, error) {
	return globalRegistry.NewDefault(opts)
}

// Register adds an algorithm to this registry.
func (r *Registry) Register(name string, priority int, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[name] = &RegistryEntry{
		Name:     name,
		Priority: priority,
		Factory:  factory,
	}
}

// Unregister removes an algorithm from this registry.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entries, name)
}

// Get returns a copy of the entry registered under name.
func (r *Registry) Get(name string) (*RegistryEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[name]
	if !ok {
		return nil, false
	}
	entryCopy := *entry
	return &entryCopy, true
}

// List returns all registered names sorted by priority (highest first).
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedNames()
}

// New creates an algorithm by name.
func (r *Registry) New(name string, opts Options) (frost.Algorithm, error) {
	if err := opts.validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", err, opts.ScaleFactor)
	}

	r.mu.RLock()
	entry, ok := r.entries[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
	return entry.Factory(opts)
}

// NewDefault creates the highest-priority algorithm.
func (r *Registry) NewDefault(opts Options) (frost.Algorithm, error) {
	r.mu.RLock()
	names := r.sortedNames()
	r.mu.RUnlock()

	if len(names) == 0 {
		return nil, ErrNoAlgorithm
	}
	return r.New(names[0], opts)
}

// sortedNames returns names sorted by priority (highest first), then by
// name. Must be called with lock held.
func (r *Registry) sortedNames() []string {
	if len(r.entries) == 0 {
		return nil
	}

	entries := make([]*RegistryEntry, 0, len(r.entries))
	for _, e := range r.entries {
		entries = append(entries, e)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Priority != entries[j].Priority {
			return entries[i].Priority > entries[j].Priority
		}
		return entries[i].Name < entries[j].Name
	})

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}

// init registers the built-in algorithms.
func init() {
	Register("gaussian", 100, func(opts Options) (frost.Algorithm, error) {
		return NewGaussian(opts), nil
	})
	Register("box", 50, func(opts Options) (frost.Algorithm, error) {
		return NewBox(opts), nil
	})
	Register("bild", 10, func(opts Options) (frost.Algorithm, error) {
		return NewBild(opts), nil
	})
}
