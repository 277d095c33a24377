// ABOUTME: Host block-type registry built fresh for each registration pass.
// ABOUTME: Holds registered descriptors, the allow-list and render dispatch for occurrences.

package registry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/2389/blockyard/internal/blocks"
)

// ErrNotAllowed is returned when a block type is outside the allow-list.
var ErrNotAllowed = errors.New("block type not allowed")

// Registry is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	types    map[string]blocks.Descriptor
	order    []string
	allowed  map[string]struct{}
	renderer *blocks.Renderer
}

// New creates an empty registry that renders through renderer.
func New(renderer *blocks.Renderer) *Registry {
	if renderer == nil {
		renderer = blocks.NewRenderer("")
	}
	return &Registry{
		types:    make(map[string]blocks.Descriptor),
		allowed:  make(map[string]struct{}),
		renderer: renderer,
	}
}

// Build runs one registration pass from r into a new registry and installs
// the allow-list for the same published set.
func Build(ctx context.Context, r *blocks.Registrar, renderer *blocks.Renderer) (*Registry, *blocks.Pass, error) {
	reg := New(renderer)
	pass, err := r.Register(ctx, reg)
	if err != nil {
		return nil, nil, fmt.Errorf("register block types: %w", err)
	}
	names, err := r.AllowedTypeNames(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("allowed block types: %w", err)
	}
	reg.SetAllowed(names)
	return reg, pass, nil
}

// RegisterBlockType adds d. A later registration with the same name replaces
// the earlier one in place and reports true.
func (r *Registry) RegisterBlockType(d blocks.Descriptor) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, exists := r.types[d.Name]
	if !exists {
		r.order = append(r.order, d.Name)
	}
	r.types[d.Name] = d
	return exists
}

// Get retrieves a descriptor by type name
func (r *Registry) Get(name string) (blocks.Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.types[name]
	return d, ok
}

// All returns registered descriptors in registration order
func (r *Registry) All() []blocks.Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]blocks.Descriptor, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.types[name])
	}
	return out
}

// Names returns registered type names in registration order
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// SetAllowed replaces the allow-list.
func (r *Registry) SetAllowed(names []string) {
	allowed := make(map[string]struct{}, len(names))
	for _, name := range names {
		allowed[name] = struct{}{}
	}
	r.mu.Lock()
	r.allowed = allowed
	r.mu.Unlock()
}

// Allowed reports whether content may contain blocks of type name.
func (r *Registry) Allowed(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.allowed[name]
	return ok
}

// AllowedNames returns the allow-list in registration order, without repeats.
func (r *Registry) AllowedNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.allowed))
	for _, name := range r.order {
		if _, ok := r.allowed[name]; ok {
			names = append(names, name)
		}
	}
	return names
}

// Render dispatches occ to the renderer when its type is registered and allowed.
func (r *Registry) Render(w io.Writer, occ blocks.Occurrence) error {
	if _, ok := r.Get(occ.Name); !ok || !r.Allowed(occ.Name) {
		return fmt.Errorf("%w: %s", ErrNotAllowed, occ.Name)
	}
	return r.renderer.Render(w, occ)
}
