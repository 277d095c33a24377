// ABOUTME: Submits descriptors to the host block registry and computes the allowed type list.
// ABOUTME: One pass registers every published definition; a bad definition never aborts it.

package blocks

import (
	"context"
	"log"
)

// BlockTypeRegistry is the host-side registry descriptors are submitted to.
// RegisterBlockType reports whether an existing type with the same name was replaced.
type BlockTypeRegistry interface {
	RegisterBlockType(d Descriptor) (replaced bool)
}

// Pass is the outcome of one registration pass.
type Pass struct {
	Descriptors []Descriptor
	// Duplicates names every type that more than one definition resolved to.
	// The registry keeps the one registered last.
	Duplicates []string
}

// Registrar drives registration from the Loader.
type Registrar struct {
	loader *Loader
}

func NewRegistrar(loader *Loader) *Registrar {
	return &Registrar{loader: loader}
}

// Descriptors returns exactly what the loader produces.
func (r *Registrar) Descriptors(ctx context.Context) ([]Descriptor, error) {
	return r.loader.LoadAll(ctx)
}

// Register loads all descriptors and submits each to reg once.
func (r *Registrar) Register(ctx context.Context, reg BlockTypeRegistry) (*Pass, error) {
	descriptors, err := r.loader.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	pass := &Pass{Descriptors: descriptors}
	flagged := make(map[string]bool)
	for _, d := range descriptors {
		if reg.RegisterBlockType(d) && !flagged[d.Name] {
			flagged[d.Name] = true
			pass.Duplicates = append(pass.Duplicates, d.Name)
			log.Printf("Warning: block type %s defined more than once, definition %s wins", d.Name, d.DefinitionID)
		}
	}
	return pass, nil
}

// AllowedTypeNames returns namespace/slug for every published definition in
// listing order. Entries repeat only when two definitions share a slug.
func (r *Registrar) AllowedTypeNames(ctx context.Context) ([]string, error) {
	defs, err := r.loader.Published(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(defs))
	for _, def := range defs {
		names = append(names, TypeName(r.loader.namespace, DefinitionSlug(def)))
	}
	return names, nil
}

// Categories merges host with the categories of the published definitions.
func (r *Registrar) Categories(ctx context.Context, host []Category) ([]Category, error) {
	defs, err := r.loader.Published(ctx)
	if err != nil {
		return nil, err
	}
	return MergeCategories(host, defs), nil
}
