// ABOUTME: Loads published block definitions and builds registration descriptors.
// ABOUTME: Applies slug derivation, category/mode/icon defaults and the preview example rule.

package blocks

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/2389/blockyard/internal/slug"
)

// Loader reads definitions from a Store and materializes Descriptors.
type Loader struct {
	store     Store
	icons     *IconResolver
	namespace string
}

// NewLoader creates a loader. An empty namespace means DefaultNamespace.
func NewLoader(store Store, icons *IconResolver, namespace string) *Loader {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	if icons == nil {
		icons = NewIconResolverFS("", nil)
	}
	return &Loader{store: store, icons: icons, namespace: namespace}
}

// Namespace returns the block type name prefix.
func (l *Loader) Namespace() string {
	return l.namespace
}

// Published returns the published definitions in store listing order.
func (l *Loader) Published(ctx context.Context) ([]Definition, error) {
	defs, err := l.store.ListPublished(ctx, PostType)
	if err != nil {
		return nil, fmt.Errorf("list published definitions: %w", err)
	}
	return defs, nil
}

// LoadAll builds one descriptor per published definition, in listing order.
// Per-definition problems fall back to defaults and never fail the pass.
func (l *Loader) LoadAll(ctx context.Context) ([]Descriptor, error) {
	defs, err := l.Published(ctx)
	if err != nil {
		return nil, err
	}
	descriptors := make([]Descriptor, 0, len(defs))
	for _, def := range defs {
		descriptors = append(descriptors, l.Describe(def))
	}
	return descriptors, nil
}

// Describe builds the descriptor for a single definition.
func (l *Loader) Describe(def Definition) Descriptor {
	s := DefinitionSlug(def)
	category := def.Meta.Category
	if category == "" {
		category = DefaultCategory
	}

	d := Descriptor{
		Name:         TypeName(l.namespace, s),
		Slug:         s,
		Title:        def.Title,
		Description:  def.Meta.Description,
		Category:     CategorySlug(category),
		Keywords:     []string{category},
		Icon:         l.resolveIcon(def.Meta),
		Mode:         ParseMode(def.Meta.Mode),
		Supports:     Supports{Align: false},
		DefinitionID: def.ID,
	}

	if preview := strings.TrimSpace(def.Meta.PreviewImage); IsAbsoluteURL(preview) {
		d.Example = &Example{
			Attributes: map[string]any{},
			Data:       map[string]any{PreviewImageKey: preview},
			Mode:       ModePreview,
		}
	}
	return d
}

// resolveIcon prefers the uploaded SVG, then the stored dashicon, then
// DefaultIcon. The SVG field is only considered when it names a .svg file.
func (l *Loader) resolveIcon(meta Meta) Icon {
	if ref := strings.TrimSpace(meta.IconSVG); strings.HasSuffix(ref, ".svg") {
		if icon, ok := l.icons.Resolve(ref); ok {
			return icon
		}
	}
	if icon, ok := l.icons.Resolve(meta.IconDashicon); ok {
		return icon
	}
	return Icon{Kind: IconDashicon, Value: DefaultIcon}
}

// DefinitionSlug is the stored slug, else the slug of the title, else a slug
// built from the record id so every definition has a usable type name.
func DefinitionSlug(def Definition) string {
	if s := slug.Normalize(def.Meta.Slug); s != "" {
		return s
	}
	if s := slug.Normalize(def.Title); s != "" {
		return s
	}
	return slug.Normalize("block-" + def.ID)
}

// CategorySlug normalizes a category label, falling back to DefaultCategory.
func CategorySlug(title string) string {
	if s := slug.Normalize(title); s != "" {
		return s
	}
	return DefaultCategory
}

// TypeName joins namespace and slug into a block type name.
func TypeName(namespace, s string) string {
	return namespace + "/" + s
}

// IsAbsoluteURL reports whether raw parses as a URL with scheme and host.
func IsAbsoluteURL(raw string) bool {
	if raw == "" || strings.ContainsAny(raw, " \t\n") {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return u.IsAbs() && u.Host != ""
}
