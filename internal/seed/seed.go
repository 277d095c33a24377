// ABOUTME: Writes seed definitions into the definition store and reads/writes YAML catalogs.
// ABOUTME: Meta goes through the same sanitizing save path as the admin editor.

package seed

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/2389/blockyard/internal/blocks"
	"gopkg.in/yaml.v3"
)

// Writer is the part of the definition store seeding needs.
type Writer interface {
	CreateDefinition(ctx context.Context, title string, status blocks.Status) (*blocks.Definition, error)
	blocks.MetaWriter
}

// Seed creates one definition per entry and returns how many were written.
func Seed(ctx context.Context, w Writer, defs []DefinitionData) (int, error) {
	created := 0
	for _, d := range defs {
		title := blocks.SanitizeText(d.Title)
		if title == "" {
			continue
		}
		def, err := w.CreateDefinition(ctx, title, d.Status())
		if err != nil {
			return created, fmt.Errorf("create %q: %w", title, err)
		}
		if err := blocks.SaveMeta(ctx, w, def.ID, d.MetaValues()); err != nil {
			return created, err
		}
		if svg := blocks.SanitizeText(d.IconSVG); svg != "" {
			if err := w.SetMeta(ctx, def.ID, blocks.MetaIconSVG, svg); err != nil {
				return created, fmt.Errorf("save %s: %w", blocks.MetaIconSVG, err)
			}
		}
		created++
	}
	return created, nil
}

// FromDefinition converts a stored definition back into seed data.
func FromDefinition(def blocks.Definition) DefinitionData {
	return DefinitionData{
		Title:        def.Title,
		Slug:         def.Meta.Slug,
		Description:  def.Meta.Description,
		Category:     def.Meta.Category,
		Icon:         def.Meta.IconDashicon,
		IconSVG:      def.Meta.IconSVG,
		PreviewImage: def.Meta.PreviewImage,
		Mode:         def.Meta.Mode,
		Draft:        def.Status != blocks.StatusPublish,
	}
}

type catalogFile struct {
	Blocks []DefinitionData `yaml:"blocks"`
}

// WriteYAML writes defs as a catalog document with a top-level blocks list.
func WriteYAML(w io.Writer, defs []DefinitionData) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(catalogFile{Blocks: defs}); err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	return enc.Close()
}

// ReadYAML parses a catalog document written by WriteYAML.
func ReadYAML(r io.Reader) ([]DefinitionData, error) {
	var f catalogFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return f.Blocks, nil
}
