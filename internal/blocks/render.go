// ABOUTME: Renders one block occurrence to HTML.
// ABOUTME: Preview requests with a preview image get the image; everything else gets the live container.

package blocks

import (
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/url"
	"strings"
)

// Occurrence is one placed block as the host hands it to the renderer.
type Occurrence struct {
	Name      string         `json:"name"`
	Data      map[string]any `json:"data,omitempty"`
	IsPreview bool           `json:"is_preview"`
	// Fields are the occurrence's current field values, passed through as-is.
	Fields map[string]any `json:"fields,omitempty"`
}

// PreviewImage returns the preview image reference carried in Data.
func (o Occurrence) PreviewImage() string {
	s, _ := o.Data[PreviewImageKey].(string)
	return strings.TrimSpace(s)
}

// RenderState is which output path a render call takes.
type RenderState int

const (
	StateLive RenderState = iota
	StatePreview
)

func (s RenderState) String() string {
	if s == StatePreview {
		return "preview"
	}
	return "live"
}

// StateOf picks the render state for occ. A preview image with a scheme
// other than http or https counts as no image.
func StateOf(occ Occurrence) RenderState {
	if occ.IsPreview && safeURL(occ.PreviewImage()) != "" {
		return StatePreview
	}
	return StateLive
}

// Renderer writes occurrence markup.
type Renderer struct {
	namespace string
}

// NewRenderer creates a renderer for block types under namespace.
func NewRenderer(namespace string) *Renderer {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &Renderer{namespace: namespace}
}

// Render writes the markup for occ to w.
func (r *Renderer) Render(w io.Writer, occ Occurrence) error {
	if StateOf(occ) == StatePreview {
		_, err := fmt.Fprintf(w, `<img src="%s" style="max-width:100%%;height:auto;" />`,
			html.EscapeString(safeURL(occ.PreviewImage())))
		return err
	}

	fields := occ.Fields
	if fields == nil {
		fields = map[string]any{}
	}
	attrs, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("encode fields for %s: %w", occ.Name, err)
	}

	_, err = fmt.Fprintf(w, `<div class="acf-dynamic-block %s" data-attrs="%s"></div>`,
		html.EscapeString(r.Slug(occ.Name)),
		html.EscapeString(string(attrs)))
	return err
}

// RenderString is Render into a string.
func (r *Renderer) RenderString(occ Occurrence) (string, error) {
	var sb strings.Builder
	if err := r.Render(&sb, occ); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Slug strips the namespace prefix from a block type name.
func (r *Renderer) Slug(name string) string {
	return strings.TrimPrefix(name, r.namespace+"/")
}

// safeURL drops references with schemes other than http and https.
func safeURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	switch strings.ToLower(u.Scheme) {
	case "", "http", "https":
		return raw
	}
	return ""
}
