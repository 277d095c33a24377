// ABOUTME: Schema definitions that drive the admin list and form rendering.
// ABOUTME: The definition editor is declared here; the renderer turns it into HTML.

package admin

import (
	"github.com/2389/blockyard/internal/blocks"
)

// ResourceSchema defines an editable resource
type ResourceSchema struct {
	Name        string         // "Blocks"
	Slug        string         // "blocks" (URL path)
	Fields      []FieldSchema  // What data to show/edit
	Actions     []ActionSchema // Available row operations
	ListColumns []string       // Which fields in list view
}

// FieldSchema defines a field in a resource
type FieldSchema struct {
	Name     string // form and data key
	Type     string // "string", "text", "url", "select"
	Display  string // label
	Help     string // hint under the input
	Required bool
	Editable bool
	Options  []Option // for "select"
}

// Option is one choice of a select field
type Option struct {
	Value string
	Label string
}

// ActionSchema defines an action on a resource
type ActionSchema struct {
	Name       string // "edit", "delete"
	HTTPMethod string // "GET", "DELETE"
	Endpoint   string // Template: "/admin/blocks/{id}"
	Confirm    bool   // Show confirmation dialog?
}

// Form field names for definition records. Meta fields use the meta key name.
const (
	fieldTitle  = "title"
	fieldStatus = "status"
)

// DefinitionSchema describes the block definition editor.
func DefinitionSchema() ResourceSchema {
	dashicons := make([]Option, 0, len(blocks.Dashicons)+1)
	dashicons = append(dashicons, Option{Value: "", Label: "Default (" + blocks.DefaultIcon + ")"})
	for _, name := range blocks.Dashicons {
		dashicons = append(dashicons, Option{Value: name, Label: name})
	}

	modes := make([]Option, 0, len(blocks.Modes))
	for _, m := range blocks.Modes {
		modes = append(modes, Option{Value: string(m), Label: string(m)})
	}

	return ResourceSchema{
		Name: "Blocks",
		Slug: "blocks",
		Fields: []FieldSchema{
			{Name: "id", Type: "string", Display: "ID"},
			{Name: fieldTitle, Type: "string", Display: "Title", Required: true, Editable: true},
			{Name: fieldStatus, Type: "select", Display: "Status", Editable: true, Options: []Option{
				{Value: string(blocks.StatusPublish), Label: "Published"},
				{Value: string(blocks.StatusDraft), Label: "Draft"},
			}},
			{Name: blocks.MetaSlug.String(), Type: "string", Display: "Slug", Editable: true,
				Help: "Lowercase letters, digits and hyphens. Derived from the title when left blank."},
			{Name: blocks.MetaDescription.String(), Type: "text", Display: "Description", Editable: true,
				Help: "Markdown is shown rendered in the block list."},
			{Name: blocks.MetaCategory.String(), Type: "string", Display: "Category", Editable: true,
				Help: "Defaults to " + blocks.DefaultCategory + "."},
			{Name: blocks.MetaIconDashicon.String(), Type: "select", Display: "Icon", Editable: true, Options: dashicons},
			{Name: blocks.MetaPreviewImage.String(), Type: "url", Display: "Preview image", Editable: true,
				Help: "Absolute URL shown in the inserter preview."},
			{Name: blocks.MetaMode.String(), Type: "select", Display: "Mode", Editable: true, Options: modes},
		},
		Actions: []ActionSchema{
			{Name: "edit", HTTPMethod: "GET", Endpoint: "/admin/blocks/{id}"},
			{Name: "delete", HTTPMethod: "DELETE", Endpoint: "/admin/blocks/{id}", Confirm: true},
		},
		ListColumns: []string{fieldTitle, blocks.MetaSlug.String(), blocks.MetaCategory.String(), fieldStatus},
	}
}

// definitionValues flattens a definition into schema field values.
func definitionValues(def *blocks.Definition) map[string]any {
	values := map[string]any{
		"id":        def.ID,
		fieldTitle:  def.Title,
		fieldStatus: string(def.Status),
	}
	for _, key := range blocks.MetaKeys {
		values[key.String()] = def.Meta.Get(key)
	}
	return values
}
