// ABOUTME: Block definition and descriptor types shared by loader, registrar and renderer.
// ABOUTME: Meta keys are a closed enumeration with a fixed decode table.

package blocks

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// PostType is the record type the store keeps block definitions under.
const PostType = "acf_block_template"

// DefaultNamespace prefixes every registered block type name.
const DefaultNamespace = "acf"

// DefaultCategory is used when a definition has no usable category.
const DefaultCategory = "custom"

// Status is the publication state of a definition record.
type Status string

const (
	StatusPublish Status = "publish"
	StatusDraft   Status = "draft"
)

// ParseStatus maps anything other than "publish" to draft.
func ParseStatus(s string) Status {
	if Status(strings.TrimSpace(s)) == StatusPublish {
		return StatusPublish
	}
	return StatusDraft
}

// Mode controls how the content editor presents a block.
type Mode string

const (
	ModePreview Mode = "preview"
	ModeEdit    Mode = "edit"
	ModeAuto    Mode = "auto"
)

// Modes lists the accepted modes in the order the editor offers them.
var Modes = []Mode{ModePreview, ModeEdit, ModeAuto}

// ParseMode returns the stored mode if it is one of the known values,
// otherwise ModePreview.
func ParseMode(s string) Mode {
	switch m := Mode(strings.TrimSpace(s)); m {
	case ModePreview, ModeEdit, ModeAuto:
		return m
	}
	return ModePreview
}

// MetaKey identifies one of the per-definition meta fields.
type MetaKey int

const (
	MetaSlug MetaKey = iota
	MetaDescription
	MetaCategory
	MetaIconDashicon
	MetaIconSVG
	MetaPreviewImage
	MetaMode
)

var metaKeyNames = [...]string{
	MetaSlug:         "block_slug",
	MetaDescription:  "block_description",
	MetaCategory:     "block_category",
	MetaIconDashicon: "block_icon_dashicon",
	MetaIconSVG:      "block_icon_svg",
	MetaPreviewImage: "block_preview_img",
	MetaMode:         "block_mode",
}

// MetaKeys is every known key, in storage order.
var MetaKeys = []MetaKey{
	MetaSlug,
	MetaDescription,
	MetaCategory,
	MetaIconDashicon,
	MetaIconSVG,
	MetaPreviewImage,
	MetaMode,
}

// SavedKeys are the keys the definition editor writes on save.
var SavedKeys = []MetaKey{
	MetaSlug,
	MetaDescription,
	MetaCategory,
	MetaIconDashicon,
	MetaPreviewImage,
	MetaMode,
}

func (k MetaKey) String() string {
	if k < 0 || int(k) >= len(metaKeyNames) {
		return fmt.Sprintf("MetaKey(%d)", int(k))
	}
	return metaKeyNames[k]
}

// ParseMetaKey looks up a stored key name.
func ParseMetaKey(name string) (MetaKey, bool) {
	for _, k := range MetaKeys {
		if metaKeyNames[k] == name {
			return k, true
		}
	}
	return 0, false
}

// Meta holds the decoded meta values of one definition. Empty means absent.
type Meta struct {
	Slug         string
	Description  string
	Category     string
	IconDashicon string
	IconSVG      string
	PreviewImage string
	Mode         string
}

// Get returns the value stored under k.
func (m Meta) Get(k MetaKey) string {
	switch k {
	case MetaSlug:
		return m.Slug
	case MetaDescription:
		return m.Description
	case MetaCategory:
		return m.Category
	case MetaIconDashicon:
		return m.IconDashicon
	case MetaIconSVG:
		return m.IconSVG
	case MetaPreviewImage:
		return m.PreviewImage
	case MetaMode:
		return m.Mode
	}
	return ""
}

// Set stores v under k. Unknown keys are ignored.
func (m *Meta) Set(k MetaKey, v string) {
	switch k {
	case MetaSlug:
		m.Slug = v
	case MetaDescription:
		m.Description = v
	case MetaCategory:
		m.Category = v
	case MetaIconDashicon:
		m.IconDashicon = v
	case MetaIconSVG:
		m.IconSVG = v
	case MetaPreviewImage:
		m.PreviewImage = v
	case MetaMode:
		m.Mode = v
	}
}

// Definition is one user-authored block record as the store returns it.
type Definition struct {
	ID        string
	Title     string
	Status    Status
	Meta      Meta
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Store is the part of the definition store the registration pipeline reads.
type Store interface {
	ListPublished(ctx context.Context, postType string) ([]Definition, error)
}

// MetaWriter is the part of the definition store the save path writes through.
type MetaWriter interface {
	SetMeta(ctx context.Context, id string, key MetaKey, value string) error
}

// IconKind tells the editor how to interpret Icon.Value.
type IconKind string

const (
	IconDashicon IconKind = "dashicon"
	IconSVG      IconKind = "svg"
)

// DefaultIcon is the symbolic icon used when nothing else resolves.
const DefaultIcon = "admin-generic"

// Icon is either a symbolic icon name or inline SVG markup.
type Icon struct {
	Kind  IconKind `json:"kind" yaml:"kind"`
	Value string   `json:"value" yaml:"value"`
}

// Supports lists editor features a block opts into.
type Supports struct {
	Align bool `json:"align" yaml:"align"`
}

// PreviewImageKey is the occurrence data key carrying the preview image URL.
const PreviewImageKey = "preview_image_help"

// Example is the inserter preview payload attached to a descriptor.
type Example struct {
	Attributes map[string]any `json:"attributes" yaml:"attributes"`
	Data       map[string]any `json:"data" yaml:"data"`
	Mode       Mode           `json:"mode" yaml:"mode"`
}

// Descriptor is the registration-ready projection of a Definition.
type Descriptor struct {
	Name         string   `json:"name" yaml:"name"`
	Slug         string   `json:"slug" yaml:"slug"`
	Title        string   `json:"title" yaml:"title"`
	Description  string   `json:"description" yaml:"description"`
	Category     string   `json:"category" yaml:"category"`
	Keywords     []string `json:"keywords" yaml:"keywords"`
	Icon         Icon     `json:"icon" yaml:"icon"`
	Mode         Mode     `json:"mode" yaml:"mode"`
	Supports     Supports `json:"supports" yaml:"supports"`
	Example      *Example `json:"example,omitempty" yaml:"example,omitempty"`
	DefinitionID string   `json:"definition_id" yaml:"definition_id"`
}

// Category is one entry of the editor's block category list.
type Category struct {
	Slug     string `json:"slug" yaml:"slug"`
	Title    string `json:"title" yaml:"title"`
	Icon     string `json:"icon,omitempty" yaml:"icon,omitempty"`
	Position int    `json:"position,omitempty" yaml:"position,omitempty"`
}
