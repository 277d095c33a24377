// ABOUTME: Tests for the definition loader.
// ABOUTME: Covers slug derivation, defaults, icon fallback and the preview example rule.

package blocks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_DerivesSlugFromTitle(t *testing.T) {
	l := NewLoader(&memStore{defs: []Definition{published("1", "Hero Banner", Meta{})}}, nil, "")

	got, err := l.LoadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "hero-banner", got[0].Slug)
	assert.Equal(t, "acf/hero-banner", got[0].Name)
	assert.Equal(t, "Hero Banner", got[0].Title)
	assert.Equal(t, "1", got[0].DefinitionID)
}

func TestLoader_Defaults(t *testing.T) {
	l := NewLoader(&memStore{defs: []Definition{published("1", "Plain", Meta{Mode: "bogus"})}}, nil, "")

	got, err := l.LoadAll(context.Background())
	require.NoError(t, err)
	d := got[0]
	assert.Equal(t, ModePreview, d.Mode)
	assert.Equal(t, "custom", d.Category)
	assert.Equal(t, []string{"custom"}, d.Keywords)
	assert.Equal(t, Icon{Kind: IconDashicon, Value: "admin-generic"}, d.Icon)
	assert.False(t, d.Supports.Align)
	assert.Nil(t, d.Example)
}

func TestLoader_StoredValues(t *testing.T) {
	meta := Meta{
		Slug:         "promo",
		Description:  "A promo strip",
		Category:     "Marketing Blocks",
		IconDashicon: "megaphone",
		Mode:         "edit",
		PreviewImage: "https://example.com/promo.png",
	}
	l := NewLoader(&memStore{defs: []Definition{published("1", "Promo Strip", meta)}}, nil, "site")

	got, err := l.LoadAll(context.Background())
	require.NoError(t, err)
	d := got[0]
	assert.Equal(t, "site/promo", d.Name)
	assert.Equal(t, "marketing-blocks", d.Category)
	assert.Equal(t, []string{"Marketing Blocks"}, d.Keywords)
	assert.Equal(t, ModeEdit, d.Mode)
	assert.Equal(t, Icon{Kind: IconDashicon, Value: "megaphone"}, d.Icon)
	require.NotNil(t, d.Example)
	assert.Equal(t, "https://example.com/promo.png", d.Example.Data[PreviewImageKey])
	assert.Equal(t, ModePreview, d.Example.Mode)
	assert.Empty(t, d.Example.Attributes)
}

func TestLoader_ExampleRequiresAbsoluteURL(t *testing.T) {
	tests := []struct {
		preview string
		want    bool
	}{
		{"https://x/img.png", true},
		{"http://example.com/a.jpg", true},
		{"/uploads/a.jpg", false},
		{"img.png", false},
		{"not a url", false},
		{"https://", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.preview, func(t *testing.T) {
			l := NewLoader(&memStore{}, nil, "")
			d := l.Describe(published("1", "Block", Meta{PreviewImage: tt.preview}))
			assert.Equal(t, tt.want, d.Example != nil)
		})
	}
}

func TestLoader_MissingSVGFallsBack(t *testing.T) {
	icons := testIcons()

	tests := []struct {
		name string
		meta Meta
		want Icon
	}{
		{
			name: "missing svg, no dashicon",
			meta: Meta{IconSVG: uploadsURL + "/2024/05/missing.svg"},
			want: Icon{Kind: IconDashicon, Value: "admin-generic"},
		},
		{
			name: "missing svg, stored dashicon",
			meta: Meta{IconSVG: uploadsURL + "/2024/05/missing.svg", IconDashicon: "heart"},
			want: Icon{Kind: IconDashicon, Value: "heart"},
		},
		{
			name: "svg present wins",
			meta: Meta{IconSVG: uploadsURL + "/2024/05/star.svg", IconDashicon: "heart"},
			want: Icon{Kind: IconSVG, Value: `<svg viewBox="0 0 20 20"><path d="M1 1"/></svg>`},
		},
		{
			name: "non-svg upload keeps dashicon",
			meta: Meta{IconSVG: uploadsURL + "/2024/05/logo.png", IconDashicon: "heart"},
			want: Icon{Kind: IconDashicon, Value: "heart"},
		},
		{
			name: "upper-case extension keeps dashicon",
			meta: Meta{IconSVG: uploadsURL + "/2024/05/star.SVG", IconDashicon: "heart"},
			want: Icon{Kind: IconDashicon, Value: "heart"},
		},
		{
			name: "non-svg upload, no dashicon",
			meta: Meta{IconSVG: uploadsURL + "/2024/05/logo.png"},
			want: Icon{Kind: IconDashicon, Value: "admin-generic"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLoader(&memStore{}, icons, "")
			assert.Equal(t, tt.want, l.Describe(published("1", "Block", tt.meta)).Icon)
		})
	}
}

func TestLoader_SkipsDrafts(t *testing.T) {
	l := NewLoader(&memStore{defs: []Definition{
		published("1", "One", Meta{}),
		draft("2", "Two", Meta{}),
		published("3", "Three", Meta{}),
	}}, nil, "")

	got, err := l.LoadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "acf/one", got[0].Name)
	assert.Equal(t, "acf/three", got[1].Name)
}

func TestLoader_StoreError(t *testing.T) {
	l := NewLoader(&memStore{err: errStoreDown}, nil, "")
	_, err := l.LoadAll(context.Background())
	require.ErrorIs(t, err, errStoreDown)
}

func TestDefinitionSlug(t *testing.T) {
	assert.Equal(t, "stored", DefinitionSlug(Definition{Title: "Title", Meta: Meta{Slug: "stored"}}))
	assert.Equal(t, "stored-slug", DefinitionSlug(Definition{Meta: Meta{Slug: "Stored Slug"}}))
	assert.Equal(t, "title", DefinitionSlug(Definition{Title: "Title"}))
	assert.Equal(t, "block-01hz", DefinitionSlug(Definition{ID: "01HZ", Title: "!!!"}))
}

func TestCategorySlug(t *testing.T) {
	assert.Equal(t, "images", CategorySlug("Images"))
	assert.Equal(t, "images-v2", CategorySlug("images v2"))
	assert.Equal(t, "custom", CategorySlug("???"))
}
