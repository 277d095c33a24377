// ABOUTME: Tests for icon reference resolution.
// ABOUTME: Uses an in-memory filesystem for uploaded SVG assets.

package blocks

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
)

const uploadsURL = "https://example.com/wp-content/uploads"

func testIcons() *IconResolver {
	return NewIconResolverFS(uploadsURL+"/", fstest.MapFS{
		"2024/05/star.svg":  {Data: []byte(`<svg viewBox="0 0 20 20"><path d="M1 1"/></svg>`)},
		"2024/05/empty.svg": {Data: []byte("  \n")},
	})
}

func TestIconResolver_Symbolic(t *testing.T) {
	icon, ok := testIcons().Resolve("megaphone")
	assert.True(t, ok)
	assert.Equal(t, Icon{Kind: IconDashicon, Value: "megaphone"}, icon)
}

func TestIconResolver_SVG(t *testing.T) {
	icon, ok := testIcons().Resolve(uploadsURL + "/2024/05/star.svg")
	assert.True(t, ok)
	assert.Equal(t, IconSVG, icon.Kind)
	assert.Contains(t, icon.Value, "<svg")
}

func TestIconResolver_Absent(t *testing.T) {
	tests := []struct {
		name string
		ref  string
	}{
		{"empty", ""},
		{"missing file", uploadsURL + "/2024/05/missing.svg"},
		{"empty file", uploadsURL + "/2024/05/empty.svg"},
		{"other host", "https://cdn.example.net/2024/05/star.svg"},
		{"traversal", uploadsURL + "/../secrets.svg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := testIcons().Resolve(tt.ref)
			assert.False(t, ok)
		})
	}
}

func TestIconResolver_NoUploadDir(t *testing.T) {
	r := NewIconResolver(UploadDir{BaseURL: uploadsURL})
	_, ok := r.Resolve(uploadsURL + "/2024/05/star.svg")
	assert.False(t, ok)
}

func TestIconResolver_DiskDir(t *testing.T) {
	dir := t.TempDir()
	r := NewIconResolver(UploadDir{BaseURL: uploadsURL, BaseDir: dir})
	_, ok := r.Resolve(uploadsURL + "/nothing-here.svg")
	assert.False(t, ok)
}
