// ABOUTME: Icon reference resolution for block descriptors.
// ABOUTME: Maps uploaded SVG URLs to files under the upload directory; missing files resolve to nothing.

package blocks

import (
	"io/fs"
	"log"
	"os"
	"strings"
)

// UploadDir maps the public upload URL prefix onto a local directory.
type UploadDir struct {
	BaseURL string
	BaseDir string
}

// IconResolver turns a stored icon reference into an Icon.
type IconResolver struct {
	baseURL string
	files   fs.FS
}

// NewIconResolver reads SVG assets from uploads.BaseDir on disk.
func NewIconResolver(uploads UploadDir) *IconResolver {
	var files fs.FS
	if uploads.BaseDir != "" {
		files = os.DirFS(uploads.BaseDir)
	}
	return NewIconResolverFS(uploads.BaseURL, files)
}

// NewIconResolverFS reads SVG assets from files, which is rooted at the
// directory baseURL points to.
func NewIconResolverFS(baseURL string, files fs.FS) *IconResolver {
	return &IconResolver{
		baseURL: strings.TrimRight(baseURL, "/"),
		files:   files,
	}
}

// Resolve returns the icon for ref. Symbolic names come back unchanged.
// References ending in ".svg" resolve to the file contents; the second
// return value is false when ref is empty or the asset cannot be read.
func (r *IconResolver) Resolve(ref string) (Icon, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return Icon{}, false
	}
	if !strings.HasSuffix(ref, ".svg") {
		return Icon{Kind: IconDashicon, Value: ref}, true
	}

	markup, ok := r.readSVG(ref)
	if !ok {
		log.Printf("icon asset not found, using fallback: %s", ref)
		return Icon{}, false
	}
	return Icon{Kind: IconSVG, Value: markup}, true
}

func (r *IconResolver) readSVG(ref string) (string, bool) {
	if r.files == nil || r.baseURL == "" {
		return "", false
	}
	rel, found := strings.CutPrefix(ref, r.baseURL+"/")
	if !found || !fs.ValidPath(rel) {
		return "", false
	}
	data, err := fs.ReadFile(r.files, rel)
	if err != nil || len(strings.TrimSpace(string(data))) == 0 {
		return "", false
	}
	return string(data), true
}
