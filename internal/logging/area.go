// ABOUTME: Area detection for request logging.
// ABOUTME: Determines which part of the service a request belongs to based on URL path.

package logging

import "strings"

const (
	AreaRender  = "render"
	AreaAPI     = "api"
	AreaAdmin   = "admin"
	AreaUploads = "uploads"
	AreaOther   = "other"
)

// AreaFromPath determines which area handles a given path
func AreaFromPath(path string) string {
	switch {
	case path == "/api/render" || strings.HasPrefix(path, "/api/render/"):
		return AreaRender
	case path == "/api" || strings.HasPrefix(path, "/api/"):
		return AreaAPI
	case path == "/admin" || strings.HasPrefix(path, "/admin/"):
		return AreaAdmin
	case strings.HasPrefix(path, "/uploads/"):
		return AreaUploads
	}
	return AreaOther
}
