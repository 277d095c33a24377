// ABOUTME: Catalog of symbolic icon names the definition editor offers.
// ABOUTME: Lookups are used by the admin form; stored values outside the list are still honored.

package blocks

// Dashicons is the icon grid shown in the definition editor, in display order.
var Dashicons = []string{
	"admin-comments", "admin-generic", "admin-home", "admin-links", "admin-network", "admin-page",
	"admin-plugins", "admin-settings", "admin-site", "admin-site-alt3", "admin-tools", "admin-users",
	"awards", "bank", "beer", "bell", "book-alt", "calendar-alt", "camera-alt", "car", "cart",
	"chart-bar", "chart-pie", "clock", "cloud", "controls-volumeon", "cover-image", "dashboard",
	"dismiss", "download", "edit", "editor-code", "editor-help", "editor-justify", "editor-kitchensink",
	"editor-table", "editor-ul", "editor-video", "ellipsis", "email", "excerpt-view", "feedback", "flag",
	"format-aside", "format-audio", "format-gallery", "format-image", "format-quote", "format-video",
	"games", "grid-view", "hammer", "heading", "heart", "hidden", "id-alt", "images-alt", "images-alt2",
	"index-card", "info", "layout", "lightbulb", "list-view", "location", "lock", "marker", "megaphone",
	"menu-alt", "microphone", "no", "open-folder", "palmtree", "paperclip", "performance", "pets",
	"phone", "plus", "post-trash", "remove", "rss", "saved", "schedule", "screenoptions", "search",
	"shield-alt", "star-filled", "sticky", "tablet", "tag", "tagcloud", "testimonial", "text", "trash",
	"update-alt", "upload", "video-alt2", "video-alt3", "visibility", "welcome-widgets-menus",
	"welcome-write-blog",
}

var dashiconSet = func() map[string]bool {
	set := make(map[string]bool, len(Dashicons))
	for _, name := range Dashicons {
		set[name] = true
	}
	return set
}()

// KnownDashicon reports whether name is in the editor catalog.
func KnownDashicon(name string) bool {
	return dashiconSet[name]
}
