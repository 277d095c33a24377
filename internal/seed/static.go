// ABOUTME: Static block catalog used when no OpenAI API key is available.
// ABOUTME: Covers every mode, host and custom categories, and one draft.

package seed

var catalog = []DefinitionData{
	{Title: "Hero Banner", Slug: "hero-banner", Description: "Full-width heading with background image and a primary button.", Category: "Marketing", Icon: "cover-image", PreviewImage: "https://placehold.co/800x400?text=Hero+Banner", Mode: "preview"},
	{Title: "Call to Action", Slug: "cta", Description: "Short pitch with one button, for the end of a page.", Category: "Marketing", Icon: "megaphone", Mode: "preview"},
	{Title: "Pricing Table", Description: "Three plan columns with a highlighted recommendation.", Category: "Marketing", Icon: "cart", PreviewImage: "https://placehold.co/800x400?text=Pricing", Mode: "auto"},
	{Title: "Testimonial", Description: "Customer quote with name, role and photo.", Category: "Social Proof", Icon: "testimonial", Mode: "preview"},
	{Title: "Logo Wall", Slug: "logo-wall", Description: "Grid of partner logos.", Category: "Social Proof", Icon: "grid-view", Mode: "edit"},
	{Title: "Feature Grid", Description: "Icon, heading and text cards in a responsive grid.", Category: "Layout", Icon: "screenoptions", Mode: "auto"},
	{Title: "Two Column Split", Slug: "split", Description: "Image on one side, rich text on the other.", Category: "Layout", Icon: "layout", Mode: "preview"},
	{Title: "FAQ Accordion", Slug: "faq", Description: "Collapsible question and answer list.", Category: "Text", Icon: "editor-help", Mode: "edit"},
	{Title: "Video Embed", Description: "Responsive player for hosted or uploaded video.", Category: "Media", Icon: "video-alt3", PreviewImage: "https://placehold.co/800x450?text=Video", Mode: "preview"},
	{Title: "Image Gallery", Description: "Lightbox gallery with captions.", Category: "Media", Icon: "images-alt2", Mode: "auto"},
	{Title: "Newsletter Signup", Slug: "newsletter", Description: "Email field and consent checkbox.", Category: "Forms", Icon: "email", Mode: "edit"},
	{Title: "Team Members", Description: "Photo cards for staff profiles.", Category: "About", Icon: "admin-users", Mode: "preview"},
	{Title: "Event Countdown", Slug: "countdown", Description: "Timer counting down to a launch date.", Category: "Marketing", Icon: "clock", Mode: "preview", Draft: true},
}

// staticDefinitions returns the first count catalog entries, or all of them
// when count is zero, negative or larger than the catalog.
func staticDefinitions(count int) []DefinitionData {
	if count <= 0 || count > len(catalog) {
		count = len(catalog)
	}
	out := make([]DefinitionData, count)
	copy(out, catalog[:count])
	return out
}
