// ABOUTME: Slug normalization for block and category identifiers.
// ABOUTME: Produces lowercase, hyphen-separated, URL-safe slugs from free text.

package slug

import (
	"regexp"
	"strings"
)

var (
	disallowed = regexp.MustCompile(`[^a-z0-9\s-]`)
	whitespace = regexp.MustCompile(`\s+`)
	hyphens    = regexp.MustCompile(`-+`)
	canonical  = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

// Normalize turns arbitrary text into a slug. It never fails; input with no
// usable characters yields the empty string. Normalize(Normalize(s)) == Normalize(s).
func Normalize(text string) string {
	s := strings.TrimSpace(strings.ToLower(text))
	s = disallowed.ReplaceAllString(s, "")
	s = whitespace.ReplaceAllString(s, "-")
	s = hyphens.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// Valid reports whether s is already in canonical slug form.
func Valid(s string) bool {
	return canonical.MatchString(s)
}
