// ABOUTME: Save-path sanitization for definition meta values.
// ABOUTME: Values are cleaned as plain text; the slug is also normalized.

package blocks

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/2389/blockyard/internal/slug"
)

var (
	tagPattern   = regexp.MustCompile(`<[^>]*>`)
	spacePattern = regexp.MustCompile(`\s+`)
)

// SanitizeText reduces s to a single line of plain text: invalid UTF-8 and
// markup are dropped, whitespace runs collapse to one space, ends are trimmed.
func SanitizeText(s string) string {
	s = strings.ToValidUTF8(s, "")
	s = tagPattern.ReplaceAllString(s, "")
	s = strings.Map(func(r rune) rune {
		if r < 0x20 && r != '\t' && r != '\n' && r != '\r' {
			return -1
		}
		if r == 0x7f {
			return -1
		}
		return r
	}, s)
	s = spacePattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// SaveMeta writes each submitted SavedKeys value for the definition id.
// Keys missing from values are left untouched. Mode is stored as submitted;
// the loader corrects unknown modes.
func SaveMeta(ctx context.Context, w MetaWriter, id string, values map[MetaKey]string) error {
	for _, key := range SavedKeys {
		raw, ok := values[key]
		if !ok {
			continue
		}
		value := SanitizeText(raw)
		if key == MetaSlug {
			value = slug.Normalize(value)
		}
		if err := w.SetMeta(ctx, id, key, value); err != nil {
			return fmt.Errorf("save %s: %w", key, err)
		}
	}
	return nil
}
