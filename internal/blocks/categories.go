// ABOUTME: Merges custom categories referenced by definitions into the host category list.
// ABOUTME: Matching host entries get the custom title; the result is sorted by title.

package blocks

import (
	"sort"

	"github.com/2389/blockyard/internal/slug"
)

// HostCategories is the built-in category list used when no host list is configured.
func HostCategories() []Category {
	return []Category{
		{Slug: "text", Title: "Text"},
		{Slug: "media", Title: "Media"},
		{Slug: "design", Title: "Design"},
		{Slug: "widgets", Title: "Widgets"},
		{Slug: "theme", Title: "Theme"},
		{Slug: "embed", Title: "Embeds"},
		{Slug: "reusable", Title: "Patterns"},
	}
}

// MergeCategories returns host plus the categories named by defs.
//
// For each distinct category slug among defs the first title seen is kept.
// A host entry with that slug gets its Title replaced and nothing else; slugs
// with no host entry are appended. The result is stably sorted by Title using
// byte-wise comparison, so merging the output again with the same defs is a no-op.
func MergeCategories(host []Category, defs []Definition) []Category {
	custom := make(map[string]Category)
	var order []string
	for _, def := range defs {
		title := def.Meta.Category
		if title == "" {
			continue
		}
		s := slug.Normalize(title)
		if s == "" {
			continue
		}
		if _, seen := custom[s]; seen {
			continue
		}
		custom[s] = Category{Slug: s, Title: title}
		order = append(order, s)
	}

	merged := make([]Category, len(host), len(host)+len(order))
	copy(merged, host)

	inHost := make(map[string]bool, len(merged))
	for i := range merged {
		inHost[merged[i].Slug] = true
		if c, ok := custom[merged[i].Slug]; ok {
			merged[i].Title = c.Title
		}
	}
	for _, s := range order {
		if !inHost[s] {
			merged = append(merged, custom[s])
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Title < merged[j].Title
	})
	return merged
}
