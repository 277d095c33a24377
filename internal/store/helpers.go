// ABOUTME: LIKE pattern builders for title search and log path filters.
// ABOUTME: User text is escaped so it only ever matches literally.

package store

import "strings"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likeContains matches s anywhere. Use with ESCAPE '\'.
func likeContains(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// likePrefix matches values starting with s. Use with ESCAPE '\'.
func likePrefix(s string) string {
	return likeEscaper.Replace(s) + "%"
}
