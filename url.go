package annowiki

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// PageURL returns the canonical URL for a page title under the given base
// prefix: spaces become underscores and the first rune is upper-cased, matching
// the canonical form used by the wiki software.
func PageURL(prefix, title string) string {
	t := strings.ReplaceAll(title, " ", "_")
	if t == "" {
		return prefix
	}
	r, size := utf8.DecodeRuneInString(t)
	return prefix + string(unicode.ToUpper(r)) + t[size:]
}
