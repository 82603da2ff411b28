package annowiki

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// anchorPattern locates the inline anchor markers emitted by the cleaner.
// Matches are non-overlapping and strictly left to right.
var anchorPattern = regexp.MustCompile(`<a href="([^"]+)">([^>]+)</a>`)

// annotate resolves anchor markers into offset-tagged annotations and replaces
// every marker with its display text. Offsets are character positions in the
// text as it reads after substitution, so the running rune-count difference
// between marker and display text is subtracted from each match position.
// Targets containing a fragment are skipped unless keepAnchors is set.
func annotate(text string, keepAnchors bool) (string, []Annotation) {
	annotations := []Annotation{}
	delta := 0
	for _, m := range anchorPattern.FindAllStringSubmatchIndex(text, -1) {
		uri := text[m[2]:m[3]]
		surface := text[m[4]:m[5]]
		if keepAnchors || !strings.Contains(uri, "#") {
			annotations = append(annotations, Annotation{
				URI:         uri,
				SurfaceForm: surface,
				Offset:      utf8.RuneCountInString(text[:m[0]]) - delta,
			})
		}
		delta += utf8.RuneCountInString(text[m[0]:m[1]]) - utf8.RuneCountInString(surface)
	}
	return anchorPattern.ReplaceAllString(text, "${2}"), annotations
}
