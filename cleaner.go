package annowiki

import (
	"fmt"
	"regexp"
	"strings"
)

// Tag and prefix sets driving the cleanup passes. The cleaner is deliberately
// heuristic: it recognizes the markup that actually occurs in dumps rather than
// parsing the grammar.
var (
	// garbageTags delimit blocks removed together with their contents.
	garbageTags = []string{
		"ref", "gallery", "timeline", "noinclude", "pre", "table", "tr", "td",
		"ul", "li", "ol", "dl", "dt", "dd", "menu", "dir",
	}

	// wrapperTags are formatting wrappers whose inner content is kept.
	wrapperTags = []string{
		"nowiki", "cite", "source", "hiero", "div", "font", "span", "strong",
		"strike", "blockquote", "tt", "var", "sup", "sub", "big", "small",
		"center", "h1", "h2", "h3", "em", "b", "i", "u", "a", "s", "p",
	}

	// voidTags appear self-closing or malformed and carry no content.
	voidTags = []string{"references", "ref", "img", "br", "hr", "li", "dt", "dd"}

	// placeholderTags have their blocks replaced by numbered tokens so that the
	// block position survives while the content is discarded.
	placeholderTags = []struct {
		tag   string
		token string
	}{
		{"math", "formula"},
		{"code", "codice"},
	}

	// projectNamespaces are sister-project link prefixes that never resolve to
	// articles.
	projectNamespaces = []string{
		"wikipedia", "mediawiki", "wikiquote", "wikibooks", "wikisource",
		"wiktionary", "wikispecies", "wikinews", "wikiversity", "commons",
		"wikicities", "wikispot",
	}

	// garbageLinkPrefixes mark link targets outside the article namespace.
	garbageLinkPrefixes = []string{
		"image", "category", "file", "http", "https", "simple", "meta",
		"wikipedia", "media", "template", "portal", "user", "wikt", "wikihow",
		"help", "user talk", "special", "s", "b", "v", "q", "?",
	}

	// allowedLinkPrefixes are cross-wiki prefixes stripped from link targets.
	allowedLinkPrefixes = []string{"w:", "en:"}
)

// braceFlattenPasses bounds the brace-span removal. Templates nested deeper
// than this survive as stray braces; a known limitation of the regex approach.
const braceFlattenPasses = 3

type wrapperPattern struct {
	open  *regexp.Regexp
	close *regexp.Regexp
}

type voidPattern struct {
	selfClosing *regexp.Regexp
	malformed   *regexp.Regexp
}

type placeholderPattern struct {
	block *regexp.Regexp
	token string
}

// Cleaner strips wiki markup down to plain text with inline anchor markers.
// All patterns are compiled once at construction; a Cleaner is stateless
// afterwards and safe for concurrent use.
type Cleaner struct {
	comment       *regexp.Regexp
	garbage       []*regexp.Regexp
	wrappers      []wrapperPattern
	voids         []voidPattern
	placeholders  []placeholderPattern
	brace         *regexp.Regexp
	wikilink      *regexp.Regexp
	badLeftLink   *regexp.Regexp
	badRightLink  *regexp.Regexp
	httpLink      *regexp.Regexp
	boldPrefix    *regexp.Regexp
	italicPrefix  *regexp.Regexp
	namedEntity   *regexp.Regexp
	numericEntity *regexp.Regexp
	multiSpace    *regexp.Regexp
	multiDot      *regexp.Regexp
}

// NewCleaner compiles the cleanup patterns.
func NewCleaner() *Cleaner {
	c := &Cleaner{
		comment:       regexp.MustCompile(`(?s)<!--.*?-->`),
		brace:         regexp.MustCompile(`(?s)\{[^{]*?\}`),
		wikilink:      regexp.MustCompile(`(?s)\[\[[^\[]*?\]\]`),
		badLeftLink:   regexp.MustCompile(`(?s)\[[^\[]*?\]\]`),
		badRightLink:  regexp.MustCompile(`(?s)\[\[[^\[]*?\]`),
		httpLink:      regexp.MustCompile(`(?si)\[http.*?\]`),
		boldPrefix:    regexp.MustCompile(`(?s)\w'('''[^\s'][^']*?[^\s']''')[^']`),
		italicPrefix:  regexp.MustCompile(`(?s)\w'(''[^\s'][^']*?[^\s']'')[^']`),
		namedEntity:   regexp.MustCompile(`&[a-zA-Z][a-zA-Z0-9]*;`),
		numericEntity: regexp.MustCompile(`&#\d+;`),
		multiSpace:    regexp.MustCompile(` {2,}`),
		multiDot:      regexp.MustCompile(`\.{4,}`),
	}
	for _, tag := range garbageTags {
		c.garbage = append(c.garbage, regexp.MustCompile(
			fmt.Sprintf(`(?si)<\s*%s(\s*| [^/]+?)>.*?<\s*/\s*%s\s*>`, tag, tag)))
	}
	for _, tag := range wrapperTags {
		c.wrappers = append(c.wrappers, wrapperPattern{
			open:  regexp.MustCompile(fmt.Sprintf(`(?si)<\s*%s(\s*| [^/]+?)>`, tag)),
			close: regexp.MustCompile(fmt.Sprintf(`(?si)<\s*/\s*%s\s*>`, tag)),
		})
	}
	for _, tag := range voidTags {
		c.voids = append(c.voids, voidPattern{
			selfClosing: regexp.MustCompile(fmt.Sprintf(`(?si)<\s*%s(\s*| .+?)/\s*>`, tag)),
			malformed:   regexp.MustCompile(fmt.Sprintf(`(?si)<\s*(/|\\)?\s*%s(\s*| [^/]+?)\\?\s*>`, tag)),
		})
	}
	for _, p := range placeholderTags {
		c.placeholders = append(c.placeholders, placeholderPattern{
			block: regexp.MustCompile(
				fmt.Sprintf(`(?si)<\s*%s(\s*| [^/]+?)>.*?<\s*/\s*%s\s*>`, p.tag, p.tag)),
			token: p.token,
		})
	}
	return c
}

// Clean applies the ordered cleanup passes to raw page markup and returns the
// cleaned text together with the category link targets encountered while
// resolving internal links. Later passes assume earlier ones already collapsed
// structure, so the order is load-bearing.
func (c *Cleaner) Clean(text string) (string, []string) {
	// Make tags recognizable before any tag pass runs.
	s := strings.ReplaceAll(text, "&lt;", "<")
	s = strings.ReplaceAll(s, "&gt;", ">")
	s = strings.ReplaceAll(s, "<<", "«")
	s = strings.ReplaceAll(s, ">>", "»")

	s = c.comment.ReplaceAllString(s, "")
	for _, p := range c.garbage {
		s = p.ReplaceAllString(s, "")
	}
	for _, p := range c.wrappers {
		s = p.open.ReplaceAllString(s, "")
		s = p.close.ReplaceAllString(s, "")
	}
	for _, p := range c.voids {
		s = p.selfClosing.ReplaceAllString(s, "")
		s = p.malformed.ReplaceAllString(s, "")
	}
	for _, p := range c.placeholders {
		n := 0
		s = p.block.ReplaceAllStringFunc(s, func(string) string {
			n++
			return fmt.Sprintf("%s_%d", p.token, n)
		})
	}

	// Flatten template and table braces, then strip brace spans a bounded
	// number of times.
	s = strings.ReplaceAll(s, "{{end box}}", "}")
	s = strings.ReplaceAll(s, "{{", "{")
	s = strings.ReplaceAll(s, "}}", "}")
	s = strings.ReplaceAll(s, "{|", "{")
	s = strings.ReplaceAll(s, "|}", "}")
	for i := 0; i < braceFlattenPasses; i++ {
		s = c.brace.ReplaceAllString(s, "")
	}

	var categories []string
	seen := make(map[string]struct{})
	addCategory := func(target string) {
		if _, ok := seen[target]; ok {
			return
		}
		seen[target] = struct{}{}
		categories = append(categories, target)
	}

	// Well-formed wikilinks; a second pass resolves one level of link-in-link
	// artifacts left by the first.
	s = c.wikilink.ReplaceAllStringFunc(s, func(m string) string {
		target, label := resolveWikilink(m[2:len(m)-2], addCategory)
		return anchorTag(target, label)
	})
	s = c.wikilink.ReplaceAllStringFunc(s, func(m string) string {
		_, label := resolveWikilink(m[2:len(m)-2], nil)
		return label
	})

	// Malformed variants missing a bracket on one side.
	s = c.badLeftLink.ReplaceAllStringFunc(s, func(m string) string {
		target, label := resolveWikilink(m[1:len(m)-2], addCategory)
		return anchorTag(target, label)
	})
	s = c.badRightLink.ReplaceAllStringFunc(s, func(m string) string {
		target, label := resolveWikilink(m[2:len(m)-1], addCategory)
		return anchorTag(target, label)
	})
	s = strings.ReplaceAll(s, "[[", "")
	s = strings.ReplaceAll(s, "]]", "")

	// External links carry no useful surface text.
	s = c.httpLink.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "[]", "")

	// Emphasis markers. A possessive apostrophe directly before a marker would
	// otherwise be absorbed into it.
	for _, m := range c.boldPrefix.FindAllStringSubmatch(s, -1) {
		bold := m[1]
		s = strings.ReplaceAll(s, bold, bold[3:len(bold)-3])
	}
	for _, m := range c.italicPrefix.FindAllStringSubmatch(s, -1) {
		italic := m[1]
		s = strings.ReplaceAll(s, italic, "&quot;"+italic[2:len(italic)-2]+"&quot;")
	}
	s = strings.ReplaceAll(s, "'''", "")
	s = strings.ReplaceAll(s, "''", "&quot;")

	// Entities: literal ampersands first, then the named table, then decimal
	// numeric references.
	s = strings.ReplaceAll(s, "&amp;", "&")
	s = strings.ReplaceAll(s, "&quot;&quot;", "&quot;")
	s = c.namedEntity.ReplaceAllStringFunc(s, func(e string) string {
		if r, ok := charEntities[e]; ok {
			return string(r)
		}
		return e
	})
	s = c.numericEntity.ReplaceAllStringFunc(s, decodeNumericEntity)

	// Whitespace and punctuation artifacts left by the removals above.
	s = strings.ReplaceAll(s, "\t", " ")
	s = c.multiSpace.ReplaceAllString(s, " ")
	s = c.multiDot.ReplaceAllString(s, "...")
	for _, fix := range [...][2]string{
		{" ,", ","}, {" .", "."}, {" :", ":"}, {" ;", ";"},
		{",,", ","}, {",.", "."},
		{"( ", "("}, {" )", ")"}, {"[ ", "["}, {" ]", "]"},
		{"« ", "«"}, {" »", "»"},
	} {
		s = strings.ReplaceAll(s, fix[0], fix[1])
	}

	return s, categories
}

// resolveWikilink splits raw wikilink innards into a link target and display
// text. Category targets are reported through addCategory rather than linked.
// Links into non-article namespaces and cross-language links resolve to
// nothing.
func resolveWikilink(link string, addCategory func(string)) (target, label string) {
	link = strings.TrimPrefix(link, ":")
	lower := strings.ToLower(strings.TrimSpace(link))
	for _, p := range allowedLinkPrefixes {
		if strings.HasPrefix(lower, p) {
			link = link[len(p):]
			break
		}
	}

	parts := strings.Split(link, "|")
	head := strings.ToLower(strings.TrimSpace(parts[0]))
	if addCategory != nil && strings.HasPrefix(head, "category:") {
		addCategory(parts[0])
	}
	for _, p := range garbageLinkPrefixes {
		if strings.HasPrefix(head, p+":") {
			return "", ""
		}
	}
	for _, p := range projectNamespaces {
		if strings.HasPrefix(head, p+":") {
			return "", ""
		}
	}

	// Interlanguage links: a short lowercase alphabetic prefix before a colon.
	if prefix, _, ok := strings.Cut(parts[0], ":"); ok && isLanguageCode(prefix) {
		return "", ""
	}

	switch len(parts) {
	case 1:
		return parts[0], parts[0]
	case 2:
		return parts[0], parts[1]
	}
	return "", ""
}

// isLanguageCode reports whether s looks like an interlanguage link prefix:
// one to three lowercase ASCII letters.
func isLanguageCode(s string) bool {
	if len(s) == 0 || len(s) > 3 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'a' || s[i] > 'z' {
			return false
		}
	}
	return true
}

// anchorTag renders a resolved link as an inline anchor marker. The href is the
// canonical page name without a URL prefix; the classifier re-canonicalizes
// redirect targets with the configured prefix.
func anchorTag(target, label string) string {
	if label == "" {
		return ""
	}
	if target == "" {
		return label
	}
	return `<a href="` + PageURL("", target) + `">` + label + `</a>`
}

// decodeNumericEntity decodes a decimal character reference. Code points at or
// above 0x10000 are dropped.
func decodeNumericEntity(entity string) string {
	n := 0
	for i := 2; i < len(entity)-1; i++ {
		n = n*10 + int(entity[i]-'0')
		if n >= 0x10000 {
			return ""
		}
	}
	return string(rune(n))
}
