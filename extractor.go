package annowiki

import (
	"encoding/json"
	"strconv"
	"strings"
	"unicode"
)

// rejectedTitlePrefixes are title namespaces excluded from extraction entirely.
// Matched case-sensitively as prefixes.
var rejectedTitlePrefixes = []string{
	"Image:", "File:", "Wikipedia:", "Template:", "Portal:", "User:", "Help:",
	"Book:", "Draft:", "Module:", "TimedText:", "MediaWiki:",
}

// textPreambleLen is the length of the fixed attribute preamble on the line
// opening a text block: `<text xml:space="preserve">`.
const textPreambleLen = 27

// categoryNamespace prefixes category page titles, matched case-insensitively.
const categoryNamespace = "category:"

// PageProcessor converts the lines of one raw page record into at most one
// output record. Implementations must be safe for concurrent use.
type PageProcessor interface {
	ProcessPage(lines []string) (Record, error)
}

// Ensure Extractor implements PageProcessor at compile time.
var _ PageProcessor = (*Extractor)(nil)

// Extractor runs the full per-page pipeline: markup cleanup, compaction, link
// annotation, and classification. All state is immutable after construction, so
// a single Extractor is shared by all workers.
type Extractor struct {
	cfg     Config
	cleaner *Cleaner
}

// NewExtractor returns an Extractor for the given policy.
func NewExtractor(cfg Config) (*Extractor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Extractor{cfg: cfg, cleaner: NewCleaner()}, nil
}

// ProcessPage converts the lines of one raw page record into at most one
// output record. A nil record with a nil error means the page was filtered
// out: excluded namespace, a redirect without a resolvable target, or too
// little content after compaction.
func (e *Extractor) ProcessPage(lines []string) (Record, error) {
	doc, raw := e.parsePage(lines)
	if doc == nil {
		return nil, nil
	}

	cleaned, categories := e.cleaner.Clean(raw)
	if categories == nil {
		categories = []string{}
	}
	doc.Categories = categories

	compacted, ok := e.compact(cleaned)
	if !ok {
		// Category pages often hold nothing beyond their category links;
		// their membership is still worth emitting.
		if isCategoryTitle(doc.Title) && len(categories) > 0 {
			return e.membership(doc), nil
		}
		return nil, nil
	}

	text, annotations := annotate(compacted, e.cfg.KeepAnchors)
	doc.Text = text
	doc.Annotations = annotations

	return e.classify(doc)
}

// parsePage extracts id, title, and the raw text accumulator from the lines of
// a page record. Returns nil when the title is missing or belongs to an
// excluded namespace. The title is embedded as a ++title++ marker line and
// heading lines are rewrapped into canonical ==heading== form.
func (e *Extractor) parsePage(lines []string) (*Document, string) {
	doc := &Document{}
	var text strings.Builder

	for _, line := range lines {
		if line == "" {
			continue
		}

		if doc.ID == 0 && strings.HasPrefix(line, "<id>") && strings.HasSuffix(line, "</id>") {
			if id, err := strconv.Atoi(line[4 : len(line)-5]); err == nil {
				doc.ID = id
			}
			continue
		}
		if doc.URL == "" && strings.HasPrefix(line, "<title>") && strings.HasSuffix(line, "</title>") {
			title := strings.ReplaceAll(line[7:len(line)-8], "&amp;", "&")
			if rejectedTitle(title) {
				return nil, ""
			}
			doc.Title = title
			doc.URL = PageURL(e.cfg.URLPrefix, title)
			text.WriteString("++" + title + "++")
			continue
		}

		if strings.HasPrefix(line, "<text") {
			// One-line text blocks close on the same line; usually redirects.
			if strings.HasSuffix(line, "</text>") {
				end := len(line) - len("</text>")
				if end <= textPreambleLen {
					continue
				}
				line = line[textPreambleLen:end]
			} else if len(line) > textPreambleLen {
				line = line[textPreambleLen:]
			} else {
				continue
			}
			if line == "" {
				continue
			}
		} else if strings.HasSuffix(line, "</text>") {
			line = line[:len(line)-len("</text>")]
			if line == "" {
				continue
			}
		} else if line[0] == '<' {
			// Metadata node.
			continue
		} else if line[0] == '=' {
			line = "==" + strings.Trim(line, "= ") + "=="
		}

		text.WriteString("\n")
		text.WriteString(line)
	}

	if doc.Title == "" {
		return nil, ""
	}
	return doc, text.String()
}

// isCategoryTitle reports whether the title names a category page.
func isCategoryTitle(title string) bool {
	return strings.HasPrefix(strings.ToLower(title), categoryNamespace)
}

// membership canonicalizes the document's category set into a membership
// record.
func (e *Extractor) membership(doc *Document) *CategoryMembership {
	parents := make([]string, 0, len(doc.Categories))
	for _, c := range doc.Categories {
		parents = append(parents, PageURL(e.cfg.URLPrefix, c))
	}
	return &CategoryMembership{Article: doc.URL, Parents: parents}
}

// rejectedTitle reports whether the title belongs to an excluded namespace.
func rejectedTitle(title string) bool {
	for _, prefix := range rejectedTitlePrefixes {
		if strings.HasPrefix(title, prefix) {
			return true
		}
	}
	return false
}

// classify decides the output kind of a processed document.
func (e *Extractor) classify(doc *Document) (Record, error) {
	trimmed := strings.TrimLeftFunc(doc.Text, unicode.IsSpace)
	if isRedirectLine(trimmed) {
		if len(doc.Annotations) == 0 {
			// Malformed redirect: no resolvable target.
			return nil, nil
		}
		return &Redirect{
			Source: doc.URL,
			Target: PageURL(e.cfg.URLPrefix, doc.Annotations[0].URI),
		}, nil
	}

	if isCategoryTitle(doc.Title) {
		return e.membership(doc), nil
	}

	if err := doc.Validate(); err != nil {
		return nil, err
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, Errorf(EINTERNAL, "serialize %s: %v", doc.URL, err)
	}
	return &Article{URL: doc.URL, Data: append(data, '\n')}, nil
}
