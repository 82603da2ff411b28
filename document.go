package annowiki

import "context"

// Annotation records one internal link occurrence in the final text of a
// document. Offset is the character position of the surface form in the text as
// it reads after anchor substitution.
type Annotation struct {
	URI         string `json:"uri"`
	SurfaceForm string `json:"surface_form"`
	Offset      int    `json:"offset"`
}

// Document is a fully processed page: cleaned plain text with resolved link
// annotations and the category targets encountered in the source markup.
// The field order here fixes the serialization order of article records.
type Document struct {
	ID          int          `json:"id"`
	URL         string       `json:"url"`
	Title       string       `json:"title"`
	Text        string       `json:"text"`
	Annotations []Annotation `json:"annotations"`
	Categories  []string     `json:"categories"`
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.Title == "" {
		return Errorf(EINVALID, "document title required")
	}
	if d.URL == "" {
		return Errorf(EINVALID, "document URL required")
	}
	return nil
}

// Record is one unit of pipeline output. Exactly one of Article, Redirect, or
// CategoryMembership is produced per surviving page.
type Record interface {
	record()
}

// Article is a serialized document destined for a shard file.
type Article struct {
	URL  string
	Data []byte // one JSON line, newline-terminated
}

// Redirect maps a source page URL to the canonical URL of its target.
type Redirect struct {
	Source string
	Target string
}

// CategoryMembership lists the parent category URLs of a category page.
type CategoryMembership struct {
	Article string
	Parents []string
}

func (*Article) record()            {}
func (*Redirect) record()           {}
func (*CategoryMembership) record() {}

// RecordWriter consumes classified records. Implementations own all output
// state and are used by a single sequential caller; they need not be safe for
// concurrent use.
type RecordWriter interface {
	Write(ctx context.Context, rec Record) error
	Close() error
}
