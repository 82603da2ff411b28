// Package extract streams page records out of a wiki dump and fans them out to
// a worker pool running the extraction pipeline, handing results in input order
// to a single sequential record writer.
package extract

import (
	"bufio"
	"io"
	"strings"
)

// maxLineBytes bounds a single dump line. Article text lines can be large but
// are split at paragraph boundaries in practice; this leaves generous headroom.
const maxLineBytes = 4 * 1024 * 1024

// PageReader recovers page records from a line-oriented dump stream. Records
// are delimited by literal <page> / </page> lines; page boundaries carry no
// other framing, so a single reader owns record segmentation.
type PageReader struct {
	s    *bufio.Scanner
	cur  []string
	page []string
}

// NewPageReader returns a PageReader over r.
func NewPageReader(r io.Reader) *PageReader {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 64*1024), maxLineBytes)
	return &PageReader{s: s}
}

// Scan advances to the next complete page record, discarding any lines outside
// page delimiters. It returns false at end of input or on a read error.
func (r *PageReader) Scan() bool {
	r.page = nil
	for r.s.Scan() {
		line := strings.TrimSpace(r.s.Text())
		switch line {
		case "<page>":
			r.cur = []string{}
		case "</page>":
			if r.cur == nil {
				continue
			}
			r.page = r.cur
			r.cur = nil
			return true
		default:
			if r.cur != nil {
				r.cur = append(r.cur, line)
			}
		}
	}
	return false
}

// Page returns the lines of the record found by the last call to Scan.
func (r *PageReader) Page() []string { return r.page }

// Err returns the first error encountered while reading.
func (r *PageReader) Err() error { return r.s.Err() }
