package annowiki

import "strings"

// redirectKeyword marks redirect pages. Matched case-insensitively at the start
// of a line or of the whole compacted text.
const redirectKeyword = "#redirect"

// isRedirectLine reports whether the line starts with the redirect keyword.
func isRedirectLine(line string) bool {
	return len(line) >= len(redirectKeyword) &&
		strings.EqualFold(line[:len(redirectKeyword)], redirectKeyword)
}

// trimMarker strips the two-character markers wrapping title and heading lines.
func trimMarker(line string) string {
	if len(line) <= 4 {
		return ""
	}
	return line[2 : len(line)-2]
}

// sentence appends terminal punctuation to a title or heading if it has none,
// so it reads as a lead sentence.
func sentence(title string) string {
	if title == "" {
		return title
	}
	switch title[len(title)-1] {
	case '.', '!', '?':
		return title
	}
	return title + "."
}

// compact reduces cleaned markup to a title sentence plus substantive
// paragraphs. The returned bool is false when the page holds nothing beyond its
// lead sentence. A line starting with the redirect keyword short-circuits: the
// returned text is that single line.
func (e *Extractor) compact(text string) (string, bool) {
	var page, paragraph []string

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "++") {
			page = []string{sentence(trimMarker(line))}
			continue
		}
		if strings.HasPrefix(line, "==") {
			// Headings flush the previous paragraph; single-line sections
			// carry no content and are dropped.
			if len(paragraph) > 1 {
				page = append(page, paragraph...)
			}
			paragraph = []string{sentence(trimMarker(line))}
			continue
		}
		if isRedirectLine(line) {
			return line, true
		}

		drop := false
		switch line[0] {
		case '*':
			if e.cfg.DropLists {
				drop = true
			} else {
				line = strings.Trim(line, "* ")
			}
		case '#':
			if e.cfg.DropEnumerations {
				drop = true
			} else {
				line = strings.Trim(line, "# ")
			}
		case ':':
			if e.cfg.DropIndents {
				drop = true
			} else {
				line = strings.Trim(line, ": ")
			}
		case ';':
			line = strings.Trim(line, "; ")
		case '{', '|':
			if e.cfg.DropTables {
				drop = true
			} else {
				line = strings.Trim(line, "{| ")
			}
		}
		if drop || line == "" {
			continue
		}

		// Lines reduced to punctuation, and short fragments without a
		// placeholder token, carry no content.
		if strings.Trim(line, ".- ") == "" {
			continue
		}
		if !strings.Contains(line, "_") && len(strings.Fields(line)) < 6 {
			continue
		}

		if len(paragraph) == 0 {
			page = append(page, line)
		} else {
			paragraph = append(paragraph, line)
		}
	}

	if len(paragraph) > 1 {
		page = append(page, paragraph...)
	} else if len(page) == 1 {
		return "", false
	}

	return strings.Join(page, "\n"), true
}
