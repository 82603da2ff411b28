// Package annowiki converts a streamed wiki database dump into cleaned,
// plain-text, link-annotated documents split across size-bounded output shards
// with index, category, and redirect side files.
//
// This package contains domain types, interfaces, and the pure per-page
// transformation pipeline (markup cleanup, compaction, link annotation,
// classification). Implementations of I/O concerns live in subdirectories
// (e.g., extract/, fs/, graph/).
package annowiki
