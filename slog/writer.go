// Package slog provides logging decorators for annowiki interfaces.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/annowiki"
)

// Ensure LoggingWriter implements annowiki.RecordWriter.
var _ annowiki.RecordWriter = (*LoggingWriter)(nil)

// LoggingWriter wraps a RecordWriter with summary logging: per-kind record
// counts and total duration, reported when the writer is closed.
type LoggingWriter struct {
	next   annowiki.RecordWriter
	logger *slog.Logger
	begin  time.Time

	articles   int
	redirects  int
	categories int
}

// NewLoggingWriter creates a new LoggingWriter.
func NewLoggingWriter(next annowiki.RecordWriter, logger *slog.Logger) *LoggingWriter {
	return &LoggingWriter{next: next, logger: logger, begin: time.Now()}
}

// Write counts the record by kind and delegates to the wrapped writer.
func (w *LoggingWriter) Write(ctx context.Context, rec annowiki.Record) error {
	switch rec.(type) {
	case *annowiki.Article:
		w.articles++
	case *annowiki.Redirect:
		w.redirects++
	case *annowiki.CategoryMembership:
		w.categories++
	}
	return w.next.Write(ctx, rec)
}

// Close closes the wrapped writer and logs the run summary.
func (w *LoggingWriter) Close() error {
	err := w.next.Close()
	w.logger.Info("output closed",
		"articles", w.articles,
		"redirects", w.redirects,
		"categories", w.categories,
		"duration", time.Since(w.begin),
	)
	return err
}
