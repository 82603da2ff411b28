package extract

import (
	"context"
	"io"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/fwojciec/annowiki"
)

// DefaultBatchSize is the number of page records dispatched to the worker pool
// at a time. One batch is fully transformed and written before the next is
// read, which bounds peak memory to one batch and keeps output order identical
// to input order.
const DefaultBatchSize = 10000

// DefaultWorkers is the worker pool size used when none is configured.
const DefaultWorkers = 4

// Stats accumulates counts over a run.
type Stats struct {
	Pages      int // page records read
	Articles   int // article records written
	Redirects  int // redirect records written
	Categories int // category membership records written
	Filtered   int // pages dropped by intentional filters (incl. duplicates)
	Failed     int // pages whose transformation returned an error
}

// ProgressEvent reports batch completion.
type ProgressEvent struct {
	Pages int // total pages processed so far
}

// ProgressFunc receives progress events after each batch is written.
type ProgressFunc func(ProgressEvent)

// Runner drives the extraction: it reads page records, transforms each batch in
// parallel, and writes results sequentially in input order. A failing record is
// logged and skipped; the rest of its batch proceeds. Writer failures are
// fatal.
type Runner struct {
	Extractor annowiki.PageProcessor
	Writer    annowiki.RecordWriter

	Workers   int          // worker pool size; DefaultWorkers if <= 0
	BatchSize int          // records per batch; DefaultBatchSize if <= 0
	Logger    *slog.Logger // optional
	Dedupe    *Dedupe      // optional duplicate-record filter
	Progress  ProgressFunc // optional
}

// result carries one page's outcome from a worker back to the writer loop.
type result struct {
	rec annowiki.Record
	err error
}

// Run processes the dump stream until EOF and returns the accumulated stats.
// The returned stats are valid even when err is non-nil.
func (r *Runner) Run(ctx context.Context, input io.Reader) (*Stats, error) {
	stats := &Stats{}
	if r.Extractor == nil {
		return stats, annowiki.Errorf(annowiki.EINVALID, "runner extractor required")
	}
	if r.Writer == nil {
		return stats, annowiki.Errorf(annowiki.EINVALID, "runner writer required")
	}

	batchSize := r.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	reader := NewPageReader(input)
	batch := make([][]string, 0, batchSize)
	for reader.Scan() {
		batch = append(batch, reader.Page())
		if len(batch) == batchSize {
			if err := r.flush(ctx, batch, stats); err != nil {
				return stats, err
			}
			batch = batch[:0]
		}
	}
	if err := reader.Err(); err != nil {
		return stats, annowiki.Errorf(annowiki.EINTERNAL, "read dump: %v", err)
	}
	if len(batch) > 0 {
		if err := r.flush(ctx, batch, stats); err != nil {
			return stats, err
		}
	}
	return stats, nil
}

// flush transforms one batch in parallel, then writes its results in input
// order.
func (r *Runner) flush(ctx context.Context, batch [][]string, stats *Stats) error {
	workers := r.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}

	// Each worker writes only its own slot, so no locking is needed.
	results := make([]result, len(batch))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, page := range batch {
		i, page := i, page
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rec, err := r.Extractor.ProcessPage(page)
			results[i] = result{rec: rec, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, res := range results {
		stats.Pages++
		if res.err != nil {
			stats.Failed++
			if r.Logger != nil {
				r.Logger.Error("page transformation failed", "error", res.err)
			}
			continue
		}
		if res.rec == nil {
			stats.Filtered++
			continue
		}
		if r.Dedupe != nil && r.Dedupe.Seen(recordURL(res.rec)) {
			stats.Filtered++
			continue
		}
		if err := r.Writer.Write(ctx, res.rec); err != nil {
			return err
		}
		switch res.rec.(type) {
		case *annowiki.Article:
			stats.Articles++
		case *annowiki.Redirect:
			stats.Redirects++
		case *annowiki.CategoryMembership:
			stats.Categories++
		}
	}

	if r.Progress != nil {
		r.Progress(ProgressEvent{Pages: stats.Pages})
	}
	return nil
}

// recordURL returns the source page URL of any record kind.
func recordURL(rec annowiki.Record) string {
	switch rec := rec.(type) {
	case *annowiki.Article:
		return rec.URL
	case *annowiki.Redirect:
		return rec.Source
	case *annowiki.CategoryMembership:
		return rec.Article
	}
	return ""
}
