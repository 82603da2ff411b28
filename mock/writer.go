package mock

import (
	"context"

	"github.com/fwojciec/annowiki"
)

var _ annowiki.RecordWriter = (*RecordWriter)(nil)

// RecordWriter is a mock implementation of annowiki.RecordWriter.
type RecordWriter struct {
	WriteFn func(ctx context.Context, rec annowiki.Record) error
	CloseFn func() error
}

func (w *RecordWriter) Write(ctx context.Context, rec annowiki.Record) error {
	return w.WriteFn(ctx, rec)
}

func (w *RecordWriter) Close() error {
	return w.CloseFn()
}
