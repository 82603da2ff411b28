package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/annowiki"
	"github.com/fwojciec/annowiki/mock"
	annoslog "github.com/fwojciec/annowiki/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingWriter_Write_delegates(t *testing.T) {
	t.Parallel()

	var got []annowiki.Record
	next := &mock.RecordWriter{
		WriteFn: func(ctx context.Context, rec annowiki.Record) error {
			got = append(got, rec)
			return nil
		},
		CloseFn: func() error { return nil },
	}

	var buf bytes.Buffer
	w := annoslog.NewLoggingWriter(next, slog.New(slog.NewTextHandler(&buf, nil)))

	rec := &annowiki.Article{URL: "u", Data: []byte("a\n")}
	require.NoError(t, w.Write(context.Background(), rec))

	require.Len(t, got, 1)
	assert.Same(t, rec, got[0].(*annowiki.Article))
}

func TestLoggingWriter_Write_propagatesError(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("boom")
	next := &mock.RecordWriter{
		WriteFn: func(ctx context.Context, rec annowiki.Record) error { return wantErr },
	}

	var buf bytes.Buffer
	w := annoslog.NewLoggingWriter(next, slog.New(slog.NewTextHandler(&buf, nil)))

	err := w.Write(context.Background(), &annowiki.Redirect{})
	require.ErrorIs(t, err, wantErr)
}

func TestLoggingWriter_Close_logsCounts(t *testing.T) {
	t.Parallel()

	closed := false
	next := &mock.RecordWriter{
		WriteFn: func(ctx context.Context, rec annowiki.Record) error { return nil },
		CloseFn: func() error {
			closed = true
			return nil
		},
	}

	var buf bytes.Buffer
	w := annoslog.NewLoggingWriter(next, slog.New(slog.NewTextHandler(&buf, nil)))

	ctx := context.Background()
	require.NoError(t, w.Write(ctx, &annowiki.Article{URL: "u", Data: []byte("a\n")}))
	require.NoError(t, w.Write(ctx, &annowiki.Redirect{Source: "s", Target: "t"}))
	require.NoError(t, w.Write(ctx, &annowiki.Redirect{Source: "s2", Target: "t"}))
	require.NoError(t, w.Write(ctx, &annowiki.CategoryMembership{Article: "c"}))
	require.NoError(t, w.Close())

	assert.True(t, closed)
	out := buf.String()
	assert.Contains(t, out, `msg="output closed"`)
	assert.Contains(t, out, "articles=1")
	assert.Contains(t, out, "redirects=2")
	assert.Contains(t, out, "categories=1")
}
