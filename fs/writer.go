// Package fs provides file-based output for extracted records: rotating
// size-bounded shard files plus index, category, and redirect side files.
package fs

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"

	"github.com/fwojciec/annowiki"
)

// Shard sizing.
const (
	// MinShardBytes is the smallest allowed target shard size.
	MinShardBytes = 200 * 1024

	// DefaultShardBytes is the target shard size used when none is configured.
	DefaultShardBytes = 500 * 1024

	// filesPerDir is the number of shard files per output directory.
	filesPerDir = 100
)

// Side file names, relative to the output root.
const (
	IndexFile      = "index.tsv"
	CategoriesFile = "categories.tsv"
	RedirectsFile  = "redirects.tsv"
)

// Ensure ShardedWriter implements annowiki.RecordWriter at compile time.
var _ annowiki.RecordWriter = (*ShardedWriter)(nil)

// ShardedWriter serializes classified records under a root directory. It is
// the sole owner of all output handles and shard state; callers must use it
// from a single goroutine.
//
// A new shard opens before a write would push the current shard past the
// configured size, and a new two-letter directory opens every 100 shard files.
type ShardedWriter struct {
	root     string
	maxBytes int
	compress bool

	dirIndex  int
	fileIndex int
	curBytes  int
	lineNum   int

	shard      io.WriteCloser
	shardPath  string // relative to root
	index      *os.File
	categories *os.File
	redirects  *os.File
	digest     *xxhash.Digest
}

// NewShardedWriter creates the output layout under root and opens the first
// shard and the three side files. The target shard size has a floor of
// MinShardBytes.
func NewShardedWriter(root string, maxBytes int, compress bool) (*ShardedWriter, error) {
	if maxBytes < MinShardBytes {
		return nil, annowiki.Errorf(annowiki.EINVALID,
			"shard size %d below %d byte minimum", maxBytes, MinShardBytes)
	}

	w := &ShardedWriter{
		root:      root,
		maxBytes:  maxBytes,
		compress:  compress,
		fileIndex: -1,
		digest:    xxhash.New(),
	}
	if err := w.openNextShard(); err != nil {
		return nil, err
	}

	var err error
	if w.index, err = os.Create(filepath.Join(root, IndexFile)); err != nil {
		_ = w.Close()
		return nil, annowiki.Errorf(annowiki.EINTERNAL, "create index file: %v", err)
	}
	if w.categories, err = os.Create(filepath.Join(root, CategoriesFile)); err != nil {
		_ = w.Close()
		return nil, annowiki.Errorf(annowiki.EINTERNAL, "create categories file: %v", err)
	}
	if w.redirects, err = os.Create(filepath.Join(root, RedirectsFile)); err != nil {
		_ = w.Close()
		return nil, annowiki.Errorf(annowiki.EINTERNAL, "create redirects file: %v", err)
	}
	return w, nil
}

// Write routes a record to the shard or the matching side file.
func (w *ShardedWriter) Write(ctx context.Context, rec annowiki.Record) error {
	switch rec := rec.(type) {
	case *annowiki.Redirect:
		_, err := fmt.Fprintf(w.redirects, "%s\t%s\n", rec.Source, rec.Target)
		return err
	case *annowiki.CategoryMembership:
		for _, parent := range rec.Parents {
			if _, err := fmt.Fprintf(w.categories, "%s\t%s\n", rec.Article, parent); err != nil {
				return err
			}
		}
		return nil
	case *annowiki.Article:
		return w.writeArticle(rec)
	}
	return annowiki.Errorf(annowiki.EINVALID, "unknown record type %T", rec)
}

// writeArticle appends the serialized article to the current shard, rotating
// first if the record would not fit, and records the article in the index.
func (w *ShardedWriter) writeArticle(rec *annowiki.Article) error {
	n := len(rec.Data)
	if w.curBytes+n/2 > w.maxBytes {
		if err := w.shard.Close(); err != nil {
			return annowiki.Errorf(annowiki.EINTERNAL, "close shard %s: %v", w.shardPath, err)
		}
		if err := w.openNextShard(); err != nil {
			return err
		}
		w.curBytes = 0
		w.lineNum = 0
	}

	if _, err := w.shard.Write(rec.Data); err != nil {
		return annowiki.Errorf(annowiki.EINTERNAL, "write shard %s: %v", w.shardPath, err)
	}
	w.curBytes += n
	_, _ = w.digest.Write(rec.Data)

	if _, err := fmt.Fprintf(w.index, "%s\t%s\t%d\n", rec.URL, w.shardPath, w.lineNum); err != nil {
		return err
	}
	w.lineNum++
	return nil
}

// openNextShard advances the shard counters and opens the next shard file,
// creating its directory if needed.
func (w *ShardedWriter) openNextShard() error {
	w.fileIndex++
	if w.fileIndex == filesPerDir {
		w.dirIndex++
		w.fileIndex = 0
	}

	dir := shardDirName(w.dirIndex)
	if err := os.MkdirAll(filepath.Join(w.root, dir), 0755); err != nil {
		return annowiki.Errorf(annowiki.EINTERNAL, "create shard directory %s: %v", dir, err)
	}

	name := fmt.Sprintf("wiki%02d", w.fileIndex)
	if w.compress {
		name += ".bz2"
	}
	w.shardPath = filepath.Join(dir, name)

	f, err := os.Create(filepath.Join(w.root, w.shardPath))
	if err != nil {
		return annowiki.Errorf(annowiki.EINTERNAL, "create shard %s: %v", w.shardPath, err)
	}
	if w.compress {
		zw, err := newBzip2Shard(f)
		if err != nil {
			_ = f.Close()
			return annowiki.Errorf(annowiki.EINTERNAL, "compress shard %s: %v", w.shardPath, err)
		}
		w.shard = zw
	} else {
		w.shard = f
	}
	return nil
}

// Checksum returns the xxhash digest of every article byte written so far,
// for comparing runs over the same dump.
func (w *ShardedWriter) Checksum() uint64 { return w.digest.Sum64() }

// ShardPath returns the path of the current shard, relative to the root.
func (w *ShardedWriter) ShardPath() string { return w.shardPath }

// Close flushes and closes the current shard and all side files, returning the
// first error encountered.
func (w *ShardedWriter) Close() error {
	var firstErr error
	closeIt := func(c io.Closer) {
		if c == nil {
			return
		}
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	closeIt(w.shard)
	closeIt(w.index)
	closeIt(w.categories)
	closeIt(w.redirects)
	return firstErr
}

// shardDirName maps a directory index to a two-letter name: 0 → AA, 1 → AB,
// 26 → BA, wrapping after ZZ.
func shardDirName(i int) string {
	return string([]byte{'A' + byte(i/26%26), 'A' + byte(i%26)})
}
