package fs

import (
	"io"
	"os"

	"github.com/dsnet/compress/bzip2"
)

// bzip2Shard chains a block-compressing writer over the shard file. Close
// finishes the compressed stream before closing the file.
type bzip2Shard struct {
	zw *bzip2.Writer
	f  *os.File
}

func newBzip2Shard(f *os.File) (io.WriteCloser, error) {
	zw, err := bzip2.NewWriter(f, &bzip2.WriterConfig{Level: bzip2.DefaultCompression})
	if err != nil {
		return nil, err
	}
	return &bzip2Shard{zw: zw, f: f}, nil
}

func (s *bzip2Shard) Write(p []byte) (int, error) {
	return s.zw.Write(p)
}

func (s *bzip2Shard) Close() error {
	err := s.zw.Close()
	if cerr := s.f.Close(); err == nil {
		err = cerr
	}
	return err
}
