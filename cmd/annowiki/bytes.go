package main

import (
	"strconv"
	"strings"

	"github.com/fwojciec/annowiki"
	"github.com/fwojciec/annowiki/fs"
)

// parseByteSize parses a shard size argument with an optional K or M suffix and
// enforces the minimum shard size.
func parseByteSize(s string) (int, error) {
	mult := 1
	num := s
	switch {
	case strings.HasSuffix(s, "k"), strings.HasSuffix(s, "K"):
		mult = 1024
		num = s[:len(s)-1]
	case strings.HasSuffix(s, "m"), strings.HasSuffix(s, "M"):
		mult = 1024 * 1024
		num = s[:len(s)-1]
	}
	n, err := strconv.Atoi(num)
	if err != nil {
		return 0, annowiki.Errorf(annowiki.EINVALID, "invalid shard size %q", s)
	}
	n *= mult
	if n < fs.MinShardBytes {
		return 0, annowiki.Errorf(annowiki.EINVALID,
			"shard size %q below %d byte minimum", s, fs.MinShardBytes)
	}
	return n, nil
}
