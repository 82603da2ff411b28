package extract

import "github.com/bits-and-blooms/bloom/v3"

// Dedupe filters out records whose source page URL has already been written.
// Intended for dumps reassembled from overlapping stream parts, where the same
// page block can appear more than once.
//
// It is backed by a Bloom filter, so a small fraction of unique pages may be
// dropped as false positives; the rate is bounded by fpRate. It is called only
// from the sequential write phase and is not safe for concurrent use.
type Dedupe struct {
	seen *bloom.BloomFilter
}

// NewDedupe returns a Dedupe sized for n expected pages with the given false
// positive rate.
func NewDedupe(n uint, fpRate float64) *Dedupe {
	return &Dedupe{seen: bloom.NewWithEstimates(n, fpRate)}
}

// Seen records url and reports whether it was already present.
func (d *Dedupe) Seen(url string) bool {
	if d.seen.TestString(url) {
		return true
	}
	d.seen.AddString(url)
	return false
}

// EstimatedCount returns the approximate number of distinct URLs seen.
func (d *Dedupe) EstimatedCount() uint {
	return uint(d.seen.ApproximatedSize())
}
