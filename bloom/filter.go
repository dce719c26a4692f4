// Package bloom provides a probabilistic pre-check for visited URLs.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter answers "definitely not seen" for URLs in constant space.
// It is not safe for concurrent use.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a filter sized for n expected URLs
// at the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add records url in the filter.
func (f *Filter) Add(url string) {
	f.f.AddString(url)
}

// MayContain reports whether url might have been added.
// A false result is definitive.
func (f *Filter) MayContain(url string) bool {
	return f.f.TestString(url)
}

// TestAndAdd records url and reports whether it might have been
// present beforehand.
func (f *Filter) TestAndAdd(url string) bool {
	return f.f.TestAndAddString(url)
}
