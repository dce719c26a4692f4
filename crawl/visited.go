package crawl

import (
	"github.com/fwojciec/dealie"
	"github.com/fwojciec/dealie/bloom"
)

// Compile-time interface verification.
var _ dealie.VisitedSet = (*VisitedSet)(nil)

// Visited set sizing for the Bloom pre-check.
const (
	visitedExpectedURLs      = 10000
	visitedFalsePositiveRate = 0.01
)

// VisitedSet is an exact set of fetched URLs in insertion order.
// A Bloom filter answers most negative lookups before the map is
// consulted. It belongs to a single crawl and is not safe for
// concurrent use.
type VisitedSet struct {
	seen  *bloom.Filter
	urls  map[string]struct{}
	order []string
}

// NewVisitedSet creates an empty VisitedSet.
func NewVisitedSet() *VisitedSet {
	return &VisitedSet{
		seen: bloom.NewFilter(visitedExpectedURLs, visitedFalsePositiveRate),
		urls: make(map[string]struct{}),
	}
}

// Visit adds url to the set. Returns false if it was already present.
func (s *VisitedSet) Visit(url string) bool {
	if s.seen.TestAndAdd(url) {
		if _, ok := s.urls[url]; ok {
			return false
		}
	}
	s.urls[url] = struct{}{}
	s.order = append(s.order, url)
	return true
}

// Has returns true if url has been visited.
func (s *VisitedSet) Has(url string) bool {
	if !s.seen.MayContain(url) {
		return false
	}
	_, ok := s.urls[url]
	return ok
}

// Len returns the number of visited URLs.
func (s *VisitedSet) Len() int {
	return len(s.order)
}

// URLs returns a copy of the visited URLs in visit order.
func (s *VisitedSet) URLs() []string {
	return append([]string(nil), s.order...)
}
