package dealie

// VisitedSet records the URLs fetched during one crawl.
// It grows monotonically and is never shared between crawls.
type VisitedSet interface {
	// Visit marks url as visited.
	// Returns false if the URL was already in the set.
	Visit(url string) bool

	// Has returns true if url has been visited.
	Has(url string) bool

	// Len returns the number of visited URLs.
	Len() int

	// URLs returns visited URLs in the order they were added.
	URLs() []string
}
