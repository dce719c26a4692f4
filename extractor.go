package dealie

// ExtractResult holds the candidate promotions found on one page.
type ExtractResult struct {
	// Promotions are candidates that passed Promotion.Valid, in
	// rule order and then document order.
	Promotions []*Promotion

	// Skipped holds per-element failures, such as an unusable image
	// reference. They never abort the scan.
	Skipped []error
}

// Extractor finds promotion records in an HTML document.
type Extractor interface {
	// Extract scans html for promotional content. The baseURL is the URL
	// the page was fetched from; it resolves relative image references and
	// becomes each record's Source.
	// An error is returned only when the whole document cannot be scanned.
	Extract(html string, baseURL string) (*ExtractResult, error)
}
