package dealie

// LinkExtractor lists the hyperlinks of an HTML document.
type LinkExtractor interface {
	// ExtractLinks returns the href of every anchor resolved against
	// baseURL, in document order. Duplicates are preserved.
	ExtractLinks(html string, baseURL string) ([]string, error)
}
