package mock

import "github.com/fwojciec/dealie"

var _ dealie.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of dealie.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(html, baseURL string) ([]string, error)
}

func (l *LinkExtractor) ExtractLinks(html, baseURL string) ([]string, error) {
	return l.ExtractLinksFn(html, baseURL)
}
