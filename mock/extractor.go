package mock

import "github.com/fwojciec/dealie"

var _ dealie.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of dealie.Extractor.
type Extractor struct {
	ExtractFn func(html, baseURL string) (*dealie.ExtractResult, error)
}

func (e *Extractor) Extract(html, baseURL string) (*dealie.ExtractResult, error) {
	return e.ExtractFn(html, baseURL)
}
