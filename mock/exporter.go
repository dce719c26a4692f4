package mock

import (
	"io"

	"github.com/fwojciec/dealie"
)

var _ dealie.Exporter = (*Exporter)(nil)

// Exporter is a mock implementation of dealie.Exporter.
type Exporter struct {
	ExportFn func(w io.Writer, crawl *dealie.Crawl) error
}

func (e *Exporter) Export(w io.Writer, crawl *dealie.Crawl) error {
	return e.ExportFn(w, crawl)
}
