package dealie

import "io"

// Exporter writes a crawl's promotions in a specific format.
type Exporter interface {
	Export(w io.Writer, crawl *Crawl) error
}
