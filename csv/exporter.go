// Package csv writes promotions as comma-separated values.
package csv

import (
	"encoding/csv"
	"io"

	"github.com/fwojciec/dealie"
)

// Header is the column order of every export.
var Header = []string{"title", "description", "price", "date", "source", "image"}

// Ensure Exporter implements dealie.Exporter.
var _ dealie.Exporter = (*Exporter)(nil)

// Exporter writes one header row followed by one row per promotion.
type Exporter struct {
	// Unique drops promotions whose fingerprint was already written.
	Unique bool
}

// NewExporter creates a new Exporter.
func NewExporter() *Exporter {
	return &Exporter{}
}

// Export writes the crawl's promotions to w in extraction order.
func (e *Exporter) Export(w io.Writer, crawl *dealie.Crawl) error {
	promos := crawl.Promotions
	if e.Unique {
		promos = dealie.UniquePromotions(promos)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, p := range promos {
		if err := cw.Write([]string{p.Title, p.Description, p.Price, p.Date, p.Source, p.Image}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
