// Package markdown renders crawl reports as GitHub-flavored markdown.
package markdown

import (
	"io"
	"strconv"
	"strings"

	"github.com/fwojciec/dealie"
	"github.com/nao1215/markdown"
)

// Ensure Exporter implements dealie.Exporter.
var _ dealie.Exporter = (*Exporter)(nil)

// Exporter writes a crawl summary table followed by a promotions table.
type Exporter struct {
	// Unique drops promotions whose fingerprint was already written.
	Unique bool
}

// NewExporter creates a new Exporter.
func NewExporter() *Exporter {
	return &Exporter{}
}

// Export writes the crawl report to w.
func (e *Exporter) Export(w io.Writer, crawl *dealie.Crawl) error {
	promos := crawl.Promotions
	if e.Unique {
		promos = dealie.UniquePromotions(promos)
	}

	md := markdown.NewMarkdown(w)

	md.H1("Promotions for " + crawl.SeedURL)
	md.PlainText("")

	summary := [][]string{
		{"Seed URL", crawl.SeedURL},
		{"Max Depth", strconv.Itoa(crawl.MaxDepth)},
		{"Pages Fetched", strconv.Itoa(crawl.Pages)},
		{"Failed Pages", strconv.Itoa(crawl.Failed)},
		{"Promotions", strconv.Itoa(len(promos))},
	}
	if crawl.ID != "" {
		summary = append([][]string{{"Crawl ID", crawl.ID}}, summary...)
	}
	if !crawl.StartedAt.IsZero() {
		summary = append(summary, []string{"Started", crawl.StartedAt.Format("2006-01-02 15:04:05 MST")})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   summary,
	})
	md.PlainText("")

	md.H2("Promotions")
	md.PlainText("")

	if len(promos) == 0 {
		md.Note("No promotions found.")
		return md.Build()
	}

	rows := make([][]string, len(promos))
	for i, p := range promos {
		rows[i] = []string{
			cell(p.Title),
			cell(p.Price),
			cell(p.Description),
			cell(p.Source),
			cell(p.Image),
			p.Date,
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Title", "Price", "Description", "Source", "Image", "Date"},
		Rows:   rows,
	})

	return md.Build()
}

// cell makes s safe inside a table cell.
func cell(s string) string {
	if s == "" {
		return "-"
	}
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.Join(strings.Fields(s), " ")
}
