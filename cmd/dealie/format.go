package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fwojciec/dealie"
	"github.com/fwojciec/dealie/crawl"
	"github.com/fwojciec/dealie/csv"
	"github.com/fwojciec/dealie/markdown"
	"github.com/rodaine/table"
)

// newExporter returns the exporter for an output format.
func newExporter(format string, unique bool) dealie.Exporter {
	switch format {
	case "csv":
		return &csv.Exporter{Unique: unique}
	case "markdown":
		return &markdown.Exporter{Unique: unique}
	default:
		return &tableExporter{Unique: unique}
	}
}

// formatExt returns the file extension for an output format.
func formatExt(format string) string {
	switch format {
	case "csv":
		return "csv"
	case "markdown":
		return "md"
	default:
		return "txt"
	}
}

// Table column widths.
const (
	titleWidth       = 40
	descriptionWidth = 50
	sourceWidth      = 50
)

// tableExporter prints promotions as aligned columns for a terminal.
type tableExporter struct {
	Unique bool
}

func (e *tableExporter) Export(w io.Writer, crawl *dealie.Crawl) error {
	promos := crawl.Promotions
	if e.Unique {
		promos = dealie.UniquePromotions(promos)
	}

	if len(promos) == 0 {
		_, err := fmt.Fprintf(w, "No promotions found on %s\n", crawl.SeedURL)
		return err
	}

	tbl := table.New("TITLE", "PRICE", "DESCRIPTION", "SOURCE").WithWriter(w)
	for _, p := range promos {
		tbl.AddRow(
			column(p.Title, titleWidth),
			column(p.Price, titleWidth),
			column(p.Description, descriptionWidth),
			truncURL(p.Source),
		)
	}
	tbl.Print()
	return nil
}

// column collapses whitespace and clips s to width runes.
func column(s string, width int) string {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return "-"
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
}

func truncURL(u string) string {
	return crawl.TruncateURL(u, sourceWidth)
}
