package main

import (
	"fmt"

	"github.com/fwojciec/dealie"
	"github.com/fwojciec/dealie/csv"
	"github.com/fwojciec/dealie/fs"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	crawl, err := deps.Promotions.FindCrawlByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", notFoundHint(err, c.ID))
		return err
	}

	n := len(crawl.Promotions)
	if c.Unique {
		n = len(dealie.UniquePromotions(crawl.Promotions))
	}

	if err := fs.WriteFile(c.Out, &csv.Exporter{Unique: c.Unique}, crawl); err != nil {
		fmt.Fprintf(deps.Stderr, "error: write %s: %v\n", c.Out, err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Exported %d promotions to %s\n", n, c.Out)
	return nil
}
