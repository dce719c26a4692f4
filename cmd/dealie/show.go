package main

import (
	"fmt"

	"github.com/fwojciec/dealie"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	crawl, err := deps.Promotions.FindCrawlByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", notFoundHint(err, c.ID))
		return err
	}

	return newExporter(c.Format, c.Unique).Export(deps.Stdout, crawl)
}

// notFoundHint returns the error message, pointing at history when the
// crawl does not exist.
func notFoundHint(err error, id string) string {
	if dealie.ErrorCode(err) == dealie.ENOTFOUND {
		return fmt.Sprintf("crawl %q not found. Use 'dealie history' to see saved crawls.", id)
	}
	return dealie.ErrorMessage(err)
}
