package main

import (
	"fmt"

	"github.com/fwojciec/dealie"
	"github.com/rodaine/table"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	filter := dealie.CrawlFilter{Limit: c.Limit}
	if c.Seed != "" {
		filter.SeedURL = &c.Seed
	}

	crawls, err := deps.Promotions.FindCrawls(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", dealie.ErrorMessage(err))
		return err
	}

	if len(crawls) == 0 {
		fmt.Fprintln(deps.Stdout, "No crawls found. Use 'dealie crawl --save' to record one.")
		return nil
	}

	tbl := table.New("ID", "STARTED", "DEPTH", "PAGES", "FAILED", "SEED").WithWriter(deps.Stdout)
	for _, cr := range crawls {
		tbl.AddRow(cr.ID, cr.StartedAt.Local().Format("2006-01-02 15:04"), cr.MaxDepth, cr.Pages, cr.Failed, cr.SeedURL)
	}
	tbl.Print()
	return nil
}
