package main

import (
	"fmt"

	"github.com/fwojciec/dealie"
	"github.com/fwojciec/dealie/crawl"
	"github.com/fwojciec/dealie/fs"
)

// Run executes the batch command.
func (c *BatchCmd) Run(deps *Dependencies) error {
	for _, u := range c.URLs {
		if err := dealie.ValidateSeedURL(u); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s: %s\n", u, invalidSeedMessage)
			return err
		}
	}
	if c.Depth < 0 {
		fmt.Fprintf(deps.Stderr, "error: depth must not be negative\n")
		return dealie.Errorf(dealie.EINVALID, "depth must not be negative")
	}

	jobs := make([]crawl.Job, len(c.URLs))
	for i, u := range c.URLs {
		jobs[i] = crawl.Job{SeedURL: u, MaxDepth: c.Depth}
	}

	d := &crawl.Dispatcher{
		NewCrawler: deps.NewCrawler,
		Workers:    c.Workers,
		Progress:   progressPrinter(deps.Stderr),
		Logger:     deps.Logger,
	}
	results := d.Dispatch(deps.Ctx, jobs)

	exporter := newExporter(c.Format, c.Unique)
	var writer *fs.Writer
	if c.OutDir != "" {
		writer = fs.NewWriter(c.OutDir, exporter, formatExt(c.Format))
	}

	var firstErr error
	for i, jr := range results {
		if jr.Err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s: %s\n", jr.Job.SeedURL, dealie.ErrorMessage(jr.Err))
			if firstErr == nil {
				firstErr = jr.Err
			}
			continue
		}

		record := jr.Result.ToCrawl(jr.StartedAt, jr.FinishedAt)
		fmt.Fprintf(deps.Stderr, "%s: %d promotions on %d pages (%d failed) in %s\n",
			jr.Job.SeedURL, len(record.Promotions), record.Pages, record.Failed,
			elapsed(jr.FinishedAt.Sub(jr.StartedAt)))

		if c.Save {
			if err := deps.Promotions.CreateCrawl(deps.Ctx, record); err != nil {
				fmt.Fprintf(deps.Stderr, "error: %s: %s\n", jr.Job.SeedURL, dealie.ErrorMessage(err))
				if firstErr == nil {
					firstErr = err
				}
				continue
			}
			fmt.Fprintf(deps.Stderr, "Saved crawl %s\n", record.ID)
		}

		if writer != nil {
			path, err := writer.WriteCrawl(record)
			if err != nil {
				fmt.Fprintf(deps.Stderr, "error: %s: %v\n", jr.Job.SeedURL, err)
				if firstErr == nil {
					firstErr = err
				}
				continue
			}
			fmt.Fprintf(deps.Stderr, "Wrote report to %s\n", path)
			continue
		}

		if c.Format == "table" {
			if i > 0 {
				fmt.Fprintln(deps.Stdout)
			}
			fmt.Fprintf(deps.Stdout, "== %s ==\n", jr.Job.SeedURL)
		}
		if err := exporter.Export(deps.Stdout, record); err != nil {
			return err
		}
	}

	return firstErr
}
