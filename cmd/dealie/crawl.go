package main

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/fwojciec/dealie"
	"github.com/fwojciec/dealie/crawl"
	"github.com/fwojciec/dealie/fs"
)

// invalidSeedMessage is shown when a seed URL is rejected.
const invalidSeedMessage = "please enter a valid URL starting with http:// or https://"

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	if err := dealie.ValidateSeedURL(c.URL); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", invalidSeedMessage)
		return err
	}
	if c.Depth < 0 {
		fmt.Fprintf(deps.Stderr, "error: depth must not be negative\n")
		return dealie.Errorf(dealie.EINVALID, "depth must not be negative")
	}

	started := time.Now()
	result, err := deps.NewCrawler().Crawl(deps.Ctx, c.URL, c.Depth, progressPrinter(deps.Stderr))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", dealie.ErrorMessage(err))
		return err
	}
	finished := time.Now()
	record := result.ToCrawl(started, finished)

	fmt.Fprintf(deps.Stderr, "Found %d promotions on %d pages (%d failed) in %s\n",
		len(record.Promotions), record.Pages, record.Failed, elapsed(finished.Sub(started)))

	if c.Save {
		if err := deps.Promotions.CreateCrawl(deps.Ctx, record); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", dealie.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stderr, "Saved crawl %s\n", record.ID)
	}

	exporter := newExporter(c.Format, c.Unique)
	if c.Out != "" {
		if err := fs.WriteFile(c.Out, exporter, record); err != nil {
			fmt.Fprintf(deps.Stderr, "error: write %s: %v\n", c.Out, err)
			return err
		}
		fmt.Fprintf(deps.Stderr, "Wrote report to %s\n", c.Out)
		return nil
	}
	return exporter.Export(deps.Stdout, record)
}

// progressPrinter reports skipped pages on w. It is safe for concurrent use.
func progressPrinter(w io.Writer) crawl.ProgressFunc {
	var mu sync.Mutex
	return func(event crawl.ProgressEvent) {
		if event.Type != crawl.ProgressFailed {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintf(w, "  skip %s: %s\n", crawl.TruncateURL(event.URL, 60), failureReason(event.Error))
	}
}

// failureReason describes a page failure for the terminal.
func failureReason(err error) string {
	switch dealie.ErrorCode(err) {
	case dealie.ENORESPONSE:
		return "no response"
	case dealie.EEXTRACT:
		return "extraction failed"
	case dealie.EINTERNAL:
		return "internal error"
	}
	return dealie.ErrorMessage(err)
}
