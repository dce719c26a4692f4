// Package crawl provides promotion crawling orchestration.
// It walks a site depth-first from a seed URL, fetching pages with retry
// and collecting the promotions extracted from each page.
package crawl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/fwojciec/dealie"
)

// Crawler walks a site from a seed URL and collects promotions.
// A Crawler holds no per-crawl state, so one value may serve
// concurrent crawls when its collaborators allow it.
type Crawler struct {
	Fetcher    dealie.Fetcher
	Extractor  dealie.Extractor
	Links      dealie.LinkExtractor
	MaxRetries int
	Logger     *slog.Logger
}

// Result holds the outcome of a crawl.
type Result struct {
	SeedURL    string
	MaxDepth   int
	Promotions []*dealie.Promotion
	Visited    []string
	Failures   []Failure
	Pages      int
}

// Failure records a page that produced no promotions because of an error.
type Failure struct {
	URL   string
	Depth int
	Err   error
}

// ToCrawl converts the result into a crawl ready for storage.
func (r *Result) ToCrawl(startedAt, finishedAt time.Time) *dealie.Crawl {
	return &dealie.Crawl{
		SeedURL:    r.SeedURL,
		MaxDepth:   r.MaxDepth,
		Pages:      r.Pages,
		Failed:     len(r.Failures),
		StartedAt:  startedAt,
		FinishedAt: finishedAt,
		Promotions: r.Promotions,
	}
}

// ProgressEvent reports progress during a crawl.
type ProgressEvent struct {
	Type       ProgressType
	URL        string
	Depth      int
	Promotions int
	Visited    int
	Error      error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressFetched ProgressType = iota
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting crawl progress.
type ProgressFunc func(event ProgressEvent)

// frame is a pending page on the work-list.
type frame struct {
	url   string
	depth int
}

// Crawl walks the site rooted at seedURL depth-first, following links
// that start with seedURL for at most maxDepth hops. Pages at maxDepth
// are extracted but their links are not followed.
//
// The only returned error is EINVALID for a bad seed or depth. Fetch,
// extraction and traversal failures are recorded in Result.Failures and
// the promotions gathered so far are still returned. A cancelled context
// stops the walk early.
func (c *Crawler) Crawl(ctx context.Context, seedURL string, maxDepth int, progress ProgressFunc) (*Result, error) {
	if err := dealie.ValidateSeedURL(seedURL); err != nil {
		return nil, err
	}
	if maxDepth < 0 {
		return nil, dealie.Errorf(dealie.EINVALID, "depth must not be negative")
	}

	logger := c.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	result := &Result{SeedURL: seedURL, MaxDepth: maxDepth}
	visited := NewVisitedSet()

	c.walk(ctx, seedURL, maxDepth, visited, result, logger, progress)

	result.Visited = visited.URLs()
	if progress != nil {
		progress(ProgressEvent{
			Type:       ProgressFinished,
			URL:        seedURL,
			Promotions: len(result.Promotions),
			Visited:    visited.Len(),
		})
	}
	return result, nil
}

// walk drains the work-list.
func (c *Crawler) walk(ctx context.Context, seedURL string, maxDepth int, visited *VisitedSet, result *Result, logger *slog.Logger, progress ProgressFunc) {
	stack := []frame{{url: seedURL, depth: 0}}
	for len(stack) > 0 {
		if ctx.Err() != nil {
			logger.Warn("crawl cancelled", "seed", seedURL, "pending", len(stack), "err", ctx.Err())
			return
		}

		page := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if page.depth > maxDepth || !visited.Visit(page.url) {
			continue
		}

		links := c.visit(ctx, page, maxDepth, visited, result, logger, progress)

		// Push in reverse so the first link on the page is popped first.
		for i := len(links) - 1; i >= 0; i-- {
			link := links[i]
			if visited.Has(link) || !strings.HasPrefix(link, seedURL) {
				continue
			}
			stack = append(stack, frame{url: link, depth: page.depth + 1})
		}
	}
}

// visit fetches and extracts one page and returns the links to follow
// from it. A panic is recorded as an internal failure for this page and
// the walk continues with the rest of the work-list.
func (c *Crawler) visit(ctx context.Context, page frame, maxDepth int, visited *VisitedSet, result *Result, logger *slog.Logger, progress ProgressFunc) (links []string) {
	defer func() {
		if r := recover(); r != nil {
			links = nil
			err := dealie.Errorf(dealie.EINTERNAL, "panic while processing %s: %v", page.url, r)
			logger.Error("page panic", "url", page.url, "depth", page.depth, "err", err)
			c.fail(result, page, err, logger, progress)
		}
	}()

	retryLog := func(format string, args ...any) {
		logger.Debug(fmt.Sprintf(format, args...))
	}

	html, err := FetchWithRetry(ctx, page.url, c.Fetcher.Fetch, retryLog, c.MaxRetries)
	if err != nil {
		c.fail(result, page, err, logger, progress)
		return nil
	}
	result.Pages++

	found := c.extract(html, page, result, logger, progress)
	if progress != nil {
		progress(ProgressEvent{
			Type:       ProgressFetched,
			URL:        page.url,
			Depth:      page.depth,
			Promotions: found,
			Visited:    visited.Len(),
		})
	}

	if page.depth >= maxDepth {
		return nil
	}

	links, err = c.Links.ExtractLinks(html, page.url)
	if err != nil {
		c.fail(result, page, err, logger, progress)
		return nil
	}
	return links
}

// extract runs the extractor on a fetched page and appends the valid
// promotions to the result. It returns the number appended.
func (c *Crawler) extract(html string, page frame, result *Result, logger *slog.Logger, progress ProgressFunc) int {
	extracted, err := c.Extractor.Extract(html, page.url)
	if err != nil {
		if dealie.ErrorCode(err) == dealie.EINTERNAL {
			err = dealie.Errorf(dealie.EEXTRACT, "extract %s: %w", page.url, err)
		}
		c.fail(result, page, err, logger, progress)
		return 0
	}

	for _, skipped := range extracted.Skipped {
		logger.Debug("element skipped", "url", page.url, "err", skipped)
	}

	var n int
	for _, p := range extracted.Promotions {
		if p == nil || !p.Valid() {
			continue
		}
		result.Promotions = append(result.Promotions, p)
		n++
	}
	return n
}

func (c *Crawler) fail(result *Result, page frame, err error, logger *slog.Logger, progress ProgressFunc) {
	logger.Warn("page failed", "url", page.url, "depth", page.depth, "code", dealie.ErrorCode(err), "err", err)
	result.Failures = append(result.Failures, Failure{URL: page.url, Depth: page.depth, Err: err})
	if progress != nil {
		progress(ProgressEvent{Type: ProgressFailed, URL: page.url, Depth: page.depth, Error: err})
	}
}
