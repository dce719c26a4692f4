package crawl

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/dealie"
	"golang.org/x/sync/errgroup"
)

// DefaultWorkers is the number of crawls a Dispatcher runs at once.
const DefaultWorkers = 5

// Job is one crawl request.
type Job struct {
	SeedURL  string
	MaxDepth int
}

// JobResult is the outcome of one Job.
// Err is set only when the job was rejected or never started.
type JobResult struct {
	Job        Job
	Result     *Result
	Err        error
	StartedAt  time.Time
	FinishedAt time.Time
}

// Dispatcher runs independent crawls on a bounded pool of workers.
type Dispatcher struct {
	// NewCrawler returns the crawler for one job.
	// It is called once per job so crawls never share state.
	NewCrawler func() *Crawler

	// Workers is the maximum number of concurrent crawls.
	// Defaults to DefaultWorkers.
	Workers int

	// Progress, if set, receives events from every crawl.
	// It may be called from several goroutines at once.
	Progress ProgressFunc

	Logger *slog.Logger
}

// Dispatch runs every job and returns their results in job order.
// Jobs with an invalid seed or depth are rejected before any crawl
// starts. Cancelling ctx stops queued jobs from starting and ends
// running crawls early with partial results.
func (d *Dispatcher) Dispatch(ctx context.Context, jobs []Job) []JobResult {
	logger := d.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	workers := d.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}

	results := make([]JobResult, len(jobs))
	for i, job := range jobs {
		results[i].Job = job
		if err := dealie.ValidateSeedURL(job.SeedURL); err != nil {
			results[i].Err = err
		} else if job.MaxDepth < 0 {
			results[i].Err = dealie.Errorf(dealie.EINVALID, "depth must not be negative")
		}
	}

	logger.Info("dispatching crawls", "jobs", len(jobs), "workers", workers)
	begin := time.Now()

	var g errgroup.Group
	g.SetLimit(workers)
	for i := range jobs {
		if results[i].Err != nil {
			logger.Warn("job rejected", "seed", jobs[i].SeedURL, "err", results[i].Err)
			continue
		}
		g.Go(func() error {
			jr := &results[i]
			if err := ctx.Err(); err != nil {
				jr.Err = err
				return nil
			}

			jr.StartedAt = time.Now()
			jr.Result, jr.Err = d.NewCrawler().Crawl(ctx, jr.Job.SeedURL, jr.Job.MaxDepth, d.Progress)
			jr.FinishedAt = time.Now()

			if jr.Err == nil {
				logger.Info("crawl finished",
					"seed", jr.Job.SeedURL,
					"pages", jr.Result.Pages,
					"promotions", len(jr.Result.Promotions),
					"failures", len(jr.Result.Failures),
					"duration", jr.FinishedAt.Sub(jr.StartedAt),
				)
			}
			return nil
		})
	}
	_ = g.Wait()

	logger.Info("dispatch complete", "jobs", len(jobs), "duration", time.Since(begin))
	return results
}
