package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/dealie"
	"github.com/fwojciec/dealie/crawl"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx        context.Context
	Stdout     io.Writer
	Stderr     io.Writer
	Logger     *slog.Logger
	Promotions dealie.PromotionService

	// NewCrawler returns a crawler for one seed.
	NewCrawler func() *crawl.Crawler
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Log every fetch and extraction"`

	Crawl   CrawlCmd   `cmd:"" help:"Crawl a site and print its promotions"`
	Batch   BatchCmd   `cmd:"" help:"Crawl several sites concurrently"`
	History HistoryCmd `cmd:"" help:"List saved crawls"`
	Show    ShowCmd    `cmd:"" help:"Display the promotions of a saved crawl"`
	Export  ExportCmd  `cmd:"" help:"Export a saved crawl to CSV"`
	Delete  DeleteCmd  `cmd:"" help:"Delete a saved crawl"`
}

// needsDB reports whether cmd reads or writes crawl history.
func (c *CLI) needsDB(cmd string) bool {
	switch cmd {
	case "crawl":
		return c.Crawl.Save
	case "batch":
		return c.Batch.Save
	case "history", "show", "export", "delete":
		return true
	}
	return false
}

// CrawlFlags configures crawling and output for crawl and batch.
type CrawlFlags struct {
	Depth   int           `short:"d" default:"2" env:"DEALIE_DEPTH" help:"Maximum link hops from the seed"`
	Retries int           `short:"r" default:"3" env:"DEALIE_RETRIES" help:"Fetch attempts per page"`
	Timeout time.Duration `short:"t" default:"15s" env:"DEALIE_TIMEOUT" help:"Timeout per fetch attempt"`
	Format  string        `short:"f" enum:"table,markdown,csv" default:"table" help:"Output format (table, markdown, csv)"`
	Unique  bool          `short:"u" help:"Drop duplicate promotions from the output"`
	Save    bool          `short:"s" help:"Save the crawl to history"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	URL string `arg:"" help:"Seed URL (http:// or https://)"`
	Out string `short:"o" help:"Write the report to this file instead of stdout"`

	CrawlFlags `embed:""`
}

// BatchCmd is the "batch" subcommand.
type BatchCmd struct {
	URLs    []string `arg:"" name:"url" help:"Seed URLs (http:// or https://)"`
	Workers int      `short:"w" default:"5" env:"DEALIE_WORKERS" help:"Concurrent crawls"`
	OutDir  string   `name:"out-dir" help:"Write one report per seed into this directory"`

	CrawlFlags `embed:""`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	Seed  string `help:"Only show crawls of this seed URL"`
	Limit int    `short:"n" default:"20" help:"Maximum crawls to list"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID     string `arg:"" help:"Crawl ID"`
	Format string `short:"f" enum:"table,markdown,csv" default:"table" help:"Output format (table, markdown, csv)"`
	Unique bool   `short:"u" help:"Drop duplicate promotions from the output"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	ID     string `arg:"" help:"Crawl ID"`
	Out    string `short:"o" default:"promotions.csv" help:"Destination CSV file"`
	Unique bool   `short:"u" help:"Drop duplicate promotions from the export"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID    string `arg:"" help:"Crawl ID"`
	Force bool   `help:"Confirm deletion"`
}
