package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/dealie"
	"github.com/fwojciec/dealie/crawl"
	"github.com/fwojciec/dealie/goquery"
	dealiehttp "github.com/fwojciec/dealie/http"
	dealieslog "github.com/fwojciec/dealie/slog"
	"github.com/fwojciec/dealie/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	PromotionService dealie.PromotionService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("dealie"),
		kong.Description("Crawl a site and collect the promotions it advertises."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'dealie --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if cli.needsDB(cmd) {
		if m.PromotionService == nil {
			m.DB = sqlite.NewDB(m.DBPath)
			if err := m.DB.Open(); err != nil {
				fmt.Fprintf(stderr, "Hint: Set DEALIE_DB to use a different database path\n")
				return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
			}
			defer m.Close()
			m.PromotionService = sqlite.NewPromotionService(m.DB)
		}
		deps.Promotions = m.PromotionService
	}

	var flags *CrawlFlags
	switch cmd {
	case "crawl":
		flags = &cli.Crawl.CrawlFlags
	case "batch":
		flags = &cli.Batch.CrawlFlags
	}
	if flags != nil {
		fetcher := dealieslog.NewLoggingFetcher(dealiehttp.NewFetcher(dealiehttp.WithTimeout(flags.Timeout)), deps.Logger)
		defer fetcher.Close()
		deps.NewCrawler = newCrawlerFunc(fetcher, flags.Retries, deps.Logger)
	}

	return kongCtx.Run(deps)
}

// newCrawlerFunc returns a constructor for crawlers sharing one fetcher.
func newCrawlerFunc(fetcher dealie.Fetcher, retries int, logger *slog.Logger) func() *crawl.Crawler {
	extractor := dealieslog.NewLoggingExtractor(goquery.NewExtractor(), logger)
	links := dealieslog.NewLoggingLinkExtractor(goquery.NewLinkExtractor(), logger)
	return func() *crawl.Crawler {
		return &crawl.Crawler{
			Fetcher:    fetcher,
			Extractor:  extractor,
			Links:      links,
			MaxRetries: retries,
			Logger:     logger,
		}
	}
}

func defaultDBPath() string {
	if path := os.Getenv("DEALIE_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "dealie.db"
	}
	dir := filepath.Join(home, ".dealie")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "dealie.db")
}

// elapsed formats a duration for summaries.
func elapsed(d time.Duration) string {
	return d.Round(time.Millisecond).String()
}
