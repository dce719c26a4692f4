package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/dealie"
)

// Ensure LoggingExtractor implements dealie.Extractor.
var _ dealie.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with debug logging.
type LoggingExtractor struct {
	next   dealie.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next dealie.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the counts.
func (e *LoggingExtractor) Extract(html, baseURL string) (result *dealie.ExtractResult, err error) {
	defer func(begin time.Time) {
		var count, skipped int
		if result != nil {
			count = len(result.Promotions)
			skipped = len(result.Skipped)
		}
		e.logger.Debug("extract",
			"url", baseURL,
			"count", count,
			"skipped", skipped,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(html, baseURL)
}
