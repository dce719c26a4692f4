package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/dealie"
)

// Ensure LoggingLinkExtractor implements dealie.LinkExtractor.
var _ dealie.LinkExtractor = (*LoggingLinkExtractor)(nil)

// LoggingLinkExtractor wraps a LinkExtractor with debug logging.
type LoggingLinkExtractor struct {
	next   dealie.LinkExtractor
	logger *slog.Logger
}

// NewLoggingLinkExtractor creates a new LoggingLinkExtractor.
func NewLoggingLinkExtractor(next dealie.LinkExtractor, logger *slog.Logger) *LoggingLinkExtractor {
	return &LoggingLinkExtractor{next: next, logger: logger}
}

// ExtractLinks delegates to the wrapped extractor and logs the link count.
func (l *LoggingLinkExtractor) ExtractLinks(html, baseURL string) (links []string, err error) {
	defer func(begin time.Time) {
		l.logger.Debug("extract links",
			"url", baseURL,
			"count", len(links),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return l.next.ExtractLinks(html, baseURL)
}
