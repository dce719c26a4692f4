package crawl

import (
	"context"

	"github.com/fwojciec/dealie"
)

// DefaultMaxRetries is the number of fetch attempts made per page.
const DefaultMaxRetries = 3

// FetchFunc is the signature for a fetch function.
type FetchFunc func(ctx context.Context, url string) (string, error)

// LogFunc is the signature for a logging function.
type LogFunc func(format string, args ...any)

// FetchWithRetry calls fetch up to maxAttempts times without delay and
// returns the first successful body. A non-positive maxAttempts means
// DefaultMaxRetries. When every attempt fails the returned error has
// code ENORESPONSE and wraps the last failure. The logger, if provided,
// is called for each failed attempt.
func FetchWithRetry(ctx context.Context, url string, fetch FetchFunc, logger LogFunc, maxAttempts int) (string, error) {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxRetries
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		html, err := fetch(ctx, url)
		if err == nil {
			return html, nil
		}
		lastErr = err

		if logger != nil {
			logger("attempt %d/%d failed for %s: %v", attempt, maxAttempts, url, err)
		}

		if ctx.Err() != nil {
			break
		}
	}

	return "", dealie.Errorf(dealie.ENORESPONSE, "no response from %s after %d attempts: %w", url, maxAttempts, lastErr)
}
