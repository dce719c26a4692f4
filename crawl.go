package dealie

import (
	"context"
	"time"
)

// Crawl is a completed crawl together with the promotions it produced.
type Crawl struct {
	ID         string       `json:"id"`
	SeedURL    string       `json:"seedUrl"`
	MaxDepth   int          `json:"maxDepth"`
	Pages      int          `json:"pages"`
	Failed     int          `json:"failed"`
	StartedAt  time.Time    `json:"startedAt"`
	FinishedAt time.Time    `json:"finishedAt"`
	Promotions []*Promotion `json:"promotions"`
}

// Validate returns an error if the crawl contains invalid fields.
func (c *Crawl) Validate() error {
	if c.SeedURL == "" {
		return Errorf(EINVALID, "crawl seed URL required")
	}
	if c.MaxDepth < 0 {
		return Errorf(EINVALID, "crawl depth must not be negative")
	}
	return nil
}

// PromotionService represents a service for storing crawl results.
type PromotionService interface {
	// CreateCrawl stores a crawl and its promotions, assigning an ID.
	CreateCrawl(ctx context.Context, crawl *Crawl) error

	// FindCrawlByID retrieves a crawl with its promotions.
	// Returns ENOTFOUND if the crawl does not exist.
	FindCrawlByID(ctx context.Context, id string) (*Crawl, error)

	// FindCrawls retrieves crawls matching the filter, newest first.
	// Promotions are not loaded.
	FindCrawls(ctx context.Context, filter CrawlFilter) ([]*Crawl, error)

	// FindPromotions retrieves promotions matching the filter in
	// extraction order.
	FindPromotions(ctx context.Context, filter PromotionFilter) ([]*Promotion, error)

	// DeleteCrawl permanently removes a crawl and its promotions.
	// Returns ENOTFOUND if the crawl does not exist.
	DeleteCrawl(ctx context.Context, id string) error
}

// CrawlFilter represents a filter for FindCrawls.
type CrawlFilter struct {
	ID      *string `json:"id"`
	SeedURL *string `json:"seedUrl"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// PromotionFilter represents a filter for FindPromotions.
type PromotionFilter struct {
	CrawlID *string `json:"crawlId"`
	Source  *string `json:"source"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
