package mock

import (
	"context"

	"github.com/fwojciec/dealie"
)

var _ dealie.PromotionService = (*PromotionService)(nil)

// PromotionService is a mock implementation of dealie.PromotionService.
type PromotionService struct {
	CreateCrawlFn    func(ctx context.Context, crawl *dealie.Crawl) error
	FindCrawlByIDFn  func(ctx context.Context, id string) (*dealie.Crawl, error)
	FindCrawlsFn     func(ctx context.Context, filter dealie.CrawlFilter) ([]*dealie.Crawl, error)
	FindPromotionsFn func(ctx context.Context, filter dealie.PromotionFilter) ([]*dealie.Promotion, error)
	DeleteCrawlFn    func(ctx context.Context, id string) error
}

func (s *PromotionService) CreateCrawl(ctx context.Context, crawl *dealie.Crawl) error {
	return s.CreateCrawlFn(ctx, crawl)
}

func (s *PromotionService) FindCrawlByID(ctx context.Context, id string) (*dealie.Crawl, error) {
	return s.FindCrawlByIDFn(ctx, id)
}

func (s *PromotionService) FindCrawls(ctx context.Context, filter dealie.CrawlFilter) ([]*dealie.Crawl, error) {
	return s.FindCrawlsFn(ctx, filter)
}

func (s *PromotionService) FindPromotions(ctx context.Context, filter dealie.PromotionFilter) ([]*dealie.Promotion, error) {
	return s.FindPromotionsFn(ctx, filter)
}

func (s *PromotionService) DeleteCrawl(ctx context.Context, id string) error {
	return s.DeleteCrawlFn(ctx, id)
}
