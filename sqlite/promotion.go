package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/dealie"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ dealie.PromotionService = (*PromotionService)(nil)

// PromotionService implements dealie.PromotionService using SQLite.
type PromotionService struct {
	db *DB
}

// NewPromotionService creates a new PromotionService.
func NewPromotionService(db *DB) *PromotionService {
	return &PromotionService{db: db}
}

// CreateCrawl stores a crawl and its promotions in one transaction.
// Promotions keep their slice order.
func (s *PromotionService) CreateCrawl(ctx context.Context, crawl *dealie.Crawl) error {
	if err := crawl.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()
	if crawl.StartedAt.IsZero() {
		crawl.StartedAt = now
	}
	if crawl.FinishedAt.IsZero() {
		crawl.FinishedAt = now
	}
	id := uuid.New().String()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO crawls (id, seed_url, max_depth, pages, failed, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, id, crawl.SeedURL, crawl.MaxDepth, crawl.Pages, crawl.Failed,
		crawl.StartedAt.UTC().Format(time.RFC3339), crawl.FinishedAt.UTC().Format(time.RFC3339)); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO promotions (crawl_id, position, title, description, price, image, source, date, fingerprint)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, p := range crawl.Promotions {
		if _, err := stmt.ExecContext(ctx, id, i, p.Title, p.Description, p.Price, p.Image,
			p.Source, p.Date, p.Fingerprint()); err != nil {
			return fmt.Errorf("insert promotion %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	crawl.ID = id
	return nil
}

// FindCrawlByID retrieves a crawl and its promotions.
func (s *PromotionService) FindCrawlByID(ctx context.Context, id string) (*dealie.Crawl, error) {
	crawls, err := s.FindCrawls(ctx, dealie.CrawlFilter{ID: &id, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(crawls) == 0 {
		return nil, dealie.Errorf(dealie.ENOTFOUND, "crawl not found")
	}

	crawl := crawls[0]
	crawl.Promotions, err = s.FindPromotions(ctx, dealie.PromotionFilter{CrawlID: &id})
	if err != nil {
		return nil, err
	}
	return crawl, nil
}

// FindCrawls retrieves crawls matching the filter, newest first.
func (s *PromotionService) FindCrawls(ctx context.Context, filter dealie.CrawlFilter) ([]*dealie.Crawl, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, seed_url, max_depth, pages, failed, started_at, finished_at FROM crawls WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.SeedURL != nil {
		query.WriteString(" AND seed_url = ?")
		args = append(args, *filter.SeedURL)
	}

	query.WriteString(" ORDER BY started_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var crawls []*dealie.Crawl
	for rows.Next() {
		var crawl dealie.Crawl
		var startedAt, finishedAt string

		if err := rows.Scan(&crawl.ID, &crawl.SeedURL, &crawl.MaxDepth, &crawl.Pages, &crawl.Failed,
			&startedAt, &finishedAt); err != nil {
			return nil, err
		}

		if crawl.StartedAt, err = parseRFC3339(startedAt, "started_at"); err != nil {
			return nil, err
		}
		if crawl.FinishedAt, err = parseRFC3339(finishedAt, "finished_at"); err != nil {
			return nil, err
		}

		crawls = append(crawls, &crawl)
	}

	return crawls, rows.Err()
}

// FindPromotions retrieves promotions matching the filter in the order
// they were extracted.
func (s *PromotionService) FindPromotions(ctx context.Context, filter dealie.PromotionFilter) ([]*dealie.Promotion, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT title, description, price, image, source, date FROM promotions WHERE 1=1")

	if filter.CrawlID != nil {
		query.WriteString(" AND crawl_id = ?")
		args = append(args, *filter.CrawlID)
	}
	if filter.Source != nil {
		query.WriteString(" AND source = ?")
		args = append(args, *filter.Source)
	}

	query.WriteString(" ORDER BY crawl_id, position")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var promos []*dealie.Promotion
	for rows.Next() {
		var p dealie.Promotion
		if err := rows.Scan(&p.Title, &p.Description, &p.Price, &p.Image, &p.Source, &p.Date); err != nil {
			return nil, err
		}
		promos = append(promos, &p)
	}

	return promos, rows.Err()
}

// DeleteCrawl permanently removes a crawl and its promotions.
func (s *PromotionService) DeleteCrawl(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM crawls WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return dealie.Errorf(dealie.ENOTFOUND, "crawl not found")
	}

	return nil
}
