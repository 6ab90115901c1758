package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/voidrp/community-backend/internal/domain"
)

const (
	categoryCacheKey = "tickets:categories"
	categoryCacheTTL = 5 * time.Minute
)

// TicketCategoryRepository reads the category reference table. Categories
// change rarely and are joined into every ticket view, so the full list is
// cached in Redis.
type TicketCategoryRepository interface {
	ListAll(ctx context.Context) ([]domain.TicketCategory, error)
}

type ticketCategoryRepository struct {
	pool  *pgxpool.Pool
	cache *redis.Client
}

// NewTicketCategoryRepository builds repository.
func NewTicketCategoryRepository(pool *pgxpool.Pool, cache *redis.Client) TicketCategoryRepository {
	return &ticketCategoryRepository{pool: pool, cache: cache}
}

func (r *ticketCategoryRepository) ListAll(ctx context.Context) ([]domain.TicketCategory, error) {
	if cached := r.fromCache(ctx); cached != nil {
		return cached, nil
	}

	const query = `SELECT id, name, background, font FROM web_ticket_categorys ORDER BY id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.TicketCategory
	for rows.Next() {
		var category domain.TicketCategory
		if err := rows.Scan(&category.ID, &category.Name, &category.Background, &category.Font); err != nil {
			return nil, err
		}
		result = append(result, category)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	r.toCache(ctx, result)
	return result, nil
}

func (r *ticketCategoryRepository) fromCache(ctx context.Context) []domain.TicketCategory {
	if r.cache == nil {
		return nil
	}
	raw, err := r.cache.Get(ctx, categoryCacheKey).Bytes()
	if err != nil {
		return nil
	}
	var result []domain.TicketCategory
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil
	}
	return result
}

func (r *ticketCategoryRepository) toCache(ctx context.Context, categories []domain.TicketCategory) {
	if r.cache == nil || len(categories) == 0 {
		return
	}
	raw, err := json.Marshal(categories)
	if err != nil {
		return
	}
	_ = r.cache.Set(ctx, categoryCacheKey, raw, categoryCacheTTL).Err()
}
