package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/voidrp/community-backend/internal/domain"
)

// RankRepository reads the rank reference table.
type RankRepository interface {
	GetByName(ctx context.Context, name string) (*domain.Rank, error)
}

type rankRepository struct {
	pool *pgxpool.Pool
}

// NewRankRepository builds repository.
func NewRankRepository(pool *pgxpool.Pool) RankRepository {
	return &rankRepository{pool: pool}
}

func (r *rankRepository) GetByName(ctx context.Context, name string) (*domain.Rank, error) {
	const query = `
        SELECT rank_name, permlevel, hex_color, is_web_ticket_permitted
        FROM ranks WHERE rank_name=$1`
	var rank domain.Rank
	if err := r.pool.QueryRow(ctx, query, name).Scan(
		&rank.Name,
		&rank.PermLevel,
		&rank.HexColor,
		&rank.TicketPermitted,
	); err != nil {
		return nil, err
	}
	return &rank, nil
}
