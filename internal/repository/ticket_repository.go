package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/voidrp/community-backend/internal/domain"
)

// TicketRow is a ticket joined with its creator's display name.
type TicketRow struct {
	domain.Ticket
	CreatorName string
}

// TicketRepository encapsulates ticket persistence. Tickets are never
// deleted, so a row that existed once keeps existing.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id int64) (*TicketRow, error)
	ListByCreator(ctx context.Context, creatorID int64, includeClosed bool, limit, offset int) ([]TicketRow, error)
	CountByCreator(ctx context.Context, creatorID int64, includeClosed bool) (int64, error)
	Search(ctx context.Context, term string, limit, offset int) ([]TicketRow, error)
	Close(ctx context.Context, id, closerID int64) (bool, error)
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO web_tickets (creator, title, category, message)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created`
	return r.pool.QueryRow(ctx, query,
		ticket.CreatorID,
		ticket.Title,
		ticket.CategoryID,
		ticket.Message,
	).Scan(&ticket.ID, &ticket.CreatedAt)
}

const ticketRowColumns = `
        t.id, t.title, t.message, t.category, t.creator, t.closed, t.closed_by,
        t.created, t.closed_at, c.player_name`

func (r *ticketRepository) GetByID(ctx context.Context, id int64) (*TicketRow, error) {
	const query = `
        SELECT ` + ticketRowColumns + `
        FROM web_tickets AS t
        LEFT JOIN players AS c ON c.id = t.creator
        WHERE t.id=$1`
	var row TicketRow
	if err := scanTicketRow(r.pool.QueryRow(ctx, query, id), &row); err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *ticketRepository) ListByCreator(ctx context.Context, creatorID int64, includeClosed bool, limit, offset int) ([]TicketRow, error) {
	query := `
        SELECT ` + ticketRowColumns + `
        FROM web_tickets AS t
        LEFT JOIN players AS c ON c.id = t.creator
        WHERE t.creator=$1`
	if !includeClosed {
		query += ` AND t.closed=false`
	}
	query += ` ORDER BY t.created DESC LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, creatorID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTicketRows(rows)
}

func (r *ticketRepository) CountByCreator(ctx context.Context, creatorID int64, includeClosed bool) (int64, error) {
	query := `SELECT COUNT(*) FROM web_tickets WHERE creator=$1`
	if !includeClosed {
		query += ` AND closed=false`
	}
	var count int64
	err := r.pool.QueryRow(ctx, query, creatorID).Scan(&count)
	return count, err
}

func (r *ticketRepository) Search(ctx context.Context, term string, limit, offset int) ([]TicketRow, error) {
	const query = `
        SELECT ` + ticketRowColumns + `
        FROM web_tickets AS t
        LEFT JOIN players AS c ON c.id = t.creator
        WHERE t.title LIKE $1 OR t.message LIKE $1
        ORDER BY t.created DESC
        LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(ctx, query, "%"+term+"%", limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTicketRows(rows)
}

// Close marks a ticket closed. The state check and the update are a single
// conditional statement, so there is no check/act gap: false means the ticket
// was already closed when the statement ran.
func (r *ticketRepository) Close(ctx context.Context, id, closerID int64) (bool, error) {
	const query = `
        UPDATE web_tickets SET closed=true, closed_by=$1, closed_at=NOW()
        WHERE id=$2 AND closed=false`
	cmd, err := r.pool.Exec(ctx, query, closerID, id)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTicketRow(row rowScanner, out *TicketRow) error {
	return row.Scan(
		&out.ID,
		&out.Title,
		&out.Message,
		&out.CategoryID,
		&out.CreatorID,
		&out.Closed,
		&out.ClosedBy,
		&out.CreatedAt,
		&out.ClosedAt,
		&out.CreatorName,
	)
}

func collectTicketRows(rows pgx.Rows) ([]TicketRow, error) {
	var result []TicketRow
	for rows.Next() {
		var row TicketRow
		if err := scanTicketRow(rows, &row); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}
