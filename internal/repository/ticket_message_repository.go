package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/voidrp/community-backend/internal/domain"
)

// TicketMessageRepository manages ticket thread messages.
type TicketMessageRepository interface {
	Create(ctx context.Context, msg *domain.TicketMessage) error
	GetByID(ctx context.Context, id int64) (*domain.TicketMessage, error)
	ListThread(ctx context.Context, ticketID int64) ([]domain.ThreadMessage, error)
	UpdateText(ctx context.Context, id int64, text string) error
	Delete(ctx context.Context, id int64) error
}

type ticketMessageRepository struct {
	pool *pgxpool.Pool
}

// NewTicketMessageRepository builds repository.
func NewTicketMessageRepository(pool *pgxpool.Pool) TicketMessageRepository {
	return &ticketMessageRepository{pool: pool}
}

func (r *ticketMessageRepository) Create(ctx context.Context, msg *domain.TicketMessage) error {
	const query = `
        INSERT INTO web_ticket_messages (ticket, creator, message)
        VALUES ($1,$2,$3)
        RETURNING id, send`
	return r.pool.QueryRow(ctx, query,
		msg.TicketID,
		msg.SenderID,
		msg.Text,
	).Scan(&msg.ID, &msg.SentAt)
}

func (r *ticketMessageRepository) GetByID(ctx context.Context, id int64) (*domain.TicketMessage, error) {
	const query = `
        SELECT id, ticket, creator, message, send, edited
        FROM web_ticket_messages WHERE id=$1`
	var msg domain.TicketMessage
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&msg.ID,
		&msg.TicketID,
		&msg.SenderID,
		&msg.Text,
		&msg.SentAt,
		&msg.Edited,
	); err != nil {
		return nil, err
	}
	return &msg, nil
}

// ListThread returns the message thread in creation order, each message
// joined with its sender's name and rank display data.
func (r *ticketMessageRepository) ListThread(ctx context.Context, ticketID int64) ([]domain.ThreadMessage, error) {
	const query = `
        SELECT tm.id, tm.ticket, tm.creator, tm.message, tm.send, tm.edited,
               c.player_name, r.rank_name, r.hex_color
        FROM web_ticket_messages AS tm
        LEFT JOIN players AS c ON tm.creator = c.id
        LEFT JOIN ranks AS r ON r.rank_name = c.player_rank
        WHERE tm.ticket=$1
        ORDER BY tm.send ASC`
	rows, err := r.pool.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ThreadMessage
	for rows.Next() {
		var msg domain.ThreadMessage
		if err := rows.Scan(
			&msg.ID,
			&msg.TicketID,
			&msg.SenderID,
			&msg.Text,
			&msg.SentAt,
			&msg.Edited,
			&msg.SenderName,
			&msg.RankName,
			&msg.RankColor,
		); err != nil {
			return nil, err
		}
		result = append(result, msg)
	}
	return result, rows.Err()
}

func (r *ticketMessageRepository) UpdateText(ctx context.Context, id int64, text string) error {
	const query = `UPDATE web_ticket_messages SET message=$1, edited=true WHERE id=$2`
	cmd, err := r.pool.Exec(ctx, query, text, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ticketMessageRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM web_ticket_messages WHERE id=$1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
