package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/voidrp/community-backend/internal/domain"
)

// TeamMember is a row of the public staff listing.
type TeamMember struct {
	Name     string
	RankName *string
}

// PlayerRepository defines persistence access for player accounts. Accounts
// are created by the game server; this backend reads them and updates login
// and chat-link metadata only.
type PlayerRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Player, error)
	GetByName(ctx context.Context, name string) (*domain.Player, error)
	GetByEmail(ctx context.Context, email string) (*domain.Player, error)
	GetBySyncToken(ctx context.Context, token string) (*domain.Player, error)
	UpdateLastWebLogin(ctx context.Context, id int64) error
	SetDiscordID(ctx context.Context, syncToken, discordID string) error
	ClearDiscordID(ctx context.Context, discordID string) error
	ListTeam(ctx context.Context, minPermLevel int) ([]TeamMember, error)
	Count(ctx context.Context) (int64, error)
}

type playerRepository struct {
	pool *pgxpool.Pool
}

// NewPlayerRepository returns a Postgres-backed implementation.
func NewPlayerRepository(pool *pgxpool.Pool) PlayerRepository {
	return &playerRepository{pool: pool}
}

const playerColumns = `id, player_name, email, password, player_permlevel, player_rank, discord_id, sync_token, last_web_login`

func (r *playerRepository) GetByID(ctx context.Context, id int64) (*domain.Player, error) {
	const query = `SELECT ` + playerColumns + ` FROM players WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *playerRepository) GetByName(ctx context.Context, name string) (*domain.Player, error) {
	const query = `SELECT ` + playerColumns + ` FROM players WHERE LOWER(player_name)=LOWER($1)`
	return r.fetchSingle(ctx, query, name)
}

func (r *playerRepository) GetByEmail(ctx context.Context, email string) (*domain.Player, error) {
	const query = `SELECT ` + playerColumns + ` FROM players WHERE email=$1`
	return r.fetchSingle(ctx, query, email)
}

func (r *playerRepository) GetBySyncToken(ctx context.Context, token string) (*domain.Player, error) {
	const query = `SELECT ` + playerColumns + ` FROM players WHERE sync_token=$1`
	return r.fetchSingle(ctx, query, token)
}

func (r *playerRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Player, error) {
	var player domain.Player
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&player.ID,
		&player.Name,
		&player.Email,
		&player.PasswordHash,
		&player.PermLevel,
		&player.RankName,
		&player.DiscordID,
		&player.SyncToken,
		&player.LastWebLogin,
	); err != nil {
		return nil, err
	}
	return &player, nil
}

func (r *playerRepository) UpdateLastWebLogin(ctx context.Context, id int64) error {
	const query = `UPDATE players SET last_web_login=NOW() WHERE id=$1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *playerRepository) SetDiscordID(ctx context.Context, syncToken, discordID string) error {
	const query = `UPDATE players SET discord_id=$1, sync_token=NULL WHERE sync_token=$2`
	cmd, err := r.pool.Exec(ctx, query, discordID, syncToken)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *playerRepository) ClearDiscordID(ctx context.Context, discordID string) error {
	const query = `UPDATE players SET discord_id=NULL WHERE discord_id=$1`
	cmd, err := r.pool.Exec(ctx, query, discordID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *playerRepository) ListTeam(ctx context.Context, minPermLevel int) ([]TeamMember, error) {
	const query = `
        SELECT p.player_name, r.rank_name
        FROM players AS p
        LEFT JOIN ranks AS r ON p.player_permlevel = r.permlevel
        WHERE p.player_permlevel >= $1
        ORDER BY p.player_permlevel DESC`
	rows, err := r.pool.Query(ctx, query, minPermLevel)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []TeamMember
	for rows.Next() {
		var member TeamMember
		if err := rows.Scan(&member.Name, &member.RankName); err != nil {
			return nil, err
		}
		result = append(result, member)
	}
	return result, rows.Err()
}

func (r *playerRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM players`).Scan(&count)
	return count, err
}
