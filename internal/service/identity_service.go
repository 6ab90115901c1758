package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/voidrp/community-backend/internal/domain"
	"github.com/voidrp/community-backend/internal/repository"
)

// IdentityService loads player records and computes coarse role facts from
// the rank table. "Not found" is a nil result, never an error.
type IdentityService struct {
	players        repository.PlayerRepository
	ranks          repository.RankRepository
	adminPermLevel int
}

// NewIdentityService builds the service. adminPermLevel is the configured
// permission-level threshold for administrative access.
func NewIdentityService(players repository.PlayerRepository, ranks repository.RankRepository, adminPermLevel int) *IdentityService {
	return &IdentityService{players: players, ranks: ranks, adminPermLevel: adminPermLevel}
}

// ResolveByID loads a player by id; nil when no such player exists.
func (s *IdentityService) ResolveByID(ctx context.Context, id int64) (*domain.Player, error) {
	return noRowsToNil(s.players.GetByID(ctx, id))
}

// ResolveByName loads a player by case-insensitive exact name match.
func (s *IdentityService) ResolveByName(ctx context.Context, name string) (*domain.Player, error) {
	return noRowsToNil(s.players.GetByName(ctx, name))
}

// ResolveByEmail loads a player by email.
func (s *IdentityService) ResolveByEmail(ctx context.Context, email string) (*domain.Player, error) {
	return noRowsToNil(s.players.GetByEmail(ctx, email))
}

// IsAdmin reports whether the player's permission level reaches the
// configured administrative threshold.
func (s *IdentityService) IsAdmin(player *domain.Player) bool {
	return player != nil && player.PermLevel >= s.adminPermLevel
}

// AttachRank joins the player's stored rank against the rank table and
// derives the ticket-editor capability. ok=false means the player has no
// matching rank row and therefore no elevated permission; that is not an
// error.
func (s *IdentityService) AttachRank(ctx context.Context, player *domain.Player) (*domain.PlayerWithRank, bool, error) {
	if player == nil || player.RankName == nil {
		return nil, false, nil
	}
	rank, err := s.ranks.GetByName(ctx, *player.RankName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return &domain.PlayerWithRank{
		Player:         *player,
		Rank:           *rank,
		CanEditTickets: rank.TicketPermitted,
	}, true, nil
}

func noRowsToNil(player *domain.Player, err error) (*domain.Player, error) {
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return player, nil
}
