package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/voidrp/community-backend/internal/events"
	"github.com/voidrp/community-backend/internal/relay"
	"github.com/voidrp/community-backend/internal/repository"
	apperrors "github.com/voidrp/community-backend/pkg/util"
)

// VerificationService links game accounts with chat accounts. The game server
// hands the player a one-time sync token; the web side relays a verification
// request to the bot process, which asks the chat user to confirm and calls
// back to finalize the link.
type VerificationService struct {
	players    repository.PlayerRepository
	publisher  relay.Publisher
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewVerificationService builds the service.
func NewVerificationService(players repository.PlayerRepository, publisher relay.Publisher, dispatcher events.Dispatcher, logger *zap.Logger) *VerificationService {
	return &VerificationService{players: players, publisher: publisher, dispatcher: dispatcher, logger: logger}
}

// RequestVerification validates the sync token and relays the request to the
// chat-bot process.
func (s *VerificationService) RequestVerification(ctx context.Context, syncToken, discordID string) error {
	player, err := s.players.GetBySyncToken(ctx, syncToken)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("sync token", nil)
		}
		return err
	}

	if s.publisher == nil {
		return apperrors.NewUnavailable(errors.New("relay not configured"))
	}
	return s.publisher.PublishVerification(ctx, relay.VerificationRequest{
		SyncToken:  syncToken,
		DiscordID:  discordID,
		PlayerName: player.Name,
	})
}

// ConfirmVerification is called by the bot process once the chat user
// accepted the link. It stores the chat id and consumes the sync token.
func (s *VerificationService) ConfirmVerification(ctx context.Context, syncToken, discordID string) error {
	player, err := s.players.GetBySyncToken(ctx, syncToken)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("sync token", nil)
		}
		return err
	}

	if err := s.players.SetDiscordID(ctx, syncToken, discordID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("sync token", nil)
		}
		return err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventPlayerVerified,
			PlayerID:  player.ID,
			Timestamp: time.Now(),
			Payload: events.PlayerVerifiedPayload{
				PlayerName: player.Name,
				DiscordID:  discordID,
			},
		})
	}
	return nil
}

// Unlink removes a chat link. NOT_FOUND when no player carries the chat id.
func (s *VerificationService) Unlink(ctx context.Context, discordID string) error {
	if err := s.players.ClearDiscordID(ctx, discordID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("linked player", nil)
		}
		return err
	}
	s.logger.Info("chat link removed", zap.String("discord_id", discordID))
	return nil
}
