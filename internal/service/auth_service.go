package service

import (
	"context"

	"github.com/voidrp/community-backend/internal/auth"
	"github.com/voidrp/community-backend/internal/repository"
	apperrors "github.com/voidrp/community-backend/pkg/util"
)

// LoginResult is returned on successful authentication.
type LoginResult struct {
	Token      string
	PlayerID   int64
	PlayerName string
	Permission int
	IsAdmin    bool
}

// AuthService coordinates the web login flow. Registration happens in-game;
// the web side only authenticates existing accounts.
type AuthService struct {
	identity *IdentityService
	players  repository.PlayerRepository
	tokens   *auth.TokenManager
}

// NewAuthService builds the service.
func NewAuthService(identity *IdentityService, players repository.PlayerRepository, tokens *auth.TokenManager) *AuthService {
	return &AuthService{identity: identity, players: players, tokens: tokens}
}

// Login resolves the player by name (falling back to email), verifies the
// password, issues a bearer token and records the login timestamp.
func (s *AuthService) Login(ctx context.Context, nameOrEmail, password string) (*LoginResult, error) {
	player, err := s.identity.ResolveByName(ctx, nameOrEmail)
	if err != nil {
		return nil, err
	}
	if player == nil {
		player, err = s.identity.ResolveByEmail(ctx, nameOrEmail)
		if err != nil {
			return nil, err
		}
	}
	if player == nil {
		return nil, apperrors.NewUnauthorized("incorrect username or password")
	}

	if err := auth.ComparePassword(player.PasswordHash, password); err != nil {
		return nil, apperrors.NewUnauthorized("incorrect username or password")
	}

	token, err := s.tokens.Issue(player.ID)
	if err != nil {
		return nil, err
	}

	if err := s.players.UpdateLastWebLogin(ctx, player.ID); err != nil {
		return nil, err
	}

	return &LoginResult{
		Token:      token,
		PlayerID:   player.ID,
		PlayerName: player.Name,
		Permission: player.PermLevel,
		IsAdmin:    s.identity.IsAdmin(player),
	}, nil
}
