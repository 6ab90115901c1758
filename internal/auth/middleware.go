package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/voidrp/community-backend/pkg/util"
)

const playerIDKey = "auth_player_id"

// AuthMiddleware is the single chokepoint protected routes pass through. It
// validates the bearer token and attaches the decoded player id to the
// request context. The full player record is loaded later by the identity
// service, so optional routes skip the lookup entirely when no token is sent.
type AuthMiddleware struct {
	tokens *TokenManager
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	playerID, err := m.authenticate(c)
	if err != nil {
		return err
	}
	c.Locals(playerIDKey, playerID)
	return c.Next()
}

// Optional authenticates on a best-effort basis: any failure is swallowed and
// the request proceeds with no identity attached.
func (m *AuthMiddleware) Optional(c *fiber.Ctx) error {
	if playerID, err := m.authenticate(c); err == nil {
		c.Locals(playerIDKey, playerID)
	}
	return c.Next()
}

func (m *AuthMiddleware) authenticate(c *fiber.Ctx) (int64, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return 0, apperrors.NewUnauthorized("token required")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return 0, apperrors.NewUnauthorized("invalid authorization header")
	}

	playerID, err := m.tokens.Verify(parts[1])
	if err != nil {
		return 0, apperrors.NewUnauthorized("invalid token")
	}
	return playerID, nil
}

// PlayerIDFromContext retrieves the authenticated player id.
func PlayerIDFromContext(c *fiber.Ctx) (int64, bool) {
	val := c.Locals(playerIDKey)
	if val == nil {
		return 0, false
	}
	playerID, ok := val.(int64)
	return playerID, ok
}
