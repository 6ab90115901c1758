package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/voidrp/community-backend/internal/api/dto"
	"github.com/voidrp/community-backend/internal/service"
	apperrors "github.com/voidrp/community-backend/pkg/util"
)

// AuthHandler exposes the web login endpoint.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	req.User = strings.TrimSpace(req.User)
	if req.User == "" {
		return apperrors.NewValidationError("username cannot be empty", nil)
	}
	if strings.Contains(req.Password, " ") {
		return apperrors.NewValidationError("password must not contain spaces", nil)
	}
	if len(req.Password) < 8 {
		return apperrors.NewValidationError("password must be at least 8 characters", nil)
	}

	result, err := h.auth.Login(c.Context(), req.User, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(dto.LoginResponse{
		Token: result.Token,
		User: dto.LoginUser{
			ID:         result.PlayerID,
			Name:       result.PlayerName,
			Permission: result.Permission,
			IsAdmin:    result.IsAdmin,
		},
	})
}
