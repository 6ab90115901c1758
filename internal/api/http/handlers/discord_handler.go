package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/voidrp/community-backend/internal/api/dto"
	"github.com/voidrp/community-backend/internal/service"
	apperrors "github.com/voidrp/community-backend/pkg/util"
)

// DiscordHandler exposes the chat account linking endpoints used by the
// bot process.
type DiscordHandler struct {
	verification *service.VerificationService
}

// NewDiscordHandler constructs handler.
func NewDiscordHandler(verificationService *service.VerificationService) *DiscordHandler {
	return &DiscordHandler{verification: verificationService}
}

// Verify POST /discord/verify.
func (h *DiscordHandler) Verify(c *fiber.Ctx) error {
	req, err := parseVerifyRequest(c)
	if err != nil {
		return err
	}
	if err := h.verification.RequestVerification(c.Context(), req.Token, req.ID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "verification requested"})
}

// Confirm POST /discord/confirm.
func (h *DiscordHandler) Confirm(c *fiber.Ctx) error {
	req, err := parseVerifyRequest(c)
	if err != nil {
		return err
	}
	if err := h.verification.ConfirmVerification(c.Context(), req.Token, req.ID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "account linked"})
}

// Unlink POST /discord/unlink.
func (h *DiscordHandler) Unlink(c *fiber.Ctx) error {
	var req dto.UnlinkRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.ID) == "" {
		return apperrors.NewValidationError("chat id cannot be empty", nil)
	}
	if err := h.verification.Unlink(c.Context(), req.ID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "account unlinked"})
}

func parseVerifyRequest(c *fiber.Ctx) (*dto.VerifyRequest, error) {
	var req dto.VerifyRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Token) == "" {
		return nil, apperrors.NewValidationError("sync token cannot be empty", nil)
	}
	if strings.TrimSpace(req.ID) == "" {
		return nil, apperrors.NewValidationError("chat id cannot be empty", nil)
	}
	return &req, nil
}
