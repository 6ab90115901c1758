package handlers

import (
	"fmt"
	"html"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/voidrp/community-backend/internal/api/dto"
	"github.com/voidrp/community-backend/internal/config"
	"github.com/voidrp/community-backend/internal/mail"
	"github.com/voidrp/community-backend/internal/repository"
	apperrors "github.com/voidrp/community-backend/pkg/util"
)

// Staff listing starts at moderator level.
const teamMinPermLevel = 40

// HomeHandler serves the public landing page endpoints.
type HomeHandler struct {
	players repository.PlayerRepository
	mailer  mail.Mailer
	cfg     config.MailConfig
	logger  *zap.Logger
}

// NewHomeHandler constructs handler.
func NewHomeHandler(players repository.PlayerRepository, mailer mail.Mailer, cfg config.MailConfig, logger *zap.Logger) *HomeHandler {
	return &HomeHandler{players: players, mailer: mailer, cfg: cfg, logger: logger}
}

// Contact POST /home/contact. Forwards the form to the management inbox
// and sends the visitor an acknowledgement.
func (h *HomeHandler) Contact(c *fiber.Ctx) error {
	var req dto.ContactRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Message = strings.TrimSpace(req.Message)
	if req.Name == "" || req.Email == "" || req.Message == "" {
		return apperrors.NewValidationError("name, email and message are required", nil)
	}
	if !strings.Contains(req.Email, "@") {
		return apperrors.NewValidationError("invalid email address", nil)
	}

	body := fmt.Sprintf("<p><b>%s</b> (%s) schreibt:</p><p>%s</p>",
		html.EscapeString(req.Name), html.EscapeString(req.Email), html.EscapeString(req.Message))
	if err := h.mailer.Send(h.cfg.ManagementTo, "Neue Kontaktanfrage", body); err != nil {
		h.logger.Error("contact mail delivery failed", zap.Error(err))
		return apperrors.NewUnavailable(err)
	}

	ack := fmt.Sprintf("<p>Hallo %s,</p><p>deine Nachricht ist bei uns eingegangen. Wir melden uns so schnell wie möglich.</p>",
		html.EscapeString(req.Name))
	if err := h.mailer.Send(req.Email, "Wir haben deine Anfrage erhalten", ack); err != nil {
		h.logger.Warn("contact acknowledgement failed", zap.Error(err))
	}
	return c.JSON(fiber.Map{"message": "contact request received"})
}

// Team GET /home/team.
func (h *HomeHandler) Team(c *fiber.Ctx) error {
	members, err := h.players.ListTeam(c.Context(), teamMinPermLevel)
	if err != nil {
		return err
	}
	resp := make([]dto.TeamMemberResponse, 0, len(members))
	for _, member := range members {
		resp = append(resp, dto.TeamMemberResponse{Name: member.Name, Rank: member.RankName})
	}
	return c.JSON(resp)
}

// Statistics GET /home/statistics.
func (h *HomeHandler) Statistics(c *fiber.Ctx) error {
	count, err := h.players.Count(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(dto.StatisticsResponse{Players: count})
}
