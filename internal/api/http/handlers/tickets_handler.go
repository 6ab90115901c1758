package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/voidrp/community-backend/internal/api/dto"
	"github.com/voidrp/community-backend/internal/auth"
	"github.com/voidrp/community-backend/internal/domain"
	"github.com/voidrp/community-backend/internal/service"
	apperrors "github.com/voidrp/community-backend/pkg/util"
)

// TicketsHandler manages the support-ticket endpoints.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// List GET /tickets.
func (h *TicketsHandler) List(c *fiber.Ctx) error {
	playerID, ok := auth.PlayerIDFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("login required")
	}

	showClosed := c.Query("showClosed") == "true"
	size := parseIntOr(c.Query("size"), service.DefaultPageSize)
	page := parseIntOr(c.Query("page"), 1)

	result, err := h.service.ListForPlayer(c.Context(), playerID, showClosed, size, page)
	if err != nil {
		return err
	}

	tickets := make([]dto.TicketSummary, 0, len(result.Tickets))
	for i := range result.Tickets {
		tickets = append(tickets, ticketSummary(&result.Tickets[i]))
	}
	return c.JSON(dto.TicketListResponse{
		Tickets: tickets,
		Total:   result.Total,
		Page:    result.Page,
		Size:    result.Size,
	})
}

// Categories GET /tickets/categories.
func (h *TicketsHandler) Categories(c *fiber.Ctx) error {
	categories, err := h.service.Categories(c.Context())
	if err != nil {
		return err
	}
	resp := make([]dto.CategoryResponse, 0, len(categories))
	for _, category := range categories {
		resp = append(resp, dto.CategoryResponse{
			ID:         category.ID,
			Name:       category.Name,
			Background: category.Background,
			Font:       category.Font,
		})
	}
	return c.JSON(resp)
}

// Get GET /tickets/:id.
func (h *TicketsHandler) Get(c *fiber.Ctx) error {
	playerID, ok := auth.PlayerIDFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("login required")
	}
	ticketID, err := parseID(c.Params("id"))
	if err != nil {
		return apperrors.NewValidationError("invalid ticket id", nil)
	}

	detail, err := h.service.GetByID(c.Context(), playerID, ticketID)
	if err != nil {
		return err
	}
	return c.JSON(ticketDetail(detail))
}

// Create POST /tickets.
func (h *TicketsHandler) Create(c *fiber.Ctx) error {
	playerID, ok := auth.PlayerIDFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("login required")
	}
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	ticketID, err := h.service.Create(c.Context(), playerID, req.Title, req.Category, req.Message)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"id": ticketID})
}

// Close POST /tickets/:id/close.
func (h *TicketsHandler) Close(c *fiber.Ctx) error {
	playerID, ok := auth.PlayerIDFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("login required")
	}
	ticketID, err := parseID(c.Params("id"))
	if err != nil {
		return apperrors.NewValidationError("invalid ticket id", nil)
	}

	if err := h.service.Close(c.Context(), ticketID, playerID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "ticket closed"})
}

// SendMessage POST /tickets/:id/message.
func (h *TicketsHandler) SendMessage(c *fiber.Ctx) error {
	playerID, ok := auth.PlayerIDFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("login required")
	}
	ticketID, err := parseID(c.Params("id"))
	if err != nil {
		return apperrors.NewValidationError("invalid ticket id", nil)
	}
	var req dto.CreateMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	if err := h.service.SendMessage(c.Context(), ticketID, playerID, req.Message); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "message sent"})
}

// EditMessage PUT /tickets/:id/message/:messageId.
func (h *TicketsHandler) EditMessage(c *fiber.Ctx) error {
	playerID, ok := auth.PlayerIDFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("login required")
	}
	ticketID, err := parseID(c.Params("id"))
	if err != nil {
		return apperrors.NewValidationError("invalid ticket id", nil)
	}
	messageID, err := parseID(c.Params("messageId"))
	if err != nil {
		return apperrors.NewValidationError("invalid message id", nil)
	}
	var req dto.CreateMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	if err := h.service.EditMessage(c.Context(), playerID, ticketID, messageID, req.Message); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "message edited"})
}

// RemoveMessage DELETE /tickets/:id/message/:messageId.
func (h *TicketsHandler) RemoveMessage(c *fiber.Ctx) error {
	playerID, ok := auth.PlayerIDFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("login required")
	}
	ticketID, err := parseID(c.Params("id"))
	if err != nil {
		return apperrors.NewValidationError("invalid ticket id", nil)
	}
	messageID, err := parseID(c.Params("messageId"))
	if err != nil {
		return apperrors.NewValidationError("invalid message id", nil)
	}

	if err := h.service.RemoveMessage(c.Context(), playerID, ticketID, messageID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "message deleted"})
}

// Search GET /tickets/search.
func (h *TicketsHandler) Search(c *fiber.Ctx) error {
	if _, ok := auth.PlayerIDFromContext(c); !ok {
		return apperrors.NewUnauthorized("login required")
	}
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		return apperrors.NewValidationError("search query cannot be empty", nil)
	}
	size := parseIntOr(c.Query("size"), service.DefaultPageSize)
	page := parseIntOr(c.Query("page"), 1)

	views, err := h.service.Search(c.Context(), query, size, page)
	if err != nil {
		return err
	}
	tickets := make([]dto.TicketSummary, 0, len(views))
	for i := range views {
		tickets = append(tickets, ticketSummary(&views[i]))
	}
	return c.JSON(tickets)
}

func ticketSummary(view *service.TicketView) dto.TicketSummary {
	return dto.TicketSummary{
		ID:          view.ID,
		Title:       view.Title,
		CreatorID:   view.CreatorID,
		CreatorName: view.CreatorName,
		Closed:      view.Closed,
		Created:     view.CreatedAt,
		Category: dto.CategoryInfo{
			Type: view.Category.Type,
			TypeColor: dto.CategoryColor{
				Background: view.Category.Background,
				Font:       view.Category.Font,
			},
		},
	}
}

func ticketDetail(detail *service.TicketDetail) dto.TicketDetailResponse {
	messages := make([]dto.ThreadMessageResponse, 0, len(detail.Messages))
	for i := range detail.Messages {
		messages = append(messages, threadMessage(&detail.Messages[i]))
	}
	return dto.TicketDetailResponse{
		TicketSummary: ticketSummary(&detail.TicketView),
		Message:       detail.TicketView.Message,
		IsEditor:      detail.IsEditor,
		CloserName:    detail.CloserName,
		ClosedAt:      detail.ClosedAt,
		Messages:      messages,
	}
}

func threadMessage(msg *domain.ThreadMessage) dto.ThreadMessageResponse {
	return dto.ThreadMessageResponse{
		Sender: dto.MessageSender{
			ID:   msg.SenderID,
			Name: msg.SenderName,
			Rank: dto.MessageSenderRank{
				Name:  msg.RankName,
				Color: msg.RankColor,
			},
		},
		Message: dto.MessageBody{
			ID:     msg.ID,
			Text:   msg.Text,
			Send:   msg.SentAt,
			Edited: msg.Edited,
		},
	}
}

func parseID(val string) (int64, error) {
	return strconv.ParseInt(val, 10, 64)
}

func parseIntOr(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}
