package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/voidrp/community-backend/internal/domain"
	"github.com/voidrp/community-backend/internal/events"
	"github.com/voidrp/community-backend/internal/repository"
	apperrors "github.com/voidrp/community-backend/pkg/util"
)

// DefaultPageSize is the ticket listing page size when none is requested.
const DefaultPageSize = 10

// CategoryDisplay carries the rendering info attached to every ticket view.
type CategoryDisplay struct {
	Type       string
	Background string
	Font       string
}

// TicketView is a ticket row decorated with its category display info.
type TicketView struct {
	repository.TicketRow
	Category CategoryDisplay
}

// TicketPage is one page of a player's ticket listing.
type TicketPage struct {
	Tickets []TicketView
	Total   int64
	Page    int
	Size    int
}

// TicketDetail is the full detail view including the message thread.
type TicketDetail struct {
	TicketView
	IsEditor   bool
	CloserName *string
	Messages   []domain.ThreadMessage
}

// TicketService owns the ticket state machine (open -> closed), thread
// assembly and the authorization rule for ticket writes. Every mutating
// operation evaluates the permission predicate itself; handlers cannot
// bypass it.
type TicketService struct {
	tickets    repository.TicketRepository
	messages   repository.TicketMessageRepository
	categories repository.TicketCategoryRepository
	identity   *IdentityService
	dispatcher events.Dispatcher
}

// TicketDependencies bundles dependencies for the ticket service.
type TicketDependencies struct {
	TicketRepo   repository.TicketRepository
	MessageRepo  repository.TicketMessageRepository
	CategoryRepo repository.TicketCategoryRepository
	Identity     *IdentityService
	Dispatcher   events.Dispatcher
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		messages:   deps.MessageRepo,
		categories: deps.CategoryRepo,
		identity:   deps.Identity,
		dispatcher: deps.Dispatcher,
	}
}

// Categories returns the ticket category reference list.
func (s *TicketService) Categories(ctx context.Context) ([]domain.TicketCategory, error) {
	return s.categories.ListAll(ctx)
}

// ListForPlayer returns one page of the player's own tickets, newest first.
// Pages are 1-indexed; includeClosed widens the listing beyond open tickets.
func (s *TicketService) ListForPlayer(ctx context.Context, playerID int64, includeClosed bool, size, page int) (*TicketPage, error) {
	size, page = normalizePage(size, page)

	rows, err := s.tickets.ListByCreator(ctx, playerID, includeClosed, size, (page-1)*size)
	if err != nil {
		return nil, err
	}
	total, err := s.tickets.CountByCreator(ctx, playerID, includeClosed)
	if err != nil {
		return nil, err
	}

	views, err := s.decorate(ctx, rows)
	if err != nil {
		return nil, err
	}
	return &TicketPage{Tickets: views, Total: total, Page: page, Size: size}, nil
}

// GetByID assembles the ticket detail view. The permission check runs before
// any detail is assembled, so an unauthorized viewer learns nothing beyond
// the ticket's existence.
func (s *TicketService) GetByID(ctx context.Context, viewerID, ticketID int64) (*TicketDetail, error) {
	row, editor, err := s.authorize(ctx, viewerID, ticketID)
	if err != nil {
		return nil, err
	}

	view, err := s.decorateOne(ctx, row)
	if err != nil {
		return nil, err
	}

	messages, err := s.messages.ListThread(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	detail := &TicketDetail{
		TicketView: *view,
		IsEditor:   editor,
		Messages:   messages,
	}

	if row.Closed && row.ClosedBy != nil {
		closer, err := s.identity.ResolveByID(ctx, *row.ClosedBy)
		if err != nil {
			return nil, err
		}
		if closer != nil {
			detail.CloserName = &closer.Name
		}
	}
	return detail, nil
}

// Create opens a new ticket. The supplied message becomes the ticket's own
// body; the thread starts empty.
func (s *TicketService) Create(ctx context.Context, creatorID int64, title string, categoryID int64, message string) (int64, error) {
	title = strings.TrimSpace(title)
	message = strings.TrimSpace(message)
	if title == "" || message == "" || categoryID <= 0 {
		return 0, apperrors.NewValidationError("title, message and category are required", nil)
	}
	if _, err := s.categoryByID(ctx, categoryID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.NewValidationError("unknown ticket category", map[string]any{"category": categoryID})
		}
		return 0, err
	}

	ticket := &domain.Ticket{
		CreatorID:  creatorID,
		Title:      title,
		CategoryID: categoryID,
		Message:    message,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return 0, err
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		PlayerID: creatorID,
		Payload: events.TicketCreatedPayload{
			TicketID:   ticket.ID,
			CategoryID: categoryID,
			Title:      title,
		},
	})
	return ticket.ID, nil
}

// Close transitions a ticket to closed. Closing is permission-gated and
// happens at most once: a second close fails with ALREADY_CLOSED.
func (s *TicketService) Close(ctx context.Context, ticketID, closerID int64) error {
	row, _, err := s.authorize(ctx, closerID, ticketID)
	if err != nil {
		return err
	}
	if row.Closed {
		return apperrors.NewConflict("ALREADY_CLOSED", "ticket is already closed")
	}

	closed, err := s.tickets.Close(ctx, ticketID, closerID)
	if err != nil {
		return err
	}
	if !closed {
		// lost the race against a concurrent close
		return apperrors.NewConflict("ALREADY_CLOSED", "ticket is already closed")
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketClosed,
		PlayerID: closerID,
		Payload:  events.TicketClosedPayload{TicketID: ticketID, ClosedBy: closerID},
	})
	return nil
}

// SendMessage appends a message to the ticket thread. Closed tickets still
// accept messages; staff regularly leave a final note after closing.
func (s *TicketService) SendMessage(ctx context.Context, ticketID, senderID int64, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return apperrors.NewValidationError("message cannot be empty", nil)
	}
	if _, _, err := s.authorize(ctx, senderID, ticketID); err != nil {
		return err
	}

	msg := &domain.TicketMessage{TicketID: ticketID, SenderID: senderID, Text: text}
	if err := s.messages.Create(ctx, msg); err != nil {
		return err
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketMessageAdded,
		PlayerID: senderID,
		Payload: events.TicketMessageAddedPayload{
			TicketID:    ticketID,
			MessageID:   msg.ID,
			BodyPreview: preview(text, 120),
		},
	})
	return nil
}

// EditMessage replaces a message's text and marks it edited.
func (s *TicketService) EditMessage(ctx context.Context, actorID, ticketID, messageID int64, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return apperrors.NewValidationError("message cannot be empty", nil)
	}
	if err := s.authorizeMessage(ctx, actorID, ticketID, messageID); err != nil {
		return err
	}
	return s.messages.UpdateText(ctx, messageID, text)
}

// RemoveMessage deletes a message from the thread.
func (s *TicketService) RemoveMessage(ctx context.Context, actorID, ticketID, messageID int64) error {
	if err := s.authorizeMessage(ctx, actorID, ticketID, messageID); err != nil {
		return err
	}
	return s.messages.Delete(ctx, messageID)
}

// Search returns category-decorated tickets whose title or body contains the
// term. A term matching nothing yields an empty page, not an error.
func (s *TicketService) Search(ctx context.Context, term string, size, page int) ([]TicketView, error) {
	size, page = normalizePage(size, page)
	rows, err := s.tickets.Search(ctx, term, size, (page-1)*size)
	if err != nil {
		return nil, err
	}
	views, err := s.decorate(ctx, rows)
	if err != nil {
		return nil, err
	}
	return views, nil
}

// IsPermittedForTicket is the core authorization predicate: the ticket's
// creator and any player whose rank carries the ticket-editor bit may act on
// it. Absent ticket or player is NOT_FOUND.
func (s *TicketService) IsPermittedForTicket(ctx context.Context, playerID, ticketID int64) (bool, error) {
	row, err := s.loadTicket(ctx, ticketID)
	if err != nil {
		return false, err
	}
	permitted, _, err := s.permissionFacts(ctx, playerID, row)
	return permitted, err
}

// authorize loads the ticket and enforces the permission predicate, returning
// the row and whether the caller holds the editor capability.
func (s *TicketService) authorize(ctx context.Context, playerID, ticketID int64) (*repository.TicketRow, bool, error) {
	row, err := s.loadTicket(ctx, ticketID)
	if err != nil {
		return nil, false, err
	}
	permitted, editor, err := s.permissionFacts(ctx, playerID, row)
	if err != nil {
		return nil, false, err
	}
	if !permitted {
		return nil, false, apperrors.NewForbidden("no permission for this ticket")
	}
	return row, editor, nil
}

func (s *TicketService) authorizeMessage(ctx context.Context, actorID, ticketID, messageID int64) error {
	if _, _, err := s.authorize(ctx, actorID, ticketID); err != nil {
		return err
	}
	msg, err := s.messages.GetByID(ctx, messageID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("message", nil)
		}
		return err
	}
	if msg.TicketID != ticketID {
		return apperrors.NewNotFound("message", nil)
	}
	return nil
}

func (s *TicketService) permissionFacts(ctx context.Context, playerID int64, row *repository.TicketRow) (permitted, editor bool, err error) {
	player, err := s.identity.ResolveByID(ctx, playerID)
	if err != nil {
		return false, false, err
	}
	if player == nil {
		return false, false, apperrors.NewNotFound("player", nil)
	}

	ranked, ok, err := s.identity.AttachRank(ctx, player)
	if err != nil {
		return false, false, err
	}
	editor = ok && ranked.CanEditTickets

	return row.CreatorID == playerID || editor, editor, nil
}

func (s *TicketService) loadTicket(ctx context.Context, ticketID int64) (*repository.TicketRow, error) {
	row, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", nil)
		}
		return nil, err
	}
	return row, nil
}

// decorate attaches category display info to each row, failing loudly when a
// ticket references a category that no longer exists.
func (s *TicketService) decorate(ctx context.Context, rows []repository.TicketRow) ([]TicketView, error) {
	categories, err := s.categories.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]domain.TicketCategory, len(categories))
	for _, category := range categories {
		byID[category.ID] = category
	}

	views := make([]TicketView, 0, len(rows))
	for _, row := range rows {
		category, ok := byID[row.CategoryID]
		if !ok {
			return nil, apperrors.NewDataInconsistency(
				fmt.Sprintf("ticket %d references missing category %d", row.ID, row.CategoryID))
		}
		views = append(views, TicketView{
			TicketRow: row,
			Category: CategoryDisplay{
				Type:       category.Name,
				Background: category.Background,
				Font:       category.Font,
			},
		})
	}
	return views, nil
}

func (s *TicketService) decorateOne(ctx context.Context, row *repository.TicketRow) (*TicketView, error) {
	views, err := s.decorate(ctx, []repository.TicketRow{*row})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *TicketService) categoryByID(ctx context.Context, id int64) (*domain.TicketCategory, error) {
	categories, err := s.categories.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range categories {
		if categories[i].ID == id {
			return &categories[i], nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func normalizePage(size, page int) (int, int) {
	if size <= 0 {
		size = DefaultPageSize
	}
	if page <= 0 {
		page = 1
	}
	return size, page
}

func preview(body string, max int) string {
	body = strings.TrimSpace(body)
	if len(body) <= max {
		return body
	}
	if max <= 3 {
		return body[:max]
	}
	return body[:max-3] + "..."
}
