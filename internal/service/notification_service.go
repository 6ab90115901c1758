package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/voidrp/community-backend/internal/config"
	"github.com/voidrp/community-backend/internal/events"
	"github.com/voidrp/community-backend/internal/mail"
)

// NotificationService turns domain events into email notifications for the
// management address.
type NotificationService struct {
	dispatcher events.Dispatcher
	mailer     mail.Mailer
	logger     *zap.Logger
	cfg        config.MailConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, mailer mail.Mailer, logger *zap.Logger, cfg config.MailConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		mailer:     mailer,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventTicketCreated, n.handleTicketCreated)
	n.dispatcher.Subscribe(events.EventTicketClosed, n.handleTicketClosed)
	n.dispatcher.Subscribe(events.EventTicketMessageAdded, n.handleTicketMessageAdded)
	n.dispatcher.Subscribe(events.EventPlayerVerified, n.handlePlayerVerified)
}

func (n *NotificationService) handleTicketCreated(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketCreatedPayload)
	if !ok {
		return nil
	}
	n.logger.Info("ticket created", zap.Int64("ticket_id", payload.TicketID), zap.Int64("player_id", event.PlayerID))
	return n.notifyManagement(
		fmt.Sprintf("[Ticket #%d] Neues Ticket", payload.TicketID),
		fmt.Sprintf("Spieler %d hat ein neues Ticket eröffnet: %s", event.PlayerID, payload.Title),
	)
}

func (n *NotificationService) handleTicketClosed(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketClosedPayload)
	if !ok {
		return nil
	}
	n.logger.Info("ticket closed", zap.Int64("ticket_id", payload.TicketID), zap.Int64("closed_by", payload.ClosedBy))
	return nil
}

func (n *NotificationService) handleTicketMessageAdded(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketMessageAddedPayload)
	if !ok {
		return nil
	}
	n.logger.Info("ticket message added", zap.Int64("ticket_id", payload.TicketID), zap.Int64("message_id", payload.MessageID))
	return n.notifyManagement(
		fmt.Sprintf("[Ticket #%d] Neue Nachricht", payload.TicketID),
		fmt.Sprintf("Spieler %d hat geantwortet:<br>%s", event.PlayerID, payload.BodyPreview),
	)
}

func (n *NotificationService) handlePlayerVerified(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.PlayerVerifiedPayload)
	if !ok {
		return nil
	}
	n.logger.Info("player verified", zap.String("player", payload.PlayerName), zap.String("discord_id", payload.DiscordID))
	return nil
}

func (n *NotificationService) notifyManagement(subject, body string) error {
	if n.mailer == nil || n.cfg.ManagementTo == "" {
		return nil
	}
	if err := n.mailer.Send(n.cfg.ManagementTo, subject, body); err != nil {
		n.logger.Warn("notification mail failed", zap.Error(err))
	}
	return nil
}
