package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated      EventType = "ticket_created"
	EventTicketClosed       EventType = "ticket_closed"
	EventTicketMessageAdded EventType = "ticket_message_added"
	EventPlayerVerified     EventType = "player_verified"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	PlayerID  int64       `json:"player_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	TicketID   int64  `json:"ticket_id"`
	CategoryID int64  `json:"category_id"`
	Title      string `json:"title"`
}

// TicketClosedPayload payload.
type TicketClosedPayload struct {
	TicketID int64 `json:"ticket_id"`
	ClosedBy int64 `json:"closed_by"`
}

// TicketMessageAddedPayload payload.
type TicketMessageAddedPayload struct {
	TicketID    int64  `json:"ticket_id"`
	MessageID   int64  `json:"message_id"`
	BodyPreview string `json:"body_preview"`
}

// PlayerVerifiedPayload payload.
type PlayerVerifiedPayload struct {
	PlayerName string `json:"player_name"`
	DiscordID  string `json:"discord_id"`
}
