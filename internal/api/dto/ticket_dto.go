package dto

import "time"

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Title    string `json:"title"`
	Message  string `json:"message"`
	Category int64  `json:"category"`
}

// CreateMessageRequest payload.
type CreateMessageRequest struct {
	Message string `json:"message"`
}

// CategoryColor is the display color pair of a ticket category.
type CategoryColor struct {
	Background string `json:"background"`
	Font       string `json:"font"`
}

// CategoryInfo decorates a ticket with its category display data.
type CategoryInfo struct {
	Type      string        `json:"type"`
	TypeColor CategoryColor `json:"typeColor"`
}

// CategoryResponse is a row of the category reference list.
type CategoryResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Background string `json:"background"`
	Font       string `json:"font"`
}

// TicketSummary response.
type TicketSummary struct {
	ID          int64        `json:"id"`
	Title       string       `json:"title"`
	CreatorID   int64        `json:"creatorId"`
	CreatorName string       `json:"creatorName"`
	Closed      bool         `json:"closed"`
	Created     time.Time    `json:"created"`
	Category    CategoryInfo `json:"category"`
}

// TicketListResponse is one page of a player's tickets.
type TicketListResponse struct {
	Tickets []TicketSummary `json:"tickets"`
	Total   int64           `json:"total"`
	Page    int             `json:"page"`
	Size    int             `json:"size"`
}

// MessageSenderRank is the sender's rank display data.
type MessageSenderRank struct {
	Name  *string `json:"name"`
	Color *string `json:"color"`
}

// MessageSender identifies who wrote a thread message.
type MessageSender struct {
	ID   int64             `json:"id"`
	Name string            `json:"name"`
	Rank MessageSenderRank `json:"rank"`
}

// MessageBody carries the message content.
type MessageBody struct {
	ID     int64     `json:"id"`
	Text   string    `json:"text"`
	Send   time.Time `json:"send"`
	Edited bool      `json:"edited"`
}

// ThreadMessageResponse is one entry of the ticket thread.
type ThreadMessageResponse struct {
	Sender  MessageSender `json:"sender"`
	Message MessageBody   `json:"message"`
}

// TicketDetailResponse provides the full ticket view.
type TicketDetailResponse struct {
	TicketSummary
	Message    string                  `json:"message"`
	IsEditor   bool                    `json:"isEditor"`
	CloserName *string                 `json:"closerName,omitempty"`
	ClosedAt   *time.Time              `json:"closedAt,omitempty"`
	Messages   []ThreadMessageResponse `json:"messages"`
}
