package domain

import "time"

// TicketMessage captures a follow-up in a ticket thread. Ordering within a
// ticket is creation order.
type TicketMessage struct {
	ID       int64
	TicketID int64
	SenderID int64
	Text     string
	SentAt   time.Time
	Edited   bool
}

// ThreadMessage is a message joined with its sender's display data for the
// ticket detail view.
type ThreadMessage struct {
	TicketMessage
	SenderName string
	RankName   *string
	RankColor  *string
}
