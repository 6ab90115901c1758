package domain

import "time"

// Ticket is the aggregate for support requests. A ticket starts open and is
// closed exactly once; it is never reopened or deleted. The opening message
// lives on the ticket row itself, the thread holds follow-ups only.
type Ticket struct {
	ID         int64
	Title      string
	Message    string
	CategoryID int64
	CreatorID  int64
	Closed     bool
	ClosedBy   *int64
	CreatedAt  time.Time
	ClosedAt   *time.Time
}
