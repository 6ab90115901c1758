package domain

// TicketCategory is read-only reference data describing how a ticket class is
// rendered on the site.
type TicketCategory struct {
	ID         int64
	Name       string
	Background string
	Font       string
}
