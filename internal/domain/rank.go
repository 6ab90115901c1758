package domain

// Rank is a named role joined against players by rank name. The ticket-editor
// bit is distinct from the numeric permission level.
type Rank struct {
	Name            string
	PermLevel       int
	HexColor        string
	TicketPermitted bool
}
