package domain

import "time"

// Player is the domain model for community members. Accounts are created by
// the game server during in-game registration; this backend only reads them
// and updates login metadata.
type Player struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	PermLevel    int
	RankName     *string
	DiscordID    *string
	SyncToken    *string
	LastWebLogin *time.Time
}

// PlayerWithRank decorates a player with the resolved rank facts used for
// ticket authorization decisions.
type PlayerWithRank struct {
	Player
	Rank           Rank
	CanEditTickets bool
}
