package dto

// ContactRequest is the public contact form payload.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// TeamMemberResponse is a row of the public staff listing.
type TeamMemberResponse struct {
	Name string  `json:"name"`
	Rank *string `json:"rank"`
}

// StatisticsResponse carries public community counters.
type StatisticsResponse struct {
	Players int64 `json:"players"`
}
