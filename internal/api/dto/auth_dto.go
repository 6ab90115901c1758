package dto

// LoginRequest payload. User may be a player name or an email address.
type LoginRequest struct {
	User     string `json:"user"`
	Password string `json:"password"`
}

// LoginUser is the player summary returned alongside the token.
type LoginUser struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Permission int    `json:"permission"`
	IsAdmin    bool   `json:"isAdmin"`
}

// LoginResponse payload.
type LoginResponse struct {
	Token string    `json:"token"`
	User  LoginUser `json:"user"`
}
