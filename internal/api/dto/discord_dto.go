package dto

// VerifyRequest asks to start account linking for a chat user.
type VerifyRequest struct {
	Token string `json:"token"`
	ID    string `json:"id"`
}

// UnlinkRequest removes an existing chat link.
type UnlinkRequest struct {
	ID string `json:"id"`
}
