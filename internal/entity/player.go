package entity

// Player identifies one participant of a room. The ID is an opaque
// per-connection identifier minted by the transport; it is never persisted
// beyond the connection's lifetime.
type Player struct {
	ID   string `json:"id"`
	Mark string `json:"mark,omitempty"`
}
