package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session represents one authenticated device. The raw token is handed to the
// client once and only its hash is ever stored.
type Session struct {
	ID        uuid.UUID // Public identifier, safe to expose in session listings.
	UserID    int64     // Owning user.
	TokenHash string    // SHA-256 hash of the raw session token.
	UserAgent string    // Client user agent captured at login.
	IPAddress string    // Client address captured at login.
	CreatedAt time.Time
}

// SessionInfo is the externally visible view of a session.
type SessionInfo struct {
	ID        uuid.UUID `json:"id"`
	UserAgent string    `json:"user_agent"`
	IPAddress string    `json:"ip_address"`
	CreatedAt time.Time `json:"created_at"`
}

// Info strips token material from the session.
func (s *Session) Info() *SessionInfo {
	return &SessionInfo{
		ID:        s.ID,
		UserAgent: s.UserAgent,
		IPAddress: s.IPAddress,
		CreatedAt: s.CreatedAt,
	}
}
