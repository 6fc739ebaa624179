package domain

import "time"

// RefreshToken is the opaque, rotating credential backing a session.
// At most one live token exists per user; issuing a new one always
// removes the previous one first.
type RefreshToken struct {
	ID        string
	UserID    string
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
}

func (rt *RefreshToken) IsExpired(now time.Time) bool {
	return now.After(rt.ExpiresAt)
}
