package models

import "time"

// Session represents an opaque login session. Only the sha256 hash of the
// token is stored.
type Session struct {
	ID        string    `db:"id"`
	UserID    int64     `db:"user_id"`
	TokenHash string    `db:"token_hash"`
	ExpiresAt time.Time `db:"expires_at"`
	CreatedAt time.Time `db:"created_at"`
}
