package models

import (
	"database/sql"
	"time"
)

// User represents a login account.
type User struct {
	ID           int64          `db:"id"`
	MemberNumber string         `db:"member_number"`
	FullName     string         `db:"full_name"`
	Password     sql.NullString `db:"password"`
	Role         string         `db:"role"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}
