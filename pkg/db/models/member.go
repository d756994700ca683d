package models

import (
	"database/sql"
	"time"
)

// Member represents a member of the organization.
type Member struct {
	ID           int64          `db:"id"`
	MemberNumber string         `db:"member_number"`
	FullName     string         `db:"full_name"`
	Collector    sql.NullString `db:"collector"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}
