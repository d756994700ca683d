package models

import "time"

// Collector represents a collector responsible for a subset of members.
type Collector struct {
	ID           int64     `db:"id"`
	Name         string    `db:"name"`
	MemberNumber string    `db:"member_number"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}
