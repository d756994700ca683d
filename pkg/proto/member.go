// Package proto defines the Lodged domain types shared across packages.
package proto

import "time"

// Member is a member of the organization's directory.
type Member struct {
	ID           int64     `json:"id"`
	MemberNumber string    `json:"member_number"`
	FullName     string    `json:"full_name"`
	// Collector is the name of the owning collector, empty when the member
	// is unassigned.
	Collector string    `json:"collector,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// MemberPage is a single page of a directory query, along with the total
// number of matching members before pagination. Callers derive the number of
// pages from TotalCount.
type MemberPage struct {
	Members    []Member `json:"members"`
	TotalCount int      `json:"total_count"`
}

// Collector is a role-holder responsible for a subset of members and their
// payment submissions. Name is the display and join attribute; ID is the
// stable internal identifier.
type Collector struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	MemberNumber string `json:"member_number"`
}

// CollectorSummary is a derived per-collector rollup.
type CollectorSummary struct {
	Collector     string `json:"collector"`
	MemberCount   int    `json:"member_count"`
	PendingCount  int    `json:"pending_count"`
	ApprovedTotal Amount `json:"approved_total"`
}
