package proto

import (
	"fmt"
	"strings"
)

// Role is the role of a login account.
type Role string

// Roles.
const (
	RoleMember    Role = "member"
	RoleCollector Role = "collector"
	RoleAdmin     Role = "admin"
)

// ParseRole parses a role string.
func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleMember, RoleCollector, RoleAdmin:
		return r, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// User is an authenticated caller.
type User struct {
	ID           int64  `json:"id"`
	MemberNumber string `json:"member_number"`
	FullName     string `json:"full_name"`
	Role         Role   `json:"role"`

	// CollectorName is the caller's own collector name. It is resolved
	// server-side from the member number for collector-role callers and is
	// never taken from client input.
	CollectorName string `json:"collector_name,omitempty"`
}

// IsAdmin returns whether the user is an admin.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsCollector returns whether the user is a collector.
func (u User) IsCollector() bool {
	return u.Role == RoleCollector
}
