package proto

import (
	"fmt"
	"strings"
	"time"
)

// PaymentStatus is the lifecycle state of a payment request. Pending is the
// initial state; approved and rejected are terminal.
type PaymentStatus string

// Payment request statuses.
const (
	StatusPending  PaymentStatus = "pending"
	StatusApproved PaymentStatus = "approved"
	StatusRejected PaymentStatus = "rejected"
)

// IsFinal returns whether the status is terminal.
func (s PaymentStatus) IsFinal() bool {
	return s == StatusApproved || s == StatusRejected
}

// PaymentType is the kind of dues a payment request covers.
type PaymentType string

// Payment types.
const (
	PaymentMembership PaymentType = "membership"
	PaymentYearly     PaymentType = "yearly"
	PaymentOther      PaymentType = "other"
)

// ParsePaymentType parses a payment type string.
func ParsePaymentType(s string) (PaymentType, error) {
	switch t := PaymentType(strings.ToLower(strings.TrimSpace(s))); t {
	case PaymentMembership, PaymentYearly, PaymentOther:
		return t, nil
	default:
		return "", fmt.Errorf("unknown payment type %q", s)
	}
}

// PaymentRequest is a dues payment awaiting or past an administrator's
// decision. MemberName and CollectorName are display-only joins and may be
// empty when the owning records are gone.
type PaymentRequest struct {
	ID            string        `json:"id"`
	MemberID      int64         `json:"member_id"`
	CollectorID   int64         `json:"collector_id"`
	MemberName    string        `json:"member_name,omitempty"`
	CollectorName string        `json:"collector_name,omitempty"`
	Type          PaymentType   `json:"payment_type"`
	Amount        Amount        `json:"amount"`
	Status        PaymentStatus `json:"status"`
	CreatedAt     time.Time     `json:"created_at"`
	ApprovedAt    *time.Time    `json:"approved_at,omitempty"`
	ApprovedBy    string        `json:"approved_by,omitempty"`
}
