package models

import (
	"database/sql"
	"time"
)

// PaymentRequest represents a dues payment request.
type PaymentRequest struct {
	ID          string         `db:"id"`
	MemberID    int64          `db:"member_id"`
	CollectorID int64          `db:"collector_id"`
	PaymentType string         `db:"payment_type"`
	AmountPence int64          `db:"amount_pence"`
	Status      string         `db:"status"`
	CreatedAt   time.Time      `db:"created_at"`
	ApprovedAt  sql.NullTime   `db:"approved_at"`
	ApprovedBy  sql.NullString `db:"approved_by"`
}

// PaymentRequestDetail is a payment request joined with display-only member
// and collector names.
type PaymentRequestDetail struct {
	PaymentRequest
	MemberName    sql.NullString `db:"member_name"`
	CollectorName sql.NullString `db:"collector_name"`
}
