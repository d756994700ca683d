package database

import (
	"context"
	"time"

	"github.com/lodgeworks/lodged/pkg/db"
	"github.com/lodgeworks/lodged/pkg/db/models"
	"github.com/lodgeworks/lodged/pkg/store"
)

type paymentStore struct{}

var _ store.PaymentStore = (*paymentStore)(nil)

const paymentDetailQuery = `SELECT payment_requests.*,
			members.full_name AS member_name,
			collectors.name AS collector_name
		FROM payment_requests
		LEFT JOIN members ON members.id = payment_requests.member_id
		LEFT JOIN collectors ON collectors.id = payment_requests.collector_id`

// ListPaymentRequests implements store.PaymentStore. Member and collector
// names are display-only left joins; a request whose member or collector is
// gone still lists, with a null name.
func (*paymentStore) ListPaymentRequests(ctx context.Context, h db.Handler) ([]models.PaymentRequestDetail, error) {
	var ps []models.PaymentRequestDetail
	query := paymentDetailQuery + ` ORDER BY payment_requests.created_at DESC, payment_requests.id ASC`
	err := h.SelectContext(ctx, &ps, h.Rebind(query))
	return ps, err //nolint:wrapcheck
}

// ListPaymentRequestsByCollector implements store.PaymentStore.
func (*paymentStore) ListPaymentRequestsByCollector(ctx context.Context, h db.Handler, collectorID int64) ([]models.PaymentRequestDetail, error) {
	var ps []models.PaymentRequestDetail
	query := paymentDetailQuery + ` WHERE payment_requests.collector_id = ?
		ORDER BY payment_requests.created_at DESC, payment_requests.id ASC`
	err := h.SelectContext(ctx, &ps, h.Rebind(query), collectorID)
	return ps, err //nolint:wrapcheck
}

// GetPaymentRequest implements store.PaymentStore.
func (*paymentStore) GetPaymentRequest(ctx context.Context, h db.Handler, id string) (models.PaymentRequest, error) {
	var p models.PaymentRequest
	query := h.Rebind(`SELECT * FROM payment_requests WHERE id = ?`)
	err := h.GetContext(ctx, &p, query, id)
	return p, err //nolint:wrapcheck
}

// GetPaymentRequestDetail implements store.PaymentStore.
func (*paymentStore) GetPaymentRequestDetail(ctx context.Context, h db.Handler, id string) (models.PaymentRequestDetail, error) {
	var p models.PaymentRequestDetail
	query := paymentDetailQuery + ` WHERE payment_requests.id = ?`
	err := h.GetContext(ctx, &p, h.Rebind(query), id)
	return p, err //nolint:wrapcheck
}

// CreatePaymentRequest implements store.PaymentStore.
func (s *paymentStore) CreatePaymentRequest(ctx context.Context, h db.Handler, id string, memberID int64, collectorID int64, paymentType string, amountPence int64) (models.PaymentRequest, error) {
	query := h.Rebind(`INSERT INTO payment_requests (id, member_id, collector_id, payment_type, amount_pence)
			VALUES (?, ?, ?, ?, ?)`)
	if _, err := h.ExecContext(ctx, query, id, memberID, collectorID, paymentType, amountPence); err != nil {
		return models.PaymentRequest{}, err //nolint:wrapcheck
	}

	return s.GetPaymentRequest(ctx, h, id)
}

// DecidePaymentRequest implements store.PaymentStore. The conditional update
// is the synchronization point: of two concurrent decisions exactly one
// matches the pending row, the other affects zero rows.
func (*paymentStore) DecidePaymentRequest(ctx context.Context, h db.Handler, id string, approvedBy string, approve bool, decidedAt time.Time) (bool, error) {
	status := "rejected"
	var approvedAt interface{}
	if approve {
		status = "approved"
		approvedAt = decidedAt.UTC()
	}

	query := h.Rebind(`UPDATE payment_requests
			SET status = ?, approved_at = ?, approved_by = ?
			WHERE id = ? AND status = 'pending'`)
	res, err := h.ExecContext(ctx, query, status, approvedAt, approvedBy, id)
	if err != nil {
		return false, err //nolint:wrapcheck
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err //nolint:wrapcheck
	}

	return n > 0, nil
}

// CountPendingByCollector implements store.PaymentStore.
func (*paymentStore) CountPendingByCollector(ctx context.Context, h db.Handler, collectorID int64) (int64, error) {
	var count int64
	query := h.Rebind(`SELECT COUNT(*) FROM payment_requests
			WHERE collector_id = ? AND status = 'pending'`)
	err := h.GetContext(ctx, &count, query, collectorID)
	return count, err //nolint:wrapcheck
}

// SumApprovedByCollector implements store.PaymentStore.
func (*paymentStore) SumApprovedByCollector(ctx context.Context, h db.Handler, collectorID int64) (int64, error) {
	var total int64
	query := h.Rebind(`SELECT COALESCE(SUM(amount_pence), 0) FROM payment_requests
			WHERE collector_id = ? AND status = 'approved'`)
	err := h.GetContext(ctx, &total, query, collectorID)
	return total, err //nolint:wrapcheck
}
