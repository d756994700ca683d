package store

import (
	"context"
	"time"

	"github.com/lodgeworks/lodged/pkg/db"
	"github.com/lodgeworks/lodged/pkg/db/models"
)

// PaymentStore is an interface for managing payment requests. It is the sole
// writer of status and approval fields.
type PaymentStore interface {
	ListPaymentRequests(ctx context.Context, h db.Handler) ([]models.PaymentRequestDetail, error)
	ListPaymentRequestsByCollector(ctx context.Context, h db.Handler, collectorID int64) ([]models.PaymentRequestDetail, error)
	GetPaymentRequest(ctx context.Context, h db.Handler, id string) (models.PaymentRequest, error)
	GetPaymentRequestDetail(ctx context.Context, h db.Handler, id string) (models.PaymentRequestDetail, error)
	CreatePaymentRequest(ctx context.Context, h db.Handler, id string, memberID int64, collectorID int64, paymentType string, amountPence int64) (models.PaymentRequest, error)

	// DecidePaymentRequest atomically finalizes a pending request:
	// "UPDATE ... WHERE id = ? AND status = 'pending'". It reports whether a
	// pending row was matched; false means another decision already landed.
	DecidePaymentRequest(ctx context.Context, h db.Handler, id string, approvedBy string, approve bool, decidedAt time.Time) (bool, error)

	CountPendingByCollector(ctx context.Context, h db.Handler, collectorID int64) (int64, error)
	SumApprovedByCollector(ctx context.Context, h db.Handler, collectorID int64) (int64, error)
}
