package backend

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lodgeworks/lodged/pkg/db"
	"github.com/lodgeworks/lodged/pkg/db/models"
	"github.com/lodgeworks/lodged/pkg/proto"
)

// PaymentRequests returns every payment request, newest first, joined with
// display-only member and collector names.
func (b *Backend) PaymentRequests(ctx context.Context) ([]proto.PaymentRequest, error) {
	qctx, cancel := b.queryContext(ctx)
	defer cancel()

	ps, err := b.store.ListPaymentRequests(qctx, b.db)
	if err != nil {
		return nil, wrapStorageErr(err)
	}

	requests := make([]proto.PaymentRequest, 0, len(ps))
	for _, p := range ps {
		requests = append(requests, paymentFromDetail(p))
	}

	return requests, nil
}

// PaymentRequestsByCollector returns a single collector's payment requests,
// newest first.
func (b *Backend) PaymentRequestsByCollector(ctx context.Context, name string) ([]proto.PaymentRequest, error) {
	qctx, cancel := b.queryContext(ctx)
	defer cancel()

	c, err := b.store.FindCollectorByName(qctx, b.db, name)
	if err != nil {
		if errors.Is(db.WrapError(err), db.ErrRecordNotFound) {
			return nil, proto.ErrCollectorNotFound
		}
		return nil, wrapStorageErr(err)
	}

	ps, err := b.store.ListPaymentRequestsByCollector(qctx, b.db, c.ID)
	if err != nil {
		return nil, wrapStorageErr(err)
	}

	requests := make([]proto.PaymentRequest, 0, len(ps))
	for _, p := range ps {
		requests = append(requests, paymentFromDetail(p))
	}

	return requests, nil
}

// SubmitPaymentRequest files a new pending request for a member. Collector
// callers may only file for members they own; the collector reference always
// comes from the member record, never from the caller's input.
func (b *Backend) SubmitPaymentRequest(ctx context.Context, memberNumber string, paymentType proto.PaymentType, amount proto.Amount) (proto.PaymentRequest, error) {
	if amount <= 0 {
		return proto.PaymentRequest{}, proto.ErrInvalidPayment
	}
	if _, err := proto.ParsePaymentType(string(paymentType)); err != nil {
		return proto.PaymentRequest{}, errors.Join(proto.ErrInvalidPayment, err)
	}

	qctx, cancel := b.queryContext(ctx)
	defer cancel()

	m, err := b.store.GetMemberByNumber(qctx, b.db, memberNumber)
	if err != nil {
		if errors.Is(db.WrapError(err), db.ErrRecordNotFound) {
			return proto.PaymentRequest{}, proto.ErrMemberNotFound
		}
		return proto.PaymentRequest{}, wrapStorageErr(err)
	}

	if !m.Collector.Valid {
		return proto.PaymentRequest{}, proto.ErrCollectorNotFound
	}

	if user := proto.UserFromContext(ctx); user != nil && user.IsCollector() {
		scope, err := b.CollectorScope(ctx, user.MemberNumber)
		if err != nil || scope != m.Collector.String {
			return proto.PaymentRequest{}, proto.ErrUnauthorized
		}
	}

	c, err := b.store.FindCollectorByName(qctx, b.db, m.Collector.String)
	if err != nil {
		if errors.Is(db.WrapError(err), db.ErrRecordNotFound) {
			return proto.PaymentRequest{}, proto.ErrCollectorNotFound
		}
		return proto.PaymentRequest{}, wrapStorageErr(err)
	}

	p, err := b.store.CreatePaymentRequest(qctx, b.db, uuid.NewString(), m.ID, c.ID, string(paymentType), int64(amount))
	if err != nil {
		return proto.PaymentRequest{}, wrapStorageErr(err)
	}

	b.cache.invalidate()

	req := paymentFromModel(p)
	req.MemberName = m.FullName
	req.CollectorName = c.Name

	return req, nil
}

// Decide finalizes a pending payment request as approved or rejected on
// behalf of the approver in the context. The store applies the change as a
// single conditional update, so of two concurrent decisions exactly one
// wins; the loser gets ErrAlreadyDecided and the stored record is unchanged.
// A retry after a timeout is safe: it either still finds the request pending
// or correctly reports ErrAlreadyDecided.
func (b *Backend) Decide(ctx context.Context, id string, approve bool) (proto.PaymentRequest, error) {
	user := proto.UserFromContext(ctx)
	if user == nil {
		return proto.PaymentRequest{}, proto.ErrUnauthorized
	}

	qctx, cancel := b.queryContext(ctx)
	defer cancel()

	prior, err := b.store.GetPaymentRequest(qctx, b.db, id)
	if err != nil {
		if errors.Is(db.WrapError(err), db.ErrRecordNotFound) {
			return proto.PaymentRequest{}, proto.ErrPaymentNotFound
		}
		return proto.PaymentRequest{}, wrapStorageErr(err)
	}

	decidedAt := time.Now()
	matched, err := b.store.DecidePaymentRequest(qctx, b.db, id, user.MemberNumber, approve, decidedAt)
	if err != nil {
		return proto.PaymentRequest{}, wrapStorageErr(err)
	}

	if !matched {
		// The request exists, so the conditional update lost to an earlier
		// decision.
		return proto.PaymentRequest{}, proto.ErrAlreadyDecided
	}

	b.cache.invalidate()

	outcome := "rejected"
	if approve {
		outcome = "approved"
	}
	b.logger.Info("payment request decided",
		"id", id,
		"outcome", outcome,
		"approver", user.MemberNumber)

	detail, err := b.store.GetPaymentRequestDetail(qctx, b.db, id)
	if err != nil {
		// The decision is committed. Rather than report a failure for a
		// change that landed, answer from the pre-decision read plus what
		// the update wrote; only the display names are missing.
		b.logger.Warn("payment detail read failed after decision", "id", id, "err", err)
		req := paymentFromModel(prior)
		req.Status = proto.StatusRejected
		if approve {
			req.Status = proto.StatusApproved
			req.ApprovedAt = timePtr(decidedAt)
		}
		req.ApprovedBy = user.MemberNumber
		return req, nil
	}

	return paymentFromDetail(detail), nil
}

func paymentFromModel(p models.PaymentRequest) proto.PaymentRequest {
	req := proto.PaymentRequest{
		ID:          p.ID,
		MemberID:    p.MemberID,
		CollectorID: p.CollectorID,
		Type:        proto.PaymentType(p.PaymentType),
		Amount:      proto.Amount(p.AmountPence),
		Status:      proto.PaymentStatus(p.Status),
		CreatedAt:   p.CreatedAt,
	}
	if p.ApprovedAt.Valid {
		req.ApprovedAt = timePtr(p.ApprovedAt.Time)
	}
	if p.ApprovedBy.Valid {
		req.ApprovedBy = p.ApprovedBy.String
	}
	return req
}

func paymentFromDetail(p models.PaymentRequestDetail) proto.PaymentRequest {
	req := paymentFromModel(p.PaymentRequest)
	req.MemberName = p.MemberName.String
	req.CollectorName = p.CollectorName.String
	return req
}
