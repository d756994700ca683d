package backend

import (
	"context"
	"errors"
	"testing"

	"github.com/lodgeworks/lodged/pkg/db"
	"github.com/lodgeworks/lodged/pkg/db/models"
	"github.com/lodgeworks/lodged/pkg/proto"
	"github.com/lodgeworks/lodged/pkg/store"
	"github.com/matryer/is"
)

func TestSubmitPaymentRequest(t *testing.T) {
	is := is.New(t)
	ctx, b := setupBackend(t)

	amount, err := proto.ParseAmount("50")
	is.NoErr(err)

	p, err := b.SubmitPaymentRequest(ctx, "M1", proto.PaymentYearly, amount)
	is.NoErr(err)
	is.Equal(p.Status, proto.StatusPending)
	is.Equal(p.Amount, proto.Amount(5000))
	is.Equal(p.Amount.String(), "50.00")
	is.Equal(p.MemberName, "Jane Doe")
	is.Equal(p.CollectorName, "North")
	is.True(p.ApprovedAt == nil)
}

func TestSubmitPaymentRequestValidation(t *testing.T) {
	is := is.New(t)
	ctx, b := setupBackend(t)

	_, err := b.SubmitPaymentRequest(ctx, "M1", proto.PaymentYearly, 0)
	is.True(errors.Is(err, proto.ErrInvalidPayment))

	_, err = b.SubmitPaymentRequest(ctx, "M1", "weekly", 5000)
	is.True(errors.Is(err, proto.ErrInvalidPayment))

	_, err = b.SubmitPaymentRequest(ctx, "M9", proto.PaymentYearly, 5000)
	is.True(errors.Is(err, proto.ErrMemberNotFound))

	// A member without a collector cannot have dues filed.
	_, err = b.SubmitPaymentRequest(ctx, "M4", proto.PaymentYearly, 5000)
	is.True(errors.Is(err, proto.ErrCollectorNotFound))
}

func TestSubmitPaymentRequestCollectorOwnership(t *testing.T) {
	is := is.New(t)
	ctx, b := setupBackend(t)

	// A collector can file for their own member.
	uctx := asUser(ctx, "C1", proto.RoleCollector, "")
	_, err := b.SubmitPaymentRequest(uctx, "M1", proto.PaymentMembership, 5000)
	is.NoErr(err)

	// But not for another collector's member.
	_, err = b.SubmitPaymentRequest(uctx, "M2", proto.PaymentMembership, 5000)
	is.True(errors.Is(err, proto.ErrUnauthorized))
}

func TestDecideApprove(t *testing.T) {
	is := is.New(t)
	ctx, b := setupBackend(t)

	p, err := b.SubmitPaymentRequest(ctx, "M1", proto.PaymentYearly, 5000)
	is.NoErr(err)

	actx := asUser(ctx, "A1", proto.RoleAdmin, "")
	decided, err := b.Decide(actx, p.ID, true)
	is.NoErr(err)
	is.Equal(decided.Status, proto.StatusApproved)
	is.Equal(decided.ApprovedBy, "A1")
	is.True(decided.ApprovedAt != nil)

	// The rollup reflects the approval.
	summary, err := b.CollectorSummary(ctx, "North")
	is.NoErr(err)
	is.Equal(summary.PendingCount, 0)
	is.Equal(summary.ApprovedTotal, proto.Amount(5000))
}

func TestDecideAtMostOne(t *testing.T) {
	is := is.New(t)
	ctx, b := setupBackend(t)

	p, err := b.SubmitPaymentRequest(ctx, "M1", proto.PaymentYearly, 5000)
	is.NoErr(err)

	actx := asUser(ctx, "A1", proto.RoleAdmin, "")
	_, err = b.Decide(actx, p.ID, false)
	is.NoErr(err)

	// The opposite decision afterwards fails and changes nothing.
	_, err = b.Decide(actx, p.ID, true)
	is.True(errors.Is(err, proto.ErrAlreadyDecided))

	requests, err := b.PaymentRequests(ctx)
	is.NoErr(err)
	is.Equal(len(requests), 1)
	is.Equal(requests[0].Status, proto.StatusRejected)
}

func TestPaymentRequestsByCollector(t *testing.T) {
	is := is.New(t)
	ctx, b := setupBackend(t)

	_, err := b.SubmitPaymentRequest(ctx, "M1", proto.PaymentYearly, 5000)
	is.NoErr(err)
	_, err = b.SubmitPaymentRequest(ctx, "M2", proto.PaymentYearly, 2500)
	is.NoErr(err)

	requests, err := b.PaymentRequestsByCollector(ctx, "North")
	is.NoErr(err)
	is.Equal(len(requests), 1)
	is.Equal(requests[0].CollectorName, "North")

	_, err = b.PaymentRequestsByCollector(ctx, "East")
	is.True(errors.Is(err, proto.ErrCollectorNotFound))
}

// brokenDetailStore fails the display join read while leaving every other
// store call intact.
type brokenDetailStore struct {
	store.Store
}

func (brokenDetailStore) GetPaymentRequestDetail(context.Context, db.Handler, string) (models.PaymentRequestDetail, error) {
	return models.PaymentRequestDetail{}, errors.New("detail join unavailable")
}

func TestDecideSurvivesDetailReadFailure(t *testing.T) {
	is := is.New(t)
	ctx, b := setupBackend(t)

	p, err := b.SubmitPaymentRequest(ctx, "M1", proto.PaymentYearly, 5000)
	is.NoErr(err)

	b.store = brokenDetailStore{b.store}

	// The decision committed, so the caller gets the decided request built
	// from known fields instead of a storage error. Only the display names
	// are missing.
	actx := asUser(ctx, "A1", proto.RoleAdmin, "")
	decided, err := b.Decide(actx, p.ID, true)
	is.NoErr(err)
	is.Equal(decided.ID, p.ID)
	is.Equal(decided.Status, proto.StatusApproved)
	is.Equal(decided.ApprovedBy, "A1")
	is.Equal(decided.Amount, proto.Amount(5000))
	is.True(decided.ApprovedAt != nil)
	is.Equal(decided.MemberName, "")
}

func TestDecideUnknownRequest(t *testing.T) {
	is := is.New(t)
	ctx, b := setupBackend(t)

	actx := asUser(ctx, "A1", proto.RoleAdmin, "")
	_, err := b.Decide(actx, "nope", true)
	is.True(errors.Is(err, proto.ErrPaymentNotFound))
}

func TestDecideRequiresCaller(t *testing.T) {
	is := is.New(t)
	ctx, b := setupBackend(t)

	p, err := b.SubmitPaymentRequest(ctx, "M1", proto.PaymentYearly, 5000)
	is.NoErr(err)

	_, err = b.Decide(ctx, p.ID, true)
	is.True(errors.Is(err, proto.ErrUnauthorized))
}
