package database

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/lodgeworks/lodged/pkg/db"
	"github.com/lodgeworks/lodged/pkg/db/models"
	"github.com/lodgeworks/lodged/pkg/store"
	"github.com/matryer/is"
)

func seedPayment(t *testing.T, ctx context.Context, dbx *db.DB, st store.Store, id string) models.PaymentRequest {
	t.Helper()
	is := is.New(t)

	c, err := st.FindCollectorByName(ctx, dbx, "North")
	if err != nil {
		c, err = st.CreateCollector(ctx, dbx, "North", "C1")
		is.NoErr(err)
	}

	m, err := st.GetMemberByNumber(ctx, dbx, "M1")
	if err != nil {
		m, err = st.CreateMember(ctx, dbx, "M1", "Jane Doe", "North")
		is.NoErr(err)
	}

	p, err := st.CreatePaymentRequest(ctx, dbx, id, m.ID, c.ID, "yearly", 5000)
	is.NoErr(err)
	return p
}

func TestCreatePaymentRequest(t *testing.T) {
	is := is.New(t)
	ctx, dbx, st := setupDB(t)

	p := seedPayment(t, ctx, dbx, st, "p1")
	is.Equal(p.Status, "pending")
	is.Equal(p.AmountPence, int64(5000))
	is.True(!p.ApprovedAt.Valid)
	is.True(!p.ApprovedBy.Valid)
}

func TestDecideAtMostOnce(t *testing.T) {
	is := is.New(t)
	ctx, dbx, st := setupDB(t)
	seedPayment(t, ctx, dbx, st, "p1")

	matched, err := st.DecidePaymentRequest(ctx, dbx, "p1", "A1", true, time.Now())
	is.NoErr(err)
	is.True(matched)

	// A second decision, even the opposite one, changes nothing.
	matched, err = st.DecidePaymentRequest(ctx, dbx, "p1", "A2", false, time.Now())
	is.NoErr(err)
	is.True(!matched)

	p, err := st.GetPaymentRequest(ctx, dbx, "p1")
	is.NoErr(err)
	is.Equal(p.Status, "approved")
	is.Equal(p.ApprovedBy.String, "A1")
	is.True(p.ApprovedAt.Valid)
}

func TestDecideReject(t *testing.T) {
	is := is.New(t)
	ctx, dbx, st := setupDB(t)
	seedPayment(t, ctx, dbx, st, "p1")

	matched, err := st.DecidePaymentRequest(ctx, dbx, "p1", "A1", false, time.Now())
	is.NoErr(err)
	is.True(matched)

	p, err := st.GetPaymentRequest(ctx, dbx, "p1")
	is.NoErr(err)
	is.Equal(p.Status, "rejected")
	is.True(!p.ApprovedAt.Valid)
	is.Equal(p.ApprovedBy.String, "A1")
}

func TestDecideConcurrent(t *testing.T) {
	is := is.New(t)
	ctx, dbx, st := setupDB(t)
	seedPayment(t, ctx, dbx, st, "p1")

	var wg sync.WaitGroup
	wins := make(chan bool, 2)
	for _, approve := range []bool{true, false} {
		wg.Add(1)
		go func(approve bool) {
			defer wg.Done()
			matched, err := st.DecidePaymentRequest(ctx, dbx, "p1", "A1", approve, time.Now())
			if err != nil {
				t.Error(err)
				return
			}
			wins <- matched
		}(approve)
	}
	wg.Wait()
	close(wins)

	var matched int
	for w := range wins {
		if w {
			matched++
		}
	}
	is.Equal(matched, 1)

	p, err := st.GetPaymentRequest(ctx, dbx, "p1")
	is.NoErr(err)
	is.True(p.Status == "approved" || p.Status == "rejected")
}

func TestCollectorRollups(t *testing.T) {
	is := is.New(t)
	ctx, dbx, st := setupDB(t)

	c, err := st.CreateCollector(ctx, dbx, "North", "C1")
	is.NoErr(err)
	m, err := st.CreateMember(ctx, dbx, "M1", "Jane Doe", "North")
	is.NoErr(err)

	for i, id := range []string{"p1", "p2", "p3"} {
		_, err := st.CreatePaymentRequest(ctx, dbx, id, m.ID, c.ID, "yearly", int64(1000*(i+1)))
		is.NoErr(err)
	}

	// Approve p1 and p2, leave p3 pending.
	for _, id := range []string{"p1", "p2"} {
		matched, err := st.DecidePaymentRequest(ctx, dbx, id, "A1", true, time.Now())
		is.NoErr(err)
		is.True(matched)
	}

	pending, err := st.CountPendingByCollector(ctx, dbx, c.ID)
	is.NoErr(err)
	is.Equal(pending, int64(1))

	total, err := st.SumApprovedByCollector(ctx, dbx, c.ID)
	is.NoErr(err)
	is.Equal(total, int64(3000))
}

func TestListPaymentRequestDetails(t *testing.T) {
	is := is.New(t)
	ctx, dbx, st := setupDB(t)
	seedPayment(t, ctx, dbx, st, "p1")

	ps, err := st.ListPaymentRequests(ctx, dbx)
	is.NoErr(err)
	is.Equal(len(ps), 1)
	is.Equal(ps[0].MemberName.String, "Jane Doe")
	is.Equal(ps[0].CollectorName.String, "North")
}
