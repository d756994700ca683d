package web

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/lodgeworks/lodged/pkg/backend"
	"github.com/lodgeworks/lodged/pkg/proto"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var paymentDecisionCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "lodged",
	Subsystem: "http",
	Name:      "payment_decisions_total",
	Help:      "The total number of payment request decisions",
}, []string{"decision"})

// PaymentController handles payment request submission and approval.
func PaymentController(_ context.Context, r *mux.Router) {
	r.HandleFunc("/api/payments", requireStaff(listPaymentsHandler)).Methods(http.MethodGet)
	r.HandleFunc("/api/payments", requireUser(submitPaymentHandler)).Methods(http.MethodPost)
	r.HandleFunc("/api/payments/{id}/decide", requireAdmin(decidePaymentHandler)).Methods(http.MethodPost)
}

func listPaymentsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	payments, err := be.PaymentRequests(ctx)
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, payments)
}

type submitPaymentRequest struct {
	MemberNumber string       `json:"member_number"`
	PaymentType  string       `json:"payment_type"`
	Amount       proto.Amount `json:"amount"`
}

func submitPaymentHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	var req submitPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderJSON(w, http.StatusBadRequest, errBody(err))
		return
	}

	paymentType, err := proto.ParsePaymentType(req.PaymentType)
	if err != nil {
		renderError(w, r, err)
		return
	}

	payment, err := be.SubmitPaymentRequest(ctx, req.MemberNumber, paymentType, req.Amount)
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusCreated, payment)
}

type decideRequest struct {
	Approve bool `json:"approve"`
}

func decidePaymentHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	var req decideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderJSON(w, http.StatusBadRequest, errBody(err))
		return
	}

	payment, err := be.Decide(ctx, mux.Vars(r)["id"], req.Approve)
	if err != nil {
		renderError(w, r, err)
		return
	}

	paymentDecisionCounter.WithLabelValues(string(payment.Status)).Inc()
	renderJSON(w, http.StatusOK, payment)
}
