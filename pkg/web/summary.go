package web

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/lodgeworks/lodged/pkg/backend"
	"github.com/lodgeworks/lodged/pkg/proto"
)

// SummaryController handles per-collector rollups.
func SummaryController(_ context.Context, r *mux.Router) {
	r.HandleFunc("/api/collectors", requireUser(listCollectorsHandler)).Methods(http.MethodGet)
	r.HandleFunc("/api/collectors/{name}/summary", requireUser(collectorSummaryHandler)).Methods(http.MethodGet)
	r.HandleFunc("/api/collectors/{name}/payments", requireUser(collectorPaymentsHandler)).Methods(http.MethodGet)
}

func listCollectorsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	collectors, err := be.Collectors(ctx)
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, collectors)
}

// collectorSummaryHandler serves a collector's rollup. Collector callers can
// only ask for their own.
func collectorSummaryHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	name := mux.Vars(r)["name"]
	user := proto.UserFromContext(ctx)
	if user != nil && user.IsCollector() && user.CollectorName != name {
		renderError(w, r, proto.ErrUnauthorized)
		return
	}

	summary, err := be.CollectorSummary(ctx, name)
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, summary)
}

func collectorPaymentsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	payments, err := be.PaymentRequestsByCollector(ctx, mux.Vars(r)["name"])
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, payments)
}
