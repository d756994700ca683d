package web

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/lodgeworks/lodged/pkg/backend"
	"github.com/lodgeworks/lodged/pkg/proto"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var directoryQueryCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "lodged",
	Subsystem: "http",
	Name:      "directory_queries_total",
	Help:      "The total number of member directory queries",
}, []string{"role"})

// DirectoryController handles member directory queries.
func DirectoryController(_ context.Context, r *mux.Router) {
	r.HandleFunc("/api/members", requireUser(listMembersHandler)).Methods(http.MethodGet)
	r.HandleFunc("/api/members", requireAdmin(addMemberHandler)).Methods(http.MethodPost)
}

func listMembersHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	opts := backend.MemberSearchOptions{
		Term:    r.URL.Query().Get("search"),
		Page:    intParam(r, "page", 1),
		PerPage: intParam(r, "per_page", backend.DefaultPageSize),
	}

	page, err := be.Members(ctx, opts)
	if err != nil {
		renderError(w, r, err)
		return
	}

	if user := proto.UserFromContext(ctx); user != nil {
		directoryQueryCounter.WithLabelValues(string(user.Role)).Inc()
	}

	renderJSON(w, http.StatusOK, page)
}

type addMemberRequest struct {
	MemberNumber string `json:"member_number"`
	FullName     string `json:"full_name"`
	Collector    string `json:"collector"`
}

func addMemberHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	var req addMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderJSON(w, http.StatusBadRequest, errBody(err))
		return
	}

	member, err := be.AddMember(ctx, req.MemberNumber, req.FullName, req.Collector)
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusCreated, member)
}

func intParam(r *http.Request, name string, def int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return -1
	}
	return n
}
