package web

import (
	"context"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/lodgeworks/lodged/pkg/db"
)

// HealthController handles liveness and readiness probes.
func HealthController(_ context.Context, r *mux.Router) {
	r.HandleFunc("/livez", livezHandler).Methods(http.MethodGet)
	r.HandleFunc("/readyz", readyzHandler).Methods(http.MethodGet)
}

func livezHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, "ok") //nolint:errcheck,gosec
}

// readyzHandler reports ready only when the database answers a ping.
func readyzHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := db.FromContext(ctx).PingContext(ctx); err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		io.WriteString(w, "database unreachable") //nolint:errcheck,gosec
		return
	}

	w.WriteHeader(http.StatusOK)
	io.WriteString(w, "ok") //nolint:errcheck,gosec
}
