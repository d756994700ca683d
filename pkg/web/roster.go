package web

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/caarlos0/tablewriter"
	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"github.com/lodgeworks/lodged/pkg/backend"
	"github.com/lodgeworks/lodged/pkg/config"
	"github.com/lodgeworks/lodged/pkg/proto"
)

// RosterController handles roster export. The export covers the caller's
// full scoped member set, not just one page. A signed link lets the caller
// hand the download to another client without handing over their session.
func RosterController(_ context.Context, r *mux.Router) {
	r.HandleFunc("/api/members/roster", requireUser(rosterHandler)).Methods(http.MethodGet)
	r.HandleFunc("/api/members/roster/link", requireUser(rosterLinkHandler)).Methods(http.MethodPost)
	r.HandleFunc("/roster/{token}", rosterDownloadHandler).Methods(http.MethodGet)
}

func rosterHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	members, err := be.Roster(ctx, r.URL.Query().Get("search"))
	if err != nil {
		renderError(w, r, err)
		return
	}

	writeRoster(w, members)
}

type rosterLinkResponse struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

func rosterLinkHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	cfg := config.FromContext(ctx)
	user := proto.UserFromContext(ctx)

	expiresAt := time.Now().Add(cfg.LinkTTL())
	claims := jwt.RegisteredClaims{
		Subject:   fmt.Sprintf("%s#%d", user.MemberNumber, user.ID),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		Issuer:    cfg.HTTP.PublicURL,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(cfg.Auth.LinkSecret))
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, rosterLinkResponse{
		URL:       fmt.Sprintf("%s/roster/%s", cfg.HTTP.PublicURL, token),
		ExpiresAt: expiresAt,
	})
}

func rosterDownloadHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	cfg := config.FromContext(ctx)
	be := backend.FromContext(ctx)

	claims := jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(mux.Vars(r)["token"], &claims,
		func(t *jwt.Token) (interface{}, error) {
			return []byte(cfg.Auth.LinkSecret), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(cfg.HTTP.PublicURL),
	)
	if err != nil {
		renderError(w, r, proto.ErrUnauthorized)
		return
	}

	user, err := be.UserBySubject(ctx, claims.Subject)
	if err != nil {
		renderError(w, r, proto.ErrUnauthorized)
		return
	}

	members, err := be.Roster(proto.WithUserContext(ctx, user), "")
	if err != nil {
		renderError(w, r, err)
		return
	}

	writeRoster(w, members)
}

func writeRoster(w http.ResponseWriter, members []proto.Member) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="roster.txt"`)

	tablewriter.Render( //nolint:errcheck,gosec
		w,
		members,
		[]string{"Member No.", "Full Name", "Collector"},
		func(m proto.Member) ([]string, error) {
			collector := m.Collector
			if collector == "" {
				collector = "-"
			}
			return []string{m.MemberNumber, m.FullName, collector}, nil
		},
	)
}
