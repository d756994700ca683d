package web

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/lodgeworks/lodged/pkg/backend"
	"github.com/lodgeworks/lodged/pkg/proto"
)

// AuthController handles login and logout.
func AuthController(_ context.Context, r *mux.Router) {
	r.HandleFunc("/api/auth/login", loginHandler).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/logout", requireUser(logoutHandler)).Methods(http.MethodPost)
}

type loginRequest struct {
	MemberNumber string `json:"member_number"`
	Password     string `json:"password"`
}

type loginResponse struct {
	Token string     `json:"token"`
	User  proto.User `json:"user"`
}

func loginHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderJSON(w, http.StatusBadRequest, errBody(err))
		return
	}

	token, user, err := be.Authenticate(ctx, req.MemberNumber, req.Password)
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, loginResponse{Token: token, User: user})
}

func logoutHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	if err := be.Logout(ctx, bearerToken(r)); err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, map[string]interface{}{"ok": true})
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if tok, ok := strings.CutPrefix(auth, "Bearer "); ok {
		return tok
	}
	return ""
}

// requireUser resolves the session token into a caller identity and stores
// it on the request context. The collector name on the identity comes from
// the server-side scope lookup, never from the request.
func requireUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		be := backend.FromContext(ctx)

		token := bearerToken(r)
		if token == "" {
			renderError(w, r, proto.ErrUnauthorized)
			return
		}

		user, err := be.UserForToken(ctx, token)
		if err != nil {
			renderError(w, r, err)
			return
		}

		next(w, r.WithContext(proto.WithUserContext(ctx, user)))
	}
}

// requireStaff is requireUser restricted to admin and collector callers.
func requireStaff(next http.HandlerFunc) http.HandlerFunc {
	return requireUser(func(w http.ResponseWriter, r *http.Request) {
		user := proto.UserFromContext(r.Context())
		if user == nil || !(user.IsAdmin() || user.IsCollector()) {
			renderError(w, r, proto.ErrUnauthorized)
			return
		}

		next(w, r)
	})
}

// requireAdmin is requireUser plus an admin role check.
func requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return requireUser(func(w http.ResponseWriter, r *http.Request) {
		user := proto.UserFromContext(r.Context())
		if user == nil || !user.IsAdmin() {
			renderError(w, r, proto.ErrUnauthorized)
			return
		}

		next(w, r)
	})
}
