package web

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/lodgeworks/lodged/pkg/backend"
	"github.com/lodgeworks/lodged/pkg/config"
	"github.com/lodgeworks/lodged/pkg/db"
	"github.com/lodgeworks/lodged/pkg/db/migrate"
	"github.com/lodgeworks/lodged/pkg/proto"
	"github.com/lodgeworks/lodged/pkg/store"
	"github.com/lodgeworks/lodged/pkg/store/database"
	"github.com/matryer/is"
)

// setupServer starts a test HTTP server over a migrated temp database with
// one admin and one collector account.
func setupServer(t *testing.T) (*httptest.Server, *backend.Backend) {
	t.Helper()
	ctx := context.TODO()

	cfg := config.DefaultConfig()
	cfg.DataPath = t.TempDir()
	cfg.DB.DataSource = filepath.Join(cfg.DataPath, "test.db") +
		"?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"

	ctx = config.WithContext(ctx, cfg)
	ctx = log.WithContext(ctx, log.New(io.Discard))

	dbx, err := db.Open(ctx, cfg.DB.Driver, cfg.DB.DataSource)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := dbx.Close(); err != nil {
			t.Error(err)
		}
	})

	if err := migrate.Migrate(ctx, dbx); err != nil {
		t.Fatal(err)
	}

	ctx = db.WithContext(ctx, dbx)
	st := database.New(ctx, dbx)
	ctx = store.WithContext(ctx, st)
	be := backend.New(ctx, cfg, dbx, st)
	ctx = backend.WithContext(ctx, be)

	if _, err := be.CreateAccount(ctx, "A1", "Ada Admin", "adminpass", proto.RoleAdmin, ""); err != nil {
		t.Fatal(err)
	}
	if _, err := be.CreateAccount(ctx, "C1", "Carl Collector", "collpass", proto.RoleCollector, "North"); err != nil {
		t.Fatal(err)
	}
	if _, err := be.AddMember(ctx, "M1", "Jane Doe", "North"); err != nil {
		t.Fatal(err)
	}

	srv := httptest.NewServer(NewRouter(ctx))
	t.Cleanup(srv.Close)

	return srv, be
}

func login(t *testing.T, srv *httptest.Server, number, password string) string {
	t.Helper()
	is := is.New(t)

	body, err := json.Marshal(map[string]string{
		"member_number": number,
		"password":      password,
	})
	is.NoErr(err)

	resp, err := http.Post(srv.URL+"/api/auth/login", "application/json", bytes.NewReader(body))
	is.NoErr(err)
	defer resp.Body.Close() //nolint:errcheck
	is.Equal(resp.StatusCode, http.StatusOK)

	var lr loginResponse
	is.NoErr(json.NewDecoder(resp.Body).Decode(&lr))
	is.True(lr.Token != "")

	return lr.Token
}

func doRequest(t *testing.T, srv *httptest.Server, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}

	req, err := http.NewRequest(method, srv.URL+path, &buf)
	if err != nil {
		t.Fatal(err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() }) //nolint:errcheck

	return resp
}

func TestLoginBadCredentials(t *testing.T) {
	is := is.New(t)
	srv, _ := setupServer(t)

	body, _ := json.Marshal(map[string]string{"member_number": "A1", "password": "wrong"})
	resp, err := http.Post(srv.URL+"/api/auth/login", "application/json", bytes.NewReader(body))
	is.NoErr(err)
	defer resp.Body.Close() //nolint:errcheck
	is.Equal(resp.StatusCode, http.StatusUnauthorized)
}

func TestMembersRequiresAuth(t *testing.T) {
	is := is.New(t)
	srv, _ := setupServer(t)

	resp := doRequest(t, srv, http.MethodGet, "/api/members", "", nil)
	is.Equal(resp.StatusCode, http.StatusUnauthorized)
}

func TestMembersList(t *testing.T) {
	is := is.New(t)
	srv, _ := setupServer(t)
	token := login(t, srv, "A1", "adminpass")

	resp := doRequest(t, srv, http.MethodGet, "/api/members?page=1&per_page=10", token, nil)
	is.Equal(resp.StatusCode, http.StatusOK)

	var page proto.MemberPage
	is.NoErr(json.NewDecoder(resp.Body).Decode(&page))
	is.Equal(page.TotalCount, 1)
	is.Equal(page.Members[0].FullName, "Jane Doe")
}

func TestMembersInvalidPage(t *testing.T) {
	is := is.New(t)
	srv, _ := setupServer(t)
	token := login(t, srv, "A1", "adminpass")

	resp := doRequest(t, srv, http.MethodGet, "/api/members?page=0", token, nil)
	is.Equal(resp.StatusCode, http.StatusBadRequest)
}

func TestPaymentFlow(t *testing.T) {
	is := is.New(t)
	srv, _ := setupServer(t)
	admin := login(t, srv, "A1", "adminpass")
	coll := login(t, srv, "C1", "collpass")

	// The collector files dues for their member.
	resp := doRequest(t, srv, http.MethodPost, "/api/payments", coll, map[string]interface{}{
		"member_number": "M1",
		"payment_type":  "yearly",
		"amount":        "50.00",
	})
	is.Equal(resp.StatusCode, http.StatusCreated)

	var p proto.PaymentRequest
	is.NoErr(json.NewDecoder(resp.Body).Decode(&p))
	is.Equal(p.Status, proto.StatusPending)
	is.Equal(p.Amount, proto.Amount(5000))

	// Only admins decide.
	resp = doRequest(t, srv, http.MethodPost, "/api/payments/"+p.ID+"/decide", coll, decideRequest{Approve: true})
	is.Equal(resp.StatusCode, http.StatusUnauthorized)

	resp = doRequest(t, srv, http.MethodPost, "/api/payments/"+p.ID+"/decide", admin, decideRequest{Approve: true})
	is.Equal(resp.StatusCode, http.StatusOK)

	var decided proto.PaymentRequest
	is.NoErr(json.NewDecoder(resp.Body).Decode(&decided))
	is.Equal(decided.Status, proto.StatusApproved)

	// Deciding again conflicts.
	resp = doRequest(t, srv, http.MethodPost, "/api/payments/"+p.ID+"/decide", admin, decideRequest{Approve: false})
	is.Equal(resp.StatusCode, http.StatusConflict)
}

func TestPaymentsListStaffOnly(t *testing.T) {
	is := is.New(t)
	srv, be := setupServer(t)

	if _, err := be.CreateAccount(context.TODO(), "M1", "Jane Doe", "memberpass", proto.RoleMember, ""); err != nil {
		t.Fatal(err)
	}

	// Member sessions cannot enumerate payment requests.
	member := login(t, srv, "M1", "memberpass")
	resp := doRequest(t, srv, http.MethodGet, "/api/payments", member, nil)
	is.Equal(resp.StatusCode, http.StatusUnauthorized)

	coll := login(t, srv, "C1", "collpass")
	resp = doRequest(t, srv, http.MethodGet, "/api/payments", coll, nil)
	is.Equal(resp.StatusCode, http.StatusOK)
}

func TestCollectorSummaryEndpoint(t *testing.T) {
	is := is.New(t)
	srv, _ := setupServer(t)
	token := login(t, srv, "C1", "collpass")

	resp := doRequest(t, srv, http.MethodGet, "/api/collectors/North/summary", token, nil)
	is.Equal(resp.StatusCode, http.StatusOK)

	var summary proto.CollectorSummary
	is.NoErr(json.NewDecoder(resp.Body).Decode(&summary))
	is.Equal(summary.MemberCount, 1)

	// A collector cannot read another collector's rollup.
	resp = doRequest(t, srv, http.MethodGet, "/api/collectors/South/summary", token, nil)
	is.Equal(resp.StatusCode, http.StatusUnauthorized)
}

func TestRosterDownloadLink(t *testing.T) {
	is := is.New(t)
	srv, _ := setupServer(t)
	token := login(t, srv, "A1", "adminpass")

	resp := doRequest(t, srv, http.MethodPost, "/api/members/roster/link", token, nil)
	is.Equal(resp.StatusCode, http.StatusOK)

	var link rosterLinkResponse
	is.NoErr(json.NewDecoder(resp.Body).Decode(&link))
	is.True(link.URL != "")
}

func TestHealthEndpoints(t *testing.T) {
	is := is.New(t)
	srv, _ := setupServer(t)

	for _, path := range []string{"/livez", "/readyz"} {
		resp, err := http.Get(srv.URL + path)
		is.NoErr(err)
		resp.Body.Close() //nolint:errcheck
		is.Equal(resp.StatusCode, http.StatusOK)
	}
}

func TestNotFound(t *testing.T) {
	is := is.New(t)
	srv, _ := setupServer(t)

	resp, err := http.Get(srv.URL + "/nope")
	is.NoErr(err)
	resp.Body.Close() //nolint:errcheck
	is.Equal(resp.StatusCode, http.StatusNotFound)
}
