package client_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/fleetbattle-console/internal/client"
	"github.com/mcoot/fleetbattle-console/internal/model"
	"github.com/mcoot/fleetbattle-console/internal/nav"
	"github.com/mcoot/fleetbattle-console/internal/session"
	"github.com/mcoot/fleetbattle-console/internal/storage/memory"
	tu "github.com/mcoot/fleetbattle-console/internal/testutil"
)

type clientFixture struct {
	client   *client.Client
	store    *session.Store
	registry *prometheus.Registry

	mu   sync.Mutex
	last *http.Request
}

func (f *clientFixture) lastReq() *http.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.last
}

func newFixture(t *testing.T, handler http.HandlerFunc) *clientFixture {
	t.Helper()

	f := &clientFixture{
		store:    session.New(memory.New(), tu.NopLogger()),
		registry: prometheus.NewRegistry(),
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.last = r
		f.mu.Unlock()
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	cfg := client.DefaultConfig()
	cfg.BaseURL = srv.URL + "/api/"
	f.client = client.New(cfg, f.store, nav.ContextNavigator{}, tu.NopLogger(), f.registry)
	return f
}

func respond(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

func (f *clientFixture) login(t *testing.T, token string) {
	t.Helper()
	require.NoError(t, f.store.Save(context.Background(), token, model.UserSummary{Username: "alice", Role: model.RoleAdmin}))
}

func TestAttachesStoredToken(t *testing.T) {
	f := newFixture(t, respond(http.StatusOK, `[]`))
	f.login(t, "abc")

	_, err := f.client.Get(context.Background(), "/game/levels")
	require.NoError(t, err)

	assert.Equal(t, "Bearer abc", f.lastReq().Header.Get("Authorization"))
	assert.Equal(t, "/api/game/levels", f.lastReq().URL.Path)
	assert.Equal(t, "application/json", f.lastReq().Header.Get("Content-Type"))
	assert.NotEmpty(t, f.lastReq().Header.Get("X-Request-ID"))
}

func TestNoTokenNoAuthorizationHeader(t *testing.T) {
	f := newFixture(t, respond(http.StatusOK, `{}`))

	_, err := f.client.Post(context.Background(), "/auth/login", map[string]string{"username": "a"})
	require.NoError(t, err)

	_, present := f.lastReq().Header["Authorization"]
	assert.False(t, present)
}

func TestTokenReadOnEveryRequest(t *testing.T) {
	f := newFixture(t, respond(http.StatusOK, `[]`))
	ctx := context.Background()

	f.login(t, "first")
	_, err := f.client.Get(ctx, "/game/levels")
	require.NoError(t, err)
	assert.Equal(t, "Bearer first", f.lastReq().Header.Get("Authorization"))

	f.login(t, "second")
	_, err = f.client.Get(ctx, "/game/levels")
	require.NoError(t, err)
	assert.Equal(t, "Bearer second", f.lastReq().Header.Get("Authorization"))
}

func TestUnauthorizedWithTokenClearsSessionAndNavigates(t *testing.T) {
	f := newFixture(t, respond(http.StatusUnauthorized, `{"message":"Token expired"}`))
	f.login(t, "abc")
	ctx := nav.WithLocation(context.Background(), "/users")

	_, err := f.client.Get(ctx, "/admin/users")
	require.Error(t, err)

	ce, ok := client.AsError(err)
	require.True(t, ok)
	assert.Equal(t, client.KindResponse, ce.Kind)
	assert.Equal(t, http.StatusUnauthorized, ce.StatusCode)
	assert.True(t, ce.SessionExpired)
	assert.True(t, client.IsSessionExpired(err))

	assert.False(t, f.store.HasToken(ctx))
	_, userErr := f.store.User(ctx)
	assert.ErrorIs(t, userErr, session.ErrNoProfile)

	target, moved := nav.Redirected(ctx)
	assert.True(t, moved)
	assert.Equal(t, "/login", target)
	assert.Equal(t, "/login", nav.Location(ctx))
}

func TestUnauthorizedWithoutTokenChangesNothing(t *testing.T) {
	f := newFixture(t, respond(http.StatusUnauthorized, `{"message":"Invalid credentials"}`))
	ctx := nav.WithLocation(context.Background(), "/users")

	_, err := f.client.Post(ctx, "/auth/login", map[string]string{"username": "a", "password": "b"})
	require.Error(t, err)

	assert.False(t, client.IsSessionExpired(err))
	_, moved := nav.Redirected(ctx)
	assert.False(t, moved)
	assert.Equal(t, "Invalid credentials", client.MessageOr(err, "Login failed"))
}

func TestUnauthorizedOnLoginScreenKeepsSession(t *testing.T) {
	f := newFixture(t, respond(http.StatusUnauthorized, `{"message":"Invalid credentials"}`))
	f.login(t, "abc")
	ctx := nav.WithLocation(context.Background(), "/login")

	_, err := f.client.Post(ctx, "/auth/login", map[string]string{"username": "a", "password": "b"})
	require.Error(t, err)

	assert.False(t, client.IsSessionExpired(err))
	token, ok := f.store.Token(ctx)
	assert.True(t, ok)
	assert.Equal(t, "abc", token)
	_, moved := nav.Redirected(ctx)
	assert.False(t, moved)
}

func TestOtherStatusesLeaveSessionAlone(t *testing.T) {
	for _, status := range []int{http.StatusForbidden, http.StatusNotFound, http.StatusInternalServerError, http.StatusConflict} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			f := newFixture(t, respond(status, `{"error":{"message":"nope"}}`))
			f.login(t, "abc")
			ctx := nav.WithLocation(context.Background(), "/levels")

			_, err := f.client.Delete(ctx, "/game/levels/1")
			require.Error(t, err)

			assert.Equal(t, status, client.StatusCode(err))
			assert.Equal(t, "nope", client.MessageOr(err, "fallback"))
			assert.True(t, f.store.HasToken(ctx))
			_, moved := nav.Redirected(ctx)
			assert.False(t, moved)
		})
	}
}

func TestServerMessageExtraction(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"message", `{"message":"Level exists"}`, "Level exists"},
		{"nested error", `{"error":{"code":"x","message":"Bad level"}}`, "Bad level"},
		{"error string", `{"error":"Username taken"}`, "Username taken"},
		{"problem details", `{"title":"One or more validation errors occurred.","errors":{"Size":["bad"]}}`, "One or more validation errors occurred."},
		{"plain text", `Internal Server Error`, "fallback"},
		{"empty", ``, "fallback"},
		{"no message", `{"status":400}`, "fallback"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, respond(http.StatusBadRequest, tt.body))

			_, err := f.client.Post(context.Background(), "/game/levels", map[string]int{"boardSize": 10})
			require.Error(t, err)
			assert.Equal(t, tt.want, client.MessageOr(err, "fallback"))
		})
	}
}

func TestNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	cfg := client.DefaultConfig()
	cfg.BaseURL = srv.URL
	store := session.New(memory.New(), tu.NopLogger())
	c := client.New(cfg, store, nav.ContextNavigator{}, tu.NopLogger(), nil)

	_, err := c.Get(context.Background(), "/Health")
	require.Error(t, err)

	ce, ok := client.AsError(err)
	require.True(t, ok)
	assert.Equal(t, client.KindNetwork, ce.Kind)
	assert.Equal(t, client.ConnectivityMessage, client.MessageOr(err, "fallback"))
}

func TestTimeoutIsNetworkFailure(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	cfg := client.DefaultConfig()
	cfg.BaseURL = srv.URL
	cfg.Timeout = 50 * time.Millisecond
	c := client.New(cfg, session.New(memory.New(), tu.NopLogger()), nav.ContextNavigator{}, tu.NopLogger(), nil)

	_, err := c.Get(context.Background(), "/game/levels")
	require.Error(t, err)
	ce, ok := client.AsError(err)
	require.True(t, ok)
	assert.Equal(t, client.KindNetwork, ce.Kind)
}

func TestUnencodableBodyIsRequestFailure(t *testing.T) {
	f := newFixture(t, respond(http.StatusOK, `{}`))

	_, err := f.client.Post(context.Background(), "/game/levels", map[string]any{"bad": make(chan int)})
	require.Error(t, err)

	ce, ok := client.AsError(err)
	require.True(t, ok)
	assert.Equal(t, client.KindRequest, ce.Kind)
	assert.Nil(t, f.lastReq())
	assert.Equal(t, "fallback", client.MessageOr(err, "fallback"))
}

func TestMessageOrValidation(t *testing.T) {
	err := model.NewValidationError("boardSize", "is required")
	assert.Equal(t, "boardSize: is required", client.MessageOr(err, "fallback"))
	assert.Equal(t, "fallback", client.MessageOr(errors.New("boom"), "fallback"))
	assert.Equal(t, "", client.MessageOr(nil, "fallback"))
}

func TestMetricsRecorded(t *testing.T) {
	f := newFixture(t, respond(http.StatusOK, `[]`))

	_, err := f.client.Get(context.Background(), "/game/levels")
	require.NoError(t, err)

	count, err := testutil.GatherAndCount(f.registry, "fbconsole_backend_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestRateLimitHonoursContext(t *testing.T) {
	srv := httptest.NewServer(respond(http.StatusOK, `[]`))
	defer srv.Close()

	cfg := client.DefaultConfig()
	cfg.BaseURL = srv.URL
	cfg.RateLimit = 0.001
	cfg.Burst = 1
	c := client.New(cfg, session.New(memory.New(), tu.NopLogger()), nav.ContextNavigator{}, tu.NopLogger(), nil)

	_, err := c.Get(context.Background(), "/game/levels")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = c.Get(ctx, "/game/levels")
	require.Error(t, err)
	ce, ok := client.AsError(err)
	require.True(t, ok)
	assert.Equal(t, client.KindRequest, ce.Kind)
}

func TestLogsClassifiedFailures(t *testing.T) {
	ids := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ids <- r.Header.Get("X-Request-ID")
		respond(http.StatusForbidden, `{"message":"Admins only"}`)(w, r)
	}))
	t.Cleanup(srv.Close)

	logger, logs := tu.CaptureLogger()
	cfg := client.DefaultConfig()
	cfg.BaseURL = srv.URL
	c := client.New(cfg, session.New(memory.New(), tu.NopLogger()), nav.ContextNavigator{}, logger, nil)

	_, err := c.Get(context.Background(), "/admin/users")
	require.Error(t, err)
	sent := <-ids
	require.NotEmpty(t, sent)

	var rejected map[string]any
	for _, rec := range logs.Records() {
		if rec["msg"] == "backend rejected request" {
			rejected = rec
		}
	}
	require.NotNil(t, rejected, "no failure record logged")
	assert.Equal(t, "WARN", rejected["level"])
	assert.Equal(t, http.MethodGet, rejected["method"])
	assert.Contains(t, rejected["path"], "/admin/users")
	assert.EqualValues(t, http.StatusForbidden, rejected["status"])
	assert.Equal(t, sent, rejected["request_id"])
	assert.Equal(t, "Admins only", rejected["message"])
}
