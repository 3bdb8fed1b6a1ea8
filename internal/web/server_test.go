// ABOUTME: Tests for the fitness HTTP routes.
// ABOUTME: Drives every route through httptest against a temp SQLite database.
package web

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/harperreed/fitness/internal/account"
	"github.com/harperreed/fitness/internal/auth"
	"github.com/harperreed/fitness/internal/models"
	"github.com/harperreed/fitness/internal/stats"
	"github.com/harperreed/fitness/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	mu     sync.Mutex
	emails []string
}

func (n *recordingNotifier) SendReset(_ context.Context, email string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.emails = append(n.emails, email)
	return nil
}

type testEnv struct {
	db       *storage.DB
	stats    *stats.Service
	notifier *recordingNotifier
	handler  http.Handler
}

func setupTestServer(t *testing.T) *testEnv {
	t.Helper()

	db, err := storage.Open(filepath.Join(t.TempDir(), storage.DBFileName))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	statsSvc := stats.NewService(db)
	require.NoError(t, statsSvc.Initialize(context.Background()))

	notifier := &recordingNotifier{}
	srv, err := NewServer(
		WithAccounts(account.NewService(db, auth.NewHasher(1000))),
		WithStats(statsSvc),
		WithNotifier(notifier),
		WithHealthChecker(db),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	require.NoError(t, err)

	return &testEnv{db: db, stats: statsSvc, notifier: notifier, handler: srv.Handler()}
}

func (e *testEnv) get(path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	e.handler.ServeHTTP(w, req)
	return w
}

func (e *testEnv) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	e.handler.ServeHTTP(w, req)
	return w
}

func register(name, email, password string) url.Values {
	return url.Values{"name": {name}, "email": {email}, "password": {password}}
}

func login(email, password string) url.Values {
	return url.Values{"email": {email}, "password": {password}}
}

func TestStaticPages(t *testing.T) {
	env := setupTestServer(t)

	tests := []struct {
		path string
		want string
	}{
		{"/", `action="/login"`},
		{"/signup", `action="/register"`},
		{"/forgot_password", `action="/perform_reset"`},
		{"/menu", `href="/dashboard4"`},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := env.get(tt.path)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
			assert.Contains(t, w.Body.String(), tt.want)
			assert.NotContains(t, w.Body.String(), `class="alert`)
		})
	}
}

func TestRegisterAndLogin(t *testing.T) {
	env := setupTestServer(t)

	w := env.postForm("/register", register("Ann", "ann@x.com", "pw1"))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), msgAccountCreated)
	assert.Contains(t, w.Body.String(), `action="/login"`)

	w = env.postForm("/login", login("ann@x.com", "pw1"))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/menu", w.Header().Get("Location"))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := setupTestServer(t)

	env.postForm("/register", register("Ann", "ann@x.com", "pw1"))

	w := env.postForm("/register", register("Bob", "ann@x.com", "pw2"))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), msgEmailRegistered)
	assert.Contains(t, w.Body.String(), `action="/register"`)

	// Ann keeps her password
	w = env.postForm("/login", login("ann@x.com", "pw1"))
	assert.Equal(t, http.StatusFound, w.Code)
}

func TestLoginFailures(t *testing.T) {
	env := setupTestServer(t)
	env.postForm("/register", register("Ann", "ann@x.com", "pw1"))

	wrongPw := env.postForm("/login", login("ann@x.com", "nope"))
	unknown := env.postForm("/login", login("bob@x.com", "pw1"))

	for _, w := range []*httptest.ResponseRecorder{wrongPw, unknown} {
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), msgInvalidCredentials)
		assert.Empty(t, w.Header().Get("Location"))
	}
}

func TestMissingFormFields(t *testing.T) {
	env := setupTestServer(t)

	w := env.postForm("/register", url.Values{"name": {"Ann"}, "email": {"ann@x.com"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.postForm("/login", url.Values{"email": {"ann@x.com"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.postForm("/perform_reset", url.Values{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEmptyFieldsRegister(t *testing.T) {
	env := setupTestServer(t)

	w := env.postForm("/register", register("", "", ""))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), msgAccountCreated)
}

func TestPerformReset(t *testing.T) {
	env := setupTestServer(t)

	w := env.postForm("/perform_reset", url.Values{"email": {"nobody@x.com"}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), msgResetSent)
	assert.Equal(t, []string{"nobody@x.com"}, env.notifier.emails)

	// No account is created or changed
	_, err := env.db.GetUserByEmail(context.Background(), "nobody@x.com")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDashboardsShowSeed(t *testing.T) {
	env := setupTestServer(t)

	tests := []struct {
		path    string
		present []string
		absent  []string
	}{
		{"/dashboard1", []string{"tile-steps", "tile-calories", "tile-active_minutes", "tile-sleep"}, []string{"tile-heart_rate", "tile-weight"}},
		{"/dashboard2", []string{"tile-steps", "tile-calories", "tile-heart_rate", "tile-sleep"}, []string{"tile-active_minutes", "tile-weight"}},
		{"/dashboard3", []string{"tile-steps", "tile-calories", "tile-sleep"}, []string{"tile-active_minutes", "tile-heart_rate", "tile-weight"}},
		{"/dashboard4", []string{"tile-steps", "tile-calories", "tile-active_minutes", "tile-sleep", "tile-heart_rate", "tile-weight"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := env.get(tt.path)
			require.Equal(t, http.StatusOK, w.Code)
			body := w.Body.String()

			assert.Contains(t, body, ">11500<")
			assert.Contains(t, body, ">780<")
			assert.Contains(t, body, ">7h 30m<")
			for _, s := range tt.present {
				assert.Contains(t, body, s)
			}
			for _, s := range tt.absent {
				assert.NotContains(t, body, s)
			}
		})
	}

	body := env.get("/dashboard4").Body.String()
	assert.Contains(t, body, ">65<")
	assert.Contains(t, body, ">125<")
	assert.Contains(t, body, ">160<")
}

func TestSimulateUpdateThenDashboard(t *testing.T) {
	env := setupTestServer(t)

	w := env.get("/simulate_update")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Data Updated!", w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")

	snap, err := env.stats.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.SeedSleep, snap.Sleep)
	assert.Equal(t, models.SeedWeight, snap.Weight)

	body := env.get("/dashboard4").Body.String()
	assert.Contains(t, body, ">"+snap.Value(models.FieldSteps)+"<")
	assert.Contains(t, body, ">"+snap.Value(models.FieldHeartRate)+"<")
	assert.Contains(t, body, ">7h 30m<")
	assert.Contains(t, body, ">160<")
}

func TestDashboardsNotGuarded(t *testing.T) {
	env := setupTestServer(t)

	// No login has happened
	assert.Equal(t, http.StatusOK, env.get("/menu").Code)
	assert.Equal(t, http.StatusOK, env.get("/dashboard2").Code)
}

func TestHealthz(t *testing.T) {
	env := setupTestServer(t)

	w := env.get("/healthz")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

func TestHealthzStoreDown(t *testing.T) {
	env := setupTestServer(t)
	require.NoError(t, env.db.Close())

	w := env.get("/healthz")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestStaticStylesheet(t *testing.T) {
	env := setupTestServer(t)

	w := env.get("/static/style.css")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/css")
	assert.Contains(t, w.Body.String(), ".tile")
}

func TestUnknownRoutes(t *testing.T) {
	env := setupTestServer(t)

	assert.Equal(t, http.StatusNotFound, env.get("/dashboard5").Code)
	assert.Equal(t, http.StatusNotFound, env.get("/nope").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, env.get("/register").Code)
}

func TestRequestIDHeader(t *testing.T) {
	env := setupTestServer(t)

	a := env.get("/").Header().Get(RequestIDHeader)
	b := env.get("/").Header().Get(RequestIDHeader)
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}

type failingStats struct {
	err   error
	panic bool
}

func (f failingStats) Current(context.Context) (*models.StatsSnapshot, error) {
	if f.panic {
		panic("boom")
	}
	return nil, f.err
}

func (f failingStats) SimulateUpdate(context.Context) (*models.StatsSnapshot, error) {
	return nil, f.err
}

func newStubServer(t *testing.T, st Stats, logs *bytes.Buffer) http.Handler {
	t.Helper()

	srv, err := NewServer(
		WithAccounts(account.NewService(nil, nil)),
		WithStats(st),
		WithLogger(slog.New(slog.NewTextHandler(logs, nil))),
	)
	require.NoError(t, err)
	return srv.Handler()
}

func TestStoreErrorsReturn500(t *testing.T) {
	var logs bytes.Buffer
	h := newStubServer(t, failingStats{err: storage.ErrNoStats}, &logs)

	for _, path := range []string{"/dashboard1", "/simulate_update"} {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusInternalServerError, w.Code, path)
	}
	assert.Contains(t, logs.String(), "no stats snapshot stored")
}

func TestPanicRecovered(t *testing.T) {
	var logs bytes.Buffer
	h := newStubServer(t, failingStats{panic: true}, &logs)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dashboard1", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, logs.String(), "panic serving request")
}

func TestNewServerRequiresCollaborators(t *testing.T) {
	_, err := NewServer(WithStats(failingStats{}))
	assert.Error(t, err)

	_, err = NewServer(WithAccounts(account.NewService(nil, nil)))
	assert.Error(t, err)
}

func TestFormValues(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/x", strings.NewReader("a=1&b="))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	values, err := formValues(req, "a", "b")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", ""}, values)

	req = httptest.NewRequest(http.MethodPost, "/x", strings.NewReader("a=1"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	_, err = formValues(req, "a", "b")
	assert.True(t, errors.Is(err, errMissingField))
}
