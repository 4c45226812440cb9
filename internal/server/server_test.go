package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/exercise-tracker/internal/config"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()

	templates := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(templates, "index.html"),
		[]byte(`<h1>{{.Title}}</h1>`), 0o600))

	static := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(static, "style.css"), []byte("body{}"), 0o600))

	cfg := config.Defaults()
	cfg.Port = 0
	cfg.DBPath = ":memory:"
	cfg.TemplateDir = templates
	cfg.StaticDir = static
	cfg.ShutdownTimeout = time.Second
	return cfg
}

func newTestServer(t *testing.T, cfg config.Config) *Server {
	t.Helper()
	srv, err := New(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(func() { srv.Close() })
	return srv
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestServer_ExerciseFlow(t *testing.T) {
	h := newTestServer(t, testConfig(t)).Handler()

	rr := do(t, h, http.MethodPost, "/api/users", `{"username":"fcc_test"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	var user struct {
		ID string `json:"_id"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&user))

	rr = do(t, h, http.MethodPost, "/api/users/"+user.ID+"/exercises",
		`{"description":"run","duration":"15","date":"2024-03-01"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = do(t, h, http.MethodGet, "/api/users/"+user.ID+"/logs?from=2024-01-01&to=2024-12-31&limit=5", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t,
		`{"_id":"`+user.ID+`","username":"fcc_test","count":1,"log":[{"description":"run","duration":15,"date":"Fri Mar 01 2024"}]}`,
		rr.Body.String())

	assert.NotEmpty(t, rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestServer_UnknownUserIs404(t *testing.T) {
	h := newTestServer(t, testConfig(t)).Handler()

	rr := do(t, h, http.MethodGet, "/api/users/cv37rs3pp9olc6atsptg/logs", "")

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"error":"User not found"}`, rr.Body.String())
}

func TestServer_Health(t *testing.T) {
	h := newTestServer(t, testConfig(t)).Handler()

	rr := do(t, h, http.MethodGet, "/healthz", "")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}

func TestServer_Metrics(t *testing.T) {
	h := newTestServer(t, testConfig(t)).Handler()

	do(t, h, http.MethodGet, "/api/users", "")
	rr := do(t, h, http.MethodGet, "/metrics", "")

	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, `exercise_tracker_http_requests_total{method="GET",route="/api/users",status="200"} 1`)
	assert.Contains(t, body, "go_goroutines")
}

func TestServer_IndexAndStatic(t *testing.T) {
	h := newTestServer(t, testConfig(t)).Handler()

	rr := do(t, h, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "<h1>Exercise Tracker</h1>", rr.Body.String())
	assert.True(t, strings.HasPrefix(rr.Header().Get("Content-Type"), "text/html"))

	rr = do(t, h, http.MethodGet, "/static/style.css", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "body{}", rr.Body.String())
}

func TestServer_WithoutPages(t *testing.T) {
	cfg := testConfig(t)
	cfg.TemplateDir = ""
	cfg.StaticDir = ""
	h := newTestServer(t, cfg).Handler()

	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/static/style.css", "").Code)
}

func TestNew_MissingTemplate(t *testing.T) {
	cfg := testConfig(t)
	cfg.TemplateDir = t.TempDir()

	_, err := New(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.Error(t, err)
}

func TestStart_StopsWhenContextIsCancelled(t *testing.T) {
	srv := newTestServer(t, testConfig(t))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Start(ctx) }()

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Start did not return after cancellation")
	}
}
