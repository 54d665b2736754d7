package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trly/dockr/internal/catalog"
	"github.com/trly/dockr/internal/history"
	"github.com/trly/dockr/internal/testutil"
)

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T) (*Server, *history.Tracker) {
	t.Helper()
	tracker := history.NewTracker()
	s, err := New(Options{
		Logger:        testutil.NewTestLogger(t),
		GeneratorName: "dockr",
		CatalogVars:   catalog.Vars{Registry: "ghcr.io/acme"},
		History:       tracker,
		Now:           func() time.Time { return fixedNow },
	})
	require.NoError(t, err)
	return s, tracker
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// decodeData unmarshals the envelope and its data into dst.
func decodeData(t *testing.T, rec *httptest.ResponseRecorder, dst any) Response {
	t.Helper()
	var raw struct {
		Success bool            `json:"success"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	if dst != nil && len(raw.Data) > 0 {
		require.NoError(t, json.Unmarshal(raw.Data, dst))
	}
	return Response{Success: raw.Success, Message: raw.Message}
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s.Handler(), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("Content-Type"))
}

func TestDefaultProjectAndCompose(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.Handler()

	rec := do(t, h, http.MethodGet, "/api/project/default", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var project json.RawMessage
	env := decodeData(t, rec, &project)
	assert.True(t, env.Success)

	rec = do(t, h, http.MethodPost, "/api/compose", string(project))
	require.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		Compose    string   `json:"compose"`
		Dockerfile string   `json:"dockerfile"`
		Warnings   []string `json:"warnings"`
	}
	decodeData(t, rec, &got)
	assert.Contains(t, got.Compose, "  web:\n    image: nginx:latest\n")
	assert.Contains(t, got.Compose, "      - 80:80\n")
	assert.Contains(t, got.Compose, "    user: 1001:1001\n")
	assert.Empty(t, got.Dockerfile)
	assert.Empty(t, got.Warnings)
}

func TestCompose_WarningsAndMultiStage(t *testing.T) {
	s, _ := newTestServer(t)
	body := `{"services":[{"name":"api","buildContext":"./api","dependsOn":["db"]}],"multiStage":true}`

	rec := do(t, s.Handler(), http.MethodPost, "/api/compose", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var got ComposeResponse
	decodeData(t, rec, &got)
	assert.Contains(t, got.Compose, "      target: production\n")
	assert.Contains(t, got.Dockerfile, "FROM nginx:alpine AS production")
	require.Len(t, got.Warnings, 1)
	assert.Contains(t, got.Warnings[0], `unknown service "db"`)
}

func TestCompose_MalformedJSON(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s.Handler(), http.MethodPost, "/api/compose", "{not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	env := decodeData(t, rec, nil)
	assert.False(t, env.Success)
	assert.NotEmpty(t, env.Message)
}

func TestComposeDownloads(t *testing.T) {
	s, tracker := newTestServer(t)
	h := s.Handler()

	rec := do(t, h, http.MethodPost, "/api/compose/download", `{"services":[{"name":"web","image":"nginx"}]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="docker-compose.yml"`, rec.Header().Get("Content-Disposition"))
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/yaml"))
	assert.Contains(t, rec.Body.String(), "version: '3.8'")

	rec = do(t, h, http.MethodPost, "/api/compose/dockerfile/download", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="Dockerfile.secure"`, rec.Header().Get("Content-Disposition"))
	assert.Contains(t, rec.Body.String(), "USER nextjs")

	assert.Equal(t, []string{
		"# Docker Compose downloaded as Dockerfile.secure",
		"# Docker Compose downloaded as docker-compose.yml",
	}, tracker.Entries())
}

func TestDockerfilePresets(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.Handler()

	rec := do(t, h, http.MethodGet, "/api/dockerfile/presets", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var names []string
	decodeData(t, rec, &names)
	assert.Contains(t, names, "python")
	assert.Contains(t, names, "react-nginx")

	rec = do(t, h, http.MethodGet, "/api/dockerfile/presets/python", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var form map[string]any
	decodeData(t, rec, &form)
	assert.Equal(t, "python", form["template"])
	assert.Equal(t, "python:3.11-slim", form["baseImage"])
	assert.Equal(t, "8000", form["port"])

	rec = do(t, h, http.MethodGet, "/api/dockerfile/presets/cobol", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDockerfileGenerate(t *testing.T) {
	s, tracker := newTestServer(t)
	h := s.Handler()

	rec := do(t, h, http.MethodGet, "/api/dockerfile/presets/python", "")
	var form json.RawMessage
	decodeData(t, rec, &form)

	rec = do(t, h, http.MethodPost, "/api/dockerfile", string(form))
	require.Equal(t, http.StatusOK, rec.Code)
	var got DockerfileResponse
	decodeData(t, rec, &got)
	assert.True(t, strings.HasSuffix(got.Dockerfile, "CMD [\"python\", \"app.py\"]\n"))
	assert.Contains(t, got.Compose, `- "8000:8000"`)
	assert.Empty(t, got.Findings)

	rec = do(t, h, http.MethodPost, "/api/dockerfile", `{"baseImage":"alpine","customInstructions":"FOO bar"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, rec, &got)
	require.Len(t, got.Findings, 2)

	rec = do(t, h, http.MethodPost, "/api/dockerfile/download", string(form))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="Dockerfile"`, rec.Header().Get("Content-Disposition"))
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/plain"))

	rec = do(t, h, http.MethodPost, "/api/dockerfile/compose/download", string(form))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "app-network")

	assert.Equal(t, []string{"# docker-compose.yml downloaded", "# Dockerfile downloaded"}, tracker.Entries())

	rec = do(t, h, http.MethodPost, "/api/dockerfile", "[")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCatalog(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.Handler()

	rec := do(t, h, http.MethodGet, "/api/catalog?section=commands&category=images&q=docker%20push&image=api&tag=v1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var entries []catalog.Entry
	decodeData(t, rec, &entries)
	require.Len(t, entries, 1)
	assert.Equal(t, "docker push ghcr.io/acme/api:v1", entries[0].Command)

	rec = do(t, h, http.MethodGet, "/api/catalog?section=install&category=macos", "")
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, rec, &entries)
	assert.Len(t, entries, 3)
}

func TestHistoryRoutes(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.Handler()

	for _, cmd := range []string{"docker ps", "docker compose up", "# note"} {
		rec := do(t, h, http.MethodPost, "/api/history", `{"command":"`+cmd+`"}`)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	var got HistoryResponse
	rec := do(t, h, http.MethodGet, "/api/history", "")
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, rec, &got)
	assert.Equal(t, []string{"# note", "docker compose up", "docker ps"}, got.Entries)

	rec = do(t, h, http.MethodGet, "/api/history?filter=compose&q=UP", "")
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, rec, &got)
	assert.Equal(t, []string{"docker compose up"}, got.Entries)

	rec = do(t, h, http.MethodGet, "/api/history?filter=bogus", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/history/export", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="docker-commands-history-2024-05-01.txt"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "# note\ndocker compose up\ndocker ps", rec.Body.String())

	rec = do(t, h, http.MethodDelete, "/api/history", "")
	require.Equal(t, http.StatusOK, rec.Code)
	rec = do(t, h, http.MethodGet, "/api/history", "")
	decodeData(t, rec, &got)
	assert.Empty(t, got.Entries)
}

func TestRequestBodyLimit(t *testing.T) {
	s, _ := newTestServer(t)
	big := `{"command":"` + strings.Repeat("a", maxBodyBytes) + `"}`

	req := httptest.NewRequest(http.MethodPost, "/api/history", bytes.NewBufferString(big))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestServe_GracefulShutdown(t *testing.T) {
	s, _ := newTestServer(t)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln, time.Second) }()

	url := "http://" + ln.Addr().String() + "/health"
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestListenAndServe_BadAddr(t *testing.T) {
	s, _ := newTestServer(t)
	err := s.ListenAndServe(context.Background(), "256.0.0.1:http", time.Second)
	assert.Error(t, err)
}
