package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/NihalNavath/Campus-Navigator/internal/api"
	"github.com/NihalNavath/Campus-Navigator/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

const (
	testAdminUser     = "admin"
	testAdminPassword = "integration-password"
)

type testEnv struct {
	Server     *httptest.Server
	Client     *http.Client
	EventsFile string
}

// setupTestEnv starts the full router against a throwaway events file and
// returns a client with a cookie jar so sessions behave like a browser.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	eventsFile := filepath.Join(t.TempDir(), "events.json")
	cfg := config.Config{
		Server: config.ServerConfig{Host: "127.0.0.1", Port: 0},
		Auth: config.AuthConfig{
			AdminUsername:   testAdminUser,
			AdminPassword:   testAdminPassword,
			SessionTTLHours: 24,
		},
		Store:       config.StoreConfig{EventsFile: eventsFile},
		Logging:     config.LoggingConfig{Level: "error", Format: "json"},
		Environment: "test",
	}

	server := httptest.NewServer(api.NewRouter(cfg, zerolog.Nop(), api.BuildInfo{Version: "test", GitCommit: "none"}))
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &testEnv{
		Server:     server,
		Client:     &http.Client{Jar: jar},
		EventsFile: eventsFile,
	}
}

func (e *testEnv) login(t *testing.T) {
	t.Helper()
	resp := e.postJSON(t, "/api/auth/login", map[string]string{
		"username": testAdminUser,
		"password": testAdminPassword,
	})
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode, "login must succeed")
}

func (e *testEnv) postJSON(t *testing.T, path string, payload any) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	resp, err := e.Client.Post(e.Server.URL+path, "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	return resp
}

func (e *testEnv) doJSON(t *testing.T, method, path string, payload any) *http.Response {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, e.Server.URL+path, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.Client.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}
