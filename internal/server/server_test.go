package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"jotter/internal/config"
	"jotter/internal/database/repositories"
	"jotter/internal/usecase"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubDB struct{}

func (stubDB) DB() *gorm.DB              { return nil }
func (stubDB) Health() map[string]string { return map[string]string{"status": "up"} }
func (stubDB) Migrate() error            { return nil }
func (stubDB) Close() error              { return nil }

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	viewsDir := t.TempDir()
	page := []byte("<html><body><h1>custom 404 page</h1></body></html>")
	require.NoError(t, os.WriteFile(filepath.Join(viewsDir, "404.html"), page, 0o644))

	staticDir := t.TempDir()
	index := []byte("<html><body>jotter shell</body></html>")
	require.NoError(t, os.WriteFile(filepath.Join(staticDir, "index.html"), index, 0o644))

	return &config.Config{
		Port:        "0",
		CORSOrigins: "http://localhost:5173",
		StaticDir:   staticDir,
		ViewsDir:    viewsDir,
	}
}

func newTestServer(t *testing.T, cfg *config.Config) *FiberServer {
	t.Helper()
	userRepo := repositories.NewMemoryUserRepository()
	noteRepo := repositories.NewMemoryNoteRepository(userRepo)
	s := newServer(cfg, stubDB{},
		usecase.NewUserService(userRepo),
		usecase.NewNoteService(noteRepo, userRepo))
	s.RegisterFiberRoutes()
	return s
}

// request runs a JSON request against the app and decodes the envelope into a
// raw map so tests can also assert on field absence.
func request(t *testing.T, s *FiberServer, method, path, body string) (*http.Response, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := s.App.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	payload := make(map[string]interface{})
	if len(raw) > 0 && strings.Contains(resp.Header.Get("Content-Type"), "json") {
		require.NoError(t, json.Unmarshal(raw, &payload), "body: %s", raw)
	}
	return resp, payload
}

func requireEnvelope(t *testing.T, payload map[string]interface{}, success bool, internalCode string) {
	t.Helper()
	require.Equal(t, success, payload["success"])
	require.Equal(t, internalCode, payload["internalCode"])
	require.NotEmpty(t, payload["message"])
}
