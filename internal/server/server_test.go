package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ipfs-uploader/internal/config"
)

func newTestServer(t *testing.T, swagger bool) *Server {
	t.Helper()
	cfg := config.Load()
	cfg.IPFSAPIURL = "http://127.0.0.1:1/api/v0/add"
	cfg.EnableSwagger = swagger
	require.NoError(t, cfg.Validate())

	s := New(cfg, zap.NewNop())
	require.NoError(t, s.Initialize())
	return s
}

func TestServerRoutes(t *testing.T) {
	s := newTestServer(t, false)

	for _, path := range []string{"/", "/api", "/health", "/stats", "/api/upload/state"} {
		resp, err := s.App().Test(httptest.NewRequest(http.MethodGet, path, nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
		assert.NotEmpty(t, resp.Header.Get("X-Request-ID"), path)
	}

	resp, err := s.App().Test(httptest.NewRequest(http.MethodGet, "/nope", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = s.App().Test(httptest.NewRequest(http.MethodGet, "/swagger", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	require.NoError(t, s.Shutdown())
}

func TestServerSwagger(t *testing.T) {
	s := newTestServer(t, true)

	resp, err := s.App().Test(httptest.NewRequest(http.MethodGet, "/swagger", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusTemporaryRedirect, resp.StatusCode)

	resp, err = s.App().Test(httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "IPFS Uploader API")
}

func TestServerRejectsBadMirrorConfig(t *testing.T) {
	cfg := config.Load()
	cfg.Mirror.Enabled = true
	cfg.Mirror.Provider = "ftp"
	cfg.Mirror.Endpoint = "http://localhost:9000"
	cfg.Mirror.Bucket = "b"
	cfg.Mirror.AccessKey = "a"
	cfg.Mirror.SecretKey = "s"

	err := New(cfg, nil).Initialize()
	assert.ErrorContains(t, err, "mirror provider")
}
