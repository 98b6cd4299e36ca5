package httpserver

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func get(t *testing.T, url string) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestLivenessAndReadiness(t *testing.T) {
	_, ts := newTestServer(t, BackendConfig{})

	assert.Equal(t, http.StatusOK, get(t, ts.URL+"/livez").StatusCode)
	assert.Equal(t, http.StatusOK, get(t, ts.URL+"/readyz").StatusCode)
}

func TestDrainUndrainCycle(t *testing.T) {
	srv, ts := newTestServer(t, BackendConfig{})
	srv.cfg.DrainDuration = time.Millisecond

	assert.Equal(t, http.StatusOK, get(t, ts.URL+"/drain").StatusCode)
	assert.Equal(t, http.StatusServiceUnavailable, get(t, ts.URL+"/readyz").StatusCode)

	assert.Equal(t, http.StatusOK, get(t, ts.URL+"/undrain").StatusCode)
	assert.Equal(t, http.StatusOK, get(t, ts.URL+"/readyz").StatusCode)
}
