package verifier

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aegis-platform/provisioning-verifier/api"
)

func activeTenant(endpoint string) *api.Tenant {
	return &api.Tenant{
		ID:     "0a1b2c3d-extra",
		Status: api.StatusActive,
		Config: api.TenantConfig{ContainerEndpoint: endpoint},
	}
}

func probeServer(t *testing.T, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestVerifyContainer_ProbeStatusPolicy(t *testing.T) {
	cases := []struct {
		status int
		pass   bool
	}{
		{http.StatusOK, true},
		{http.StatusNoContent, true},
		{http.StatusNotFound, true},        // WebSocket gateway root
		{http.StatusUpgradeRequired, true}, // probe did not speak the protocol
		{http.StatusInternalServerError, false},
		{http.StatusBadGateway, false},
	}

	for _, tc := range cases {
		srv := probeServer(t, tc.status)
		v := &Verifier{Log: testLogger()}
		result := v.VerifyContainer(context.Background(), activeTenant(srv.URL))
		assert.Equal(t, tc.pass, result.Passed, "status %d", tc.status)
	}
}

func TestVerifyContainer_ConnectionRefusedFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	v := &Verifier{Log: testLogger()}
	result := v.VerifyContainer(context.Background(), activeTenant(srv.URL))
	assert.False(t, result.Passed)
	assert.Contains(t, result.Detail, "not responding")
}

func TestVerifyContainer_MissingEndpointFails(t *testing.T) {
	v := &Verifier{Log: testLogger()}
	result := v.VerifyContainer(context.Background(), &api.Tenant{ID: "t-1", Status: api.StatusActive})
	assert.False(t, result.Passed)
	assert.Contains(t, result.Detail, "no container endpoint")
}

func TestVerifyHealthMonitor_Healthy(t *testing.T) {
	backend := new(MockBackend)
	backend.On("GetTenant", "tok", "t-1").Return(&api.Tenant{
		ID:              "t-1",
		Status:          api.StatusActive,
		ContainerHealth: &api.ContainerHealth{Status: api.HealthStatusHealthy},
	}, nil)

	v := &Verifier{Backend: backend, Log: testLogger(), HealthWait: time.Millisecond}
	result := v.VerifyHealthMonitor(context.Background(), "tok", "t-1")
	assert.True(t, result.Passed)
	assert.Empty(t, result.Warnings)
}

func TestVerifyHealthMonitor_UnhealthyIsWarningOnly(t *testing.T) {
	cases := []*api.Tenant{
		{ID: "t-1", Status: api.StatusActive, ContainerHealth: &api.ContainerHealth{Status: "unhealthy"}},
		{ID: "t-1", Status: api.StatusActive}, // monitor has not run yet
	}

	for _, tenant := range cases {
		backend := new(MockBackend)
		backend.On("GetTenant", "tok", "t-1").Return(tenant, nil)

		v := &Verifier{Backend: backend, Log: testLogger(), HealthWait: time.Millisecond}
		result := v.VerifyHealthMonitor(context.Background(), "tok", "t-1")
		assert.False(t, result.Passed)
		require.Len(t, result.Warnings, 1)
		assert.Contains(t, result.Warnings[0], "health monitor status")
	}
}
