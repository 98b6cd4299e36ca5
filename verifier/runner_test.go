package verifier

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/aegis-platform/provisioning-verifier/api"
)

func testRunConfig() RunConfig {
	return RunConfig{
		Credentials:  testCreds,
		TenantName:   "E2E Test 1234",
		PollInterval: 5 * time.Millisecond,
		PollTimeout:  100 * time.Millisecond,
		HealthWait:   time.Millisecond,
	}
}

// fullRunBackend scripts a complete successful workflow: login, MFA, tenant
// creation, two provisioning polls, an active poll, then a healthy record
// for the health-monitor check.
func fullRunBackend(endpoint string) *scriptedBackend {
	backend := &scriptedBackend{snapshots: []*api.Tenant{
		provisioningSnapshot("image-pull", 30),
		provisioningSnapshot("container-start", 80),
		{ID: "tenant-1", Status: api.StatusActive, Config: api.TenantConfig{ContainerEndpoint: endpoint}},
		{
			ID:              "tenant-1",
			Status:          api.StatusActive,
			Config:          api.TenantConfig{ContainerEndpoint: endpoint},
			ContainerHealth: &api.ContainerHealth{Status: api.HealthStatusHealthy},
		},
	}}
	backend.On("Login", mock.Anything).Return(&api.LoginResponse{MFARequired: true}, nil)
	backend.On("VerifyMFA", mock.Anything).Return(&api.MFAVerifyResponse{AccessToken: "tok"}, nil)
	backend.On("CreateTenant", "tok", mock.Anything).
		Return(&api.Tenant{ID: "tenant-1", Status: api.StatusProvisioning}, nil)
	return backend
}

func TestRunner_FullSuccess(t *testing.T) {
	srv := probeServer(t, http.StatusOK)
	backend := fullRunBackend(srv.URL)

	runner := &Runner{Backend: backend, Config: testRunConfig(), Log: testLogger()}
	verdict, err := runner.Run(context.Background())
	require.NoError(t, err)

	assert.True(t, verdict.Success())
	assert.Equal(t, RunPassed, verdict.Status)
	assert.Equal(t, "tenant-1", verdict.TenantID)
	assert.Equal(t, srv.URL, verdict.Endpoint)
	// 3 poll fetches + 1 health-monitor fetch
	assert.Equal(t, 4, backend.getCalls)
}

func TestRunner_TimeoutIsDistinctFromFailure(t *testing.T) {
	backend := &scriptedBackend{snapshots: []*api.Tenant{
		provisioningSnapshot("image-pull", 10),
	}}
	backend.On("Login", mock.Anything).Return(&api.LoginResponse{MFARequired: true}, nil)
	backend.On("VerifyMFA", mock.Anything).Return(&api.MFAVerifyResponse{AccessToken: "tok"}, nil)
	backend.On("CreateTenant", "tok", mock.Anything).
		Return(&api.Tenant{ID: "tenant-1", Status: api.StatusProvisioning}, nil)

	cfg := testRunConfig()
	cfg.PollTimeout = 25 * time.Millisecond

	runner := &Runner{Backend: backend, Config: cfg, Log: testLogger()}
	verdict, err := runner.Run(context.Background())
	require.NoError(t, err)

	assert.False(t, verdict.Success())
	assert.Equal(t, RunProvisioningTimeout, verdict.Status)
}

func TestRunner_BackendReportedFailure(t *testing.T) {
	backend := &scriptedBackend{snapshots: []*api.Tenant{
		{ID: "tenant-1", Status: api.StatusFailed, FailedReason: "no capacity"},
	}}
	backend.On("Login", mock.Anything).Return(&api.LoginResponse{MFARequired: true}, nil)
	backend.On("VerifyMFA", mock.Anything).Return(&api.MFAVerifyResponse{AccessToken: "tok"}, nil)
	backend.On("CreateTenant", "tok", mock.Anything).
		Return(&api.Tenant{ID: "tenant-1", Status: api.StatusProvisioning}, nil)

	runner := &Runner{Backend: backend, Config: testRunConfig(), Log: testLogger()}
	verdict, err := runner.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, RunProvisioningFailed, verdict.Status)
	assert.Equal(t, "no capacity", verdict.FailureReason)
}

func TestRunner_AuthFailure(t *testing.T) {
	backend := new(MockBackend)
	backend.On("Login", mock.Anything).Return(nil, errors.New("HTTP 401: invalid credentials"))

	runner := &Runner{Backend: backend, Config: testRunConfig(), Log: testLogger()}
	verdict, err := runner.Run(context.Background())
	require.Error(t, err)
	assert.Equal(t, RunAuthFailed, verdict.Status)
}

func TestRunner_LivenessFailureFailsRun(t *testing.T) {
	srv := probeServer(t, http.StatusInternalServerError)
	backend := fullRunBackend(srv.URL)

	runner := &Runner{Backend: backend, Config: testRunConfig(), Log: testLogger()}
	verdict, err := runner.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, RunVerificationFailed, verdict.Status)
	assert.Contains(t, verdict.FailureReason, "unexpected HTTP 500")
}

func TestRunner_UnhealthyMonitorOnlyWarns(t *testing.T) {
	srv := probeServer(t, http.StatusOK)
	backend := fullRunBackend(srv.URL)
	// Replace the healthy final snapshot with an unhealthy one.
	backend.snapshots[3].ContainerHealth = &api.ContainerHealth{Status: "unreachable"}

	runner := &Runner{Backend: backend, Config: testRunConfig(), Log: testLogger()}
	verdict, err := runner.Run(context.Background())
	require.NoError(t, err)

	assert.True(t, verdict.Success())
	assert.NotEmpty(t, verdict.Warnings)
}

func TestRunner_SkipHealthWait(t *testing.T) {
	srv := probeServer(t, http.StatusNotFound)
	backend := fullRunBackend(srv.URL)

	cfg := testRunConfig()
	cfg.SkipHealthWait = true

	runner := &Runner{Backend: backend, Config: cfg, Log: testLogger()}
	verdict, err := runner.Run(context.Background())
	require.NoError(t, err)

	assert.True(t, verdict.Success())
	// No health-monitor fetch: only the 3 poll fetches.
	assert.Equal(t, 3, backend.getCalls)
}
