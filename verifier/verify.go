package verifier

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aegis-platform/provisioning-verifier/api"
	"github.com/aegis-platform/provisioning-verifier/containerutils"
)

// probeTimeout bounds the liveness probe against the container endpoint.
const probeTimeout = 5 * time.Second

// DefaultHealthWait is how long to wait before the health-monitor check,
// slightly over one backend health-check cycle (30s).
const DefaultHealthWait = 35 * time.Second

// CheckResult is the outcome of one post-provision check. A failed check
// fails the run; warnings are informational only.
type CheckResult struct {
	Passed   bool
	Detail   string
	Warnings []string
}

// Verifier runs the post-provision checks against a tenant that reached
// the active status.
type Verifier struct {
	Backend Backend
	Log     *slog.Logger

	// HealthWait is the pause before the health-monitor check. Zero means
	// DefaultHealthWait.
	HealthWait time.Duration
}

// VerifyContainer checks that the provisioned container is actually
// serving: it probes the endpoint from the tenant config over HTTP, and
// cross-checks the local docker process list for a container named after
// the tenant id.
//
// Probe policy: any 2xx passes; 404 and 426 also pass, because the tenant
// workload is a WebSocket gateway that rejects a plain GET at the root
// without being unhealthy. Any other status, or a transport failure, fails.
// The docker cross-check is best-effort and only ever adds a warning -
// runtime introspection is unavailable when the backend runs remotely.
func (v *Verifier) VerifyContainer(ctx context.Context, tenant *api.Tenant) CheckResult {
	endpoint := tenant.Config.ContainerEndpoint
	if endpoint == "" {
		return CheckResult{Passed: false, Detail: "no container endpoint in tenant config"}
	}

	result := CheckResult{}
	if info, err := containerutils.FindByPrefix(ctx, containerNamePrefix(tenant.ID)); err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("could not inspect docker: %v", err))
	} else if info == nil {
		result.Warnings = append(result.Warnings, "container not found in docker ps")
	} else {
		v.Log.Info("container present in runtime", "name", info.Name, "status", info.Status)
	}

	status, err := v.probe(ctx, endpoint)
	if err != nil {
		result.Detail = fmt.Sprintf("container not responding: %v", err)
		return result
	}

	switch {
	case status >= 200 && status <= 299:
		result.Passed = true
		result.Detail = fmt.Sprintf("HTTP %d", status)
	case status == http.StatusNotFound, status == http.StatusUpgradeRequired:
		result.Passed = true
		result.Detail = fmt.Sprintf("HTTP %d (expected for WebSocket gateway)", status)
	default:
		result.Detail = fmt.Sprintf("unexpected HTTP %d from container", status)
	}
	return result
}

// VerifyHealthMonitor confirms the backend's own health monitor observed
// the container as healthy. It waits one check cycle, re-fetches the
// tenant record and inspects containerHealth.status.
//
// The monitor is an independent, eventually-consistent subsystem, so a
// non-healthy reading is reported as a warning, never a hard failure.
func (v *Verifier) VerifyHealthMonitor(ctx context.Context, token, tenantID string) CheckResult {
	wait := v.HealthWait
	if wait == 0 {
		wait = DefaultHealthWait
	}

	v.Log.Info("waiting for a health-check cycle", "wait", wait)
	if err := sleepCtx(ctx, wait); err != nil {
		return CheckResult{Warnings: []string{fmt.Sprintf("health-monitor check aborted: %v", err)}}
	}

	tenant, err := v.Backend.GetTenant(token, tenantID)
	if err != nil {
		return CheckResult{Warnings: []string{fmt.Sprintf("could not fetch tenant for health check: %v", err)}}
	}

	if tenant.Healthy() {
		return CheckResult{Passed: true, Detail: "health monitor reports healthy"}
	}

	observed := "absent"
	if tenant.ContainerHealth != nil {
		observed = tenant.ContainerHealth.Status
	}
	return CheckResult{Warnings: []string{fmt.Sprintf("health monitor status is %q", observed)}}
}

func (v *Verifier) probe(ctx context.Context, endpoint string) (int, error) {
	client := &http.Client{Timeout: probeTimeout}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"/", nil)
	if err != nil {
		return 0, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	return resp.StatusCode, nil
}

// containerNamePrefix is the portion of the tenant id the backend embeds in
// container names.
func containerNamePrefix(tenantID string) string {
	if len(tenantID) > 8 {
		return tenantID[:8]
	}
	return tenantID
}
