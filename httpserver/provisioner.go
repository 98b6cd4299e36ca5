package httpserver

import (
	"net/http"
	"time"

	"github.com/aegis-platform/provisioning-verifier/api"
)

// provisioningStep is one stage of the simulated workflow.
type provisioningStep struct {
	name     string
	progress int
	message  string
}

// provisioningSteps mirrors the real backend's container workflow closely
// enough for clients to observe every intermediate progress shape.
var provisioningSteps = []provisioningStep{
	{"validate-config", 10, "Validating tenant configuration"},
	{"image-pull", 35, "Pulling workload image"},
	{"container-create", 60, "Creating tenant container"},
	{"container-start", 85, "Starting tenant container"},
}

// provision walks a tenant through the simulated workflow, one step per
// StepDuration, ending in active or failed. It runs on its own goroutine
// per tenant; all record mutation goes through the store mutex.
func (h *Handler) provision(tenantID string) {
	started := time.Now()

	for _, step := range provisioningSteps {
		time.Sleep(h.cfg.StepDuration)

		if step.name == h.cfg.FailAtStep {
			h.finishProvisioning(tenantID, started, func(t *api.Tenant) {
				t.Status = api.StatusFailed
				t.FailedReason = "simulated failure at step " + step.name
			})
			h.log.Warn("provisioning failed", "tenant", tenantID, "step", step.name)
			return
		}

		h.updateTenant(tenantID, func(t *api.Tenant) {
			t.ProvisioningStep = step.name
			t.ProvisioningProgress = step.progress
			t.ProvisioningMessage = step.message
		})
		h.log.Debug("provisioning step", "tenant", tenantID, "step", step.name, "progress", step.progress)
	}

	time.Sleep(h.cfg.StepDuration)
	h.finishProvisioning(tenantID, started, func(t *api.Tenant) {
		t.Status = api.StatusActive
		t.ProvisioningStep = ""
		t.ProvisioningProgress = 100
		t.ProvisioningMessage = ""
		t.Config.ContainerEndpoint = h.cfg.ContainerEndpoint
	})
	h.log.Info("provisioning complete", "tenant", tenantID, "endpoint", h.cfg.ContainerEndpoint)
}

func (h *Handler) finishProvisioning(tenantID string, started time.Time, mutate func(*api.Tenant)) {
	h.updateTenant(tenantID, mutate)

	if h.metrics == nil {
		return
	}
	h.mu.RLock()
	status := string(h.tenants[tenantID].Status)
	h.mu.RUnlock()
	h.metrics.ProvisioningOutcomes.WithLabelValues(status).Inc()
	h.metrics.ProvisioningDuration.Observe(time.Since(started).Seconds())
}

func (h *Handler) updateTenant(tenantID string, mutate func(*api.Tenant)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if t, ok := h.tenants[tenantID]; ok {
		mutate(t)
	}
}

// RunHealthMonitor probes every active tenant's container endpoint each
// interval and records the observation on the tenant record, the same way
// the real backend's out-of-band monitor does. It returns when stop is
// closed.
func (h *Handler) RunHealthMonitor(interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	client := &http.Client{Timeout: 5 * time.Second}
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			h.checkActiveTenants(client)
		}
	}
}

func (h *Handler) checkActiveTenants(client *http.Client) {
	h.mu.RLock()
	var ids []string
	for id, t := range h.tenants {
		if t.Status == api.StatusActive {
			ids = append(ids, id)
		}
	}
	h.mu.RUnlock()

	for _, id := range ids {
		h.mu.RLock()
		endpoint := h.tenants[id].Config.ContainerEndpoint
		h.mu.RUnlock()

		// Any HTTP response means the listener is up; only transport
		// failures count as unreachable.
		status := api.HealthStatusHealthy
		resp, err := client.Get(endpoint + "/")
		if err != nil {
			status = "unreachable"
		} else {
			resp.Body.Close()
		}

		now := time.Now().UTC().Format(time.RFC3339)
		h.updateTenant(id, func(t *api.Tenant) {
			t.ContainerHealth = &api.ContainerHealth{Status: status, CheckedAt: now}
		})
		h.log.Debug("health check", "tenant", id, "status", status)
	}
}
