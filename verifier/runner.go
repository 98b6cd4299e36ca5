package verifier

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aegis-platform/provisioning-verifier/api"
)

// RunStatus is the final classification of a verification run.
type RunStatus string

const (
	// RunPassed means every hard check succeeded. Warnings may be present.
	RunPassed RunStatus = "passed"

	// RunAuthFailed means the two-step login did not yield a token.
	RunAuthFailed RunStatus = "auth-failed"

	// RunProvisioningFailed means the backend reported a terminal failure.
	RunProvisioningFailed RunStatus = "provisioning-failed"

	// RunProvisioningTimeout means the poll budget was exhausted while the
	// tenant was still non-terminal.
	RunProvisioningTimeout RunStatus = "provisioning-timeout"

	// RunVerificationFailed means provisioning reported success but the
	// container liveness check failed - a backend/runtime inconsistency.
	RunVerificationFailed RunStatus = "verification-failed"
)

// Verdict is the aggregated result of one verification run.
type Verdict struct {
	Status        RunStatus
	TenantID      string
	Endpoint      string
	FailureReason string
	Warnings      []string
}

// Success reports whether the run should exit zero. Warnings do not affect
// the exit code.
func (v *Verdict) Success() bool {
	return v.Status == RunPassed
}

// RunConfig carries everything a verification run needs beyond the backend
// client itself.
type RunConfig struct {
	Credentials Credentials

	// TenantName is the company name for the freshly created tenant. Runs
	// are not idempotent (each creates a new tenant), so callers namespace
	// the name, typically with a timestamp.
	TenantName string

	PollInterval time.Duration
	PollTimeout  time.Duration

	// SkipHealthWait skips the health-monitor confirmation entirely.
	SkipHealthWait bool

	// HealthWait overrides the pause before the health-monitor check.
	HealthWait time.Duration
}

// Runner sequences a full verification run: authenticate, create tenant,
// poll provisioning, verify the result.
type Runner struct {
	Backend Backend
	Config  RunConfig
	Log     *slog.Logger
}

// Run executes the workflow and always returns a Verdict; the error return
// is reserved for failures outside the workflow's own taxonomy (context
// cancellation, transport errors, rejected API calls). Callers map both a
// non-success Verdict and an error to a non-zero exit.
func (r *Runner) Run(ctx context.Context) (*Verdict, error) {
	cfg := r.Config

	r.Log.Info("authenticating as platform admin", "email", cfg.Credentials.Email)
	token, err := Authenticate(r.Backend, cfg.Credentials)
	if err != nil {
		return &Verdict{Status: RunAuthFailed, FailureReason: err.Error()}, err
	}

	r.Log.Info("creating tenant", "name", cfg.TenantName)
	tenant, err := r.Backend.CreateTenant(token, api.CreateTenantRequest{
		CompanyName:    cfg.TenantName,
		AdminEmail:     tenantAdminEmail(cfg.TenantName),
		Plan:           "enterprise",
		ResourceLimits: api.ResourceLimits{CPUCores: 2, MemoryMB: 1024, DiskGB: 10},
	})
	if err != nil {
		return &Verdict{Status: RunProvisioningFailed, FailureReason: err.Error()}, err
	}
	r.Log.Info("tenant created", "id", tenant.ID, "status", tenant.Status)

	poller := &Poller{
		Backend:  r.Backend,
		Interval: cfg.PollInterval,
		Timeout:  cfg.PollTimeout,
		Log:      r.Log,
	}
	result, err := poller.Poll(ctx, token, tenant.ID)
	if err != nil {
		return &Verdict{Status: RunProvisioningFailed, TenantID: tenant.ID, FailureReason: err.Error()}, err
	}

	verdict := &Verdict{TenantID: tenant.ID}
	switch result.Outcome {
	case OutcomeFailed:
		verdict.Status = RunProvisioningFailed
		verdict.FailureReason = result.Tenant.FailedReason
		return verdict, nil
	case OutcomeTimeout:
		verdict.Status = RunProvisioningTimeout
		verdict.FailureReason = fmt.Sprintf("no terminal status within %s", cfg.PollTimeout)
		return verdict, nil
	}

	verdict.Endpoint = result.Tenant.Config.ContainerEndpoint

	v := &Verifier{Backend: r.Backend, Log: r.Log, HealthWait: cfg.HealthWait}

	r.Log.Info("verifying container", "endpoint", verdict.Endpoint)
	liveness := v.VerifyContainer(ctx, result.Tenant)
	verdict.Warnings = append(verdict.Warnings, liveness.Warnings...)
	if !liveness.Passed {
		verdict.Status = RunVerificationFailed
		verdict.FailureReason = liveness.Detail
		return verdict, nil
	}
	r.Log.Info("container liveness ok", "detail", liveness.Detail)

	if cfg.SkipHealthWait {
		r.Log.Info("skipping health-monitor check")
	} else {
		health := v.VerifyHealthMonitor(ctx, token, tenant.ID)
		verdict.Warnings = append(verdict.Warnings, health.Warnings...)
		if health.Passed {
			r.Log.Info("health monitor ok", "detail", health.Detail)
		}
	}

	verdict.Status = RunPassed
	return verdict, nil
}

// tenantAdminEmail derives the tenant's admin address from its company
// name, mirroring how operators seed test tenants.
func tenantAdminEmail(name string) string {
	domain := strings.ToLower(strings.ReplaceAll(name, " ", ""))
	return fmt.Sprintf("admin@%s.test", domain)
}
