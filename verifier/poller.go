package verifier

import (
	"context"
	"log/slog"
	"time"

	"github.com/aegis-platform/provisioning-verifier/api"
)

// PollOutcome classifies how a polling run ended.
type PollOutcome int

const (
	// OutcomeActive means the tenant reached the active status.
	OutcomeActive PollOutcome = iota

	// OutcomeFailed means the backend reported a terminal provisioning
	// failure, with a reason on the tenant record.
	OutcomeFailed

	// OutcomeTimeout means the iteration budget ran out before any terminal
	// status was observed. The tenant may still be provisioning; this is
	// distinct from both success and backend-reported failure.
	OutcomeTimeout
)

// String returns a short label for logging.
func (o PollOutcome) String() string {
	switch o {
	case OutcomeActive:
		return "active"
	case OutcomeFailed:
		return "failed"
	case OutcomeTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// PollResult is the terminal observation of a polling run. Tenant is the
// last record fetched; it is nil only if the iteration budget was zero.
type PollResult struct {
	Outcome PollOutcome
	Tenant  *api.Tenant
}

// Poller repeatedly fetches a tenant record until it reaches a terminal
// status or a bounded number of iterations is spent.
//
// The strategy is fixed-interval with a hard cap, no backoff and no jitter:
// provisioning latency is roughly known, and a deterministic worst-case
// duration matters more here than saved polls.
type Poller struct {
	Backend  Backend
	Interval time.Duration
	Timeout  time.Duration
	Log      *slog.Logger
}

// Poll drives the status state machine to a terminal observation. Each
// iteration sleeps the fixed interval first (provisioning never completes
// instantly), then fetches a snapshot. Terminal statuses stop immediately;
// anything else, including statuses outside the known set, is treated as
// non-terminal. The iteration budget is floor(Timeout / Interval).
//
// A fetch error aborts the run: the poller never retries a failed call,
// it only repeats successful non-terminal observations.
func (p *Poller) Poll(ctx context.Context, token, tenantID string) (*PollResult, error) {
	iterations := int(p.Timeout / p.Interval)

	var last *api.Tenant
	for i := 0; i < iterations; i++ {
		if err := sleepCtx(ctx, p.Interval); err != nil {
			return nil, err
		}

		tenant, err := p.Backend.GetTenant(token, tenantID)
		if err != nil {
			return nil, err
		}
		last = tenant

		elapsed := time.Duration(i+1) * p.Interval
		switch tenant.Status {
		case api.StatusProvisioning:
			p.Log.Info("provisioning in progress",
				"elapsed", elapsed,
				"step", tenant.ProvisioningStep,
				"progress", tenant.ProvisioningProgress,
				"message", tenant.ProvisioningMessage)
		default:
			p.Log.Info("tenant status", "elapsed", elapsed, "status", tenant.Status)
		}

		switch tenant.Status {
		case api.StatusActive:
			return &PollResult{Outcome: OutcomeActive, Tenant: tenant}, nil
		case api.StatusFailed:
			return &PollResult{Outcome: OutcomeFailed, Tenant: tenant}, nil
		}
	}

	p.Log.Warn("provisioning did not reach a terminal status", "budget", p.Timeout)
	return &PollResult{Outcome: OutcomeTimeout, Tenant: last}, nil
}

// sleepCtx pauses for d unless the context ends first.
func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
