/*
Package httpserver implements a local fake of the tenant provisioning
backend.

It serves the same HTTP surface the verifier drives in production:

	POST /api/auth/login              password step, opens a pending-MFA session
	POST /api/auth/mfa/verify         TOTP step, issues a bearer token
	POST /api/admin/tenants           accepts a tenant, starts simulated provisioning
	GET  /api/admin/tenants/{id}      tenant record snapshot

plus the operational endpoints every service here carries (/livez, /readyz,
/drain, /undrain, a Prometheus metrics listener and optional pprof).

Provisioning is simulated: each accepted tenant advances through the real
workflow's step sequence on a configurable cadence, ending active (with the
configured container endpoint) or failed (when FailAtStep is set). An
out-of-band health monitor probes active tenants' endpoints on its own
cycle and records the observation, so the verifier's health-monitor check
behaves exactly as it does against the real backend, including the lag
before the first reading.

State is held in memory and dies with the process. The fake backend exists
for development and end-to-end self-tests, not as a reimplementation of the
production provisioner.
*/
package httpserver
