/*
Package verifier drives the tenant provisioning workflow end to end and
asserts correctness at each stage.

A run is strictly sequential:

 1. Authenticate - password login plus TOTP MFA, yielding a bearer token
 2. CreateTenant - single authenticated call with fixed resource limits
 3. PollProvisioning - bounded fixed-interval polling until the tenant
    reaches a terminal status or the iteration budget runs out
 4. VerifyContainer - HTTP liveness probe of the provisioned container
    endpoint plus a best-effort docker cross-check
 5. VerifyHealthMonitor - optional confirmation that the backend's own
    health monitor observed the container as healthy

The Runner sequences the stages and folds their results into a Verdict.
Hard failures (auth, non-active terminal poll, liveness) fail the run;
health-monitor disagreement and missing docker introspection only warn,
because they verify independent, eventually-consistent subsystems.

The poller deliberately treats an exhausted iteration budget as a normal
return value, not an error: a tenant stuck in provisioning is neither a
success nor a backend-reported failure, and the two must stay
distinguishable all the way up to the process exit code.
*/
package verifier
