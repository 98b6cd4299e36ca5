/*
Package api defines the wire types of the tenant provisioning API.

This package is shared by both sides of the system:

1. clients - the HTTP client used by the verifier to drive the workflow
2. httpserver - the local fake backend that implements the same surface

The authoritative tenant record lives on the backend; everything here is a
snapshot type. Clients never mutate a Tenant directly - tenant creation is
requested through CreateTenantRequest and all further state is observed by
polling.

# Lifecycle

A tenant moves through a closed status set:

	pending -> provisioning -> active
	                        -> failed

StatusActive and StatusFailed are terminal (TenantStatus.Terminal); any
other value is expected to change on a later poll. While provisioning, the
record carries a structured progress descriptor (step, percentage, message);
on failure it carries a backend-supplied reason; on success its Config holds
the container endpoint used for liveness probing.
*/
package api
