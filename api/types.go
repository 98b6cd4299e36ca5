package api

// TenantStatus is the backend-reported lifecycle status of a tenant.
type TenantStatus string

// Tenant lifecycle statuses. The provisioning workflow only ever moves
// forward: pending -> provisioning -> active | failed. Statuses outside this
// set are treated as non-terminal by callers.
const (
	StatusPending      TenantStatus = "pending"
	StatusProvisioning TenantStatus = "provisioning"
	StatusActive       TenantStatus = "active"
	StatusFailed       TenantStatus = "failed"
	StatusSuspended    TenantStatus = "suspended"
)

// Terminal reports whether the provisioning workflow will not transition
// away from this status on a later poll.
func (s TenantStatus) Terminal() bool {
	return s == StatusActive || s == StatusFailed
}

// HealthStatusHealthy is the containerHealth status value reported by the
// backend health monitor once a container passes its checks.
const HealthStatusHealthy = "healthy"

// LoginRequest is the password step of the admin login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse acknowledges the password step. The backend withholds the
// access token until the MFA step completes; MFARequired signals the client
// to proceed with TOTP verification.
type LoginResponse struct {
	MFARequired bool `json:"mfaRequired"`
}

// MFAVerifyRequest is the TOTP step of the admin login.
type MFAVerifyRequest struct {
	Email    string `json:"email"`
	TOTPCode string `json:"totpCode"`
}

// MFAVerifyResponse carries the bearer token for all subsequent calls.
type MFAVerifyResponse struct {
	AccessToken string `json:"accessToken"`
}

// ResourceLimits is the compute allocation requested for a tenant container.
type ResourceLimits struct {
	CPUCores int `json:"cpuCores"`
	MemoryMB int `json:"memoryMb"`
	DiskGB   int `json:"diskGb"`
}

// CreateTenantRequest provisions a new tenant with a dedicated container.
type CreateTenantRequest struct {
	CompanyName    string         `json:"companyName"`
	AdminEmail     string         `json:"adminEmail"`
	Plan           string         `json:"plan"`
	ResourceLimits ResourceLimits `json:"resourceLimits"`
}

// TenantConfig is the tenant's runtime configuration as exposed by the
// admin API. ContainerEndpoint is populated once provisioning succeeds.
type TenantConfig struct {
	ContainerEndpoint string `json:"containerEndpoint,omitempty"`
}

// ContainerHealth is the backend health monitor's latest observation of the
// tenant container. It is maintained by an out-of-band check cycle and may
// lag provisioning by one cycle.
type ContainerHealth struct {
	Status    string `json:"status"`
	CheckedAt string `json:"checkedAt,omitempty"`
}

// Tenant is a snapshot of the authoritative tenant record. All fields are
// owned and mutated by the backend; clients only ever read them.
type Tenant struct {
	ID     string       `json:"id"`
	Name   string       `json:"companyName"`
	Status TenantStatus `json:"status"`

	// Progress descriptor, present while Status is provisioning.
	ProvisioningStep     string `json:"provisioningStep,omitempty"`
	ProvisioningProgress int    `json:"provisioningProgress,omitempty"`
	ProvisioningMessage  string `json:"provisioningMessage,omitempty"`

	// FailedReason is set by the backend when Status is failed.
	FailedReason string `json:"provisioningFailedReason,omitempty"`

	Config          TenantConfig     `json:"config"`
	ContainerHealth *ContainerHealth `json:"containerHealth,omitempty"`
}

// Healthy reports whether the health monitor has observed the container as
// healthy. A missing containerHealth field means the monitor has not run yet.
func (t *Tenant) Healthy() bool {
	return t.ContainerHealth != nil && t.ContainerHealth.Status == HealthStatusHealthy
}
