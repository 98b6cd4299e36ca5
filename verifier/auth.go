package verifier

import (
	"fmt"

	"github.com/aegis-platform/provisioning-verifier/api"
	"github.com/aegis-platform/provisioning-verifier/totp"
)

// Backend is the subset of the provisioning API the verifier drives. It is
// implemented by clients.Client and by test doubles.
type Backend interface {
	Login(req api.LoginRequest) (*api.LoginResponse, error)
	VerifyMFA(req api.MFAVerifyRequest) (*api.MFAVerifyResponse, error)
	CreateTenant(token string, req api.CreateTenantRequest) (*api.Tenant, error)
	GetTenant(token, tenantID string) (*api.Tenant, error)
}

// Credentials holds the platform admin login material. The MFA secret is
// the base32-encoded TOTP shared secret, never sent over the wire.
type Credentials struct {
	Email     string
	Password  string
	MFASecret string
}

// Authenticate performs the two-step admin login: password login to open a
// pending-MFA session, then TOTP verification to obtain the bearer token.
//
// Both steps fail fast. A stale TOTP code fails deterministically within
// its 30-second window, so retrying without regenerating would only repeat
// the failure; the caller gets the underlying error instead.
func Authenticate(backend Backend, creds Credentials) (string, error) {
	if _, err := backend.Login(api.LoginRequest{
		Email:    creds.Email,
		Password: creds.Password,
	}); err != nil {
		return "", err
	}

	code, err := totp.Generate(creds.MFASecret)
	if err != nil {
		return "", fmt.Errorf("could not generate TOTP code: %w", err)
	}

	resp, err := backend.VerifyMFA(api.MFAVerifyRequest{
		Email:    creds.Email,
		TOTPCode: code,
	})
	if err != nil {
		return "", err
	}
	if resp.AccessToken == "" {
		return "", fmt.Errorf("backend returned an empty access token")
	}
	return resp.AccessToken, nil
}
