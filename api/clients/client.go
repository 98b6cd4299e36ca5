package clients

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aegis-platform/provisioning-verifier/api"
)

// maxErrorBodyBytes bounds how much of an error response body is retained
// for diagnostics.
const maxErrorBodyBytes = 300

// HTTPError is a completed request that the backend rejected with a non-2xx
// status. The truncated response body is retained so callers can log it and
// branch on the status code.
type HTTPError struct {
	StatusCode int
	Body       string
}

// Error formats the status code and truncated body.
func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body)
}

// Client is an HTTP client for the tenant provisioning API. All calls are
// synchronous and share a single fixed timeout. The zero value is not
// usable; construct with NewClient.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the provisioning API at baseURL.
//
// Parameters:
//   - baseURL: The base URL of the backend (e.g., "http://localhost:3000")
//   - timeout: Request timeout duration (optional, default 30 seconds)
func NewClient(baseURL string, timeout ...time.Duration) *Client {
	clientTimeout := 30 * time.Second
	if len(timeout) > 0 {
		clientTimeout = timeout[0]
	}

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: clientTimeout,
		},
	}
}

// Login performs the password step of the admin login. On success the
// backend holds a pending-MFA session for the email; no token is issued yet.
func (c *Client) Login(req api.LoginRequest) (*api.LoginResponse, error) {
	var resp api.LoginResponse
	if err := c.call(http.MethodPost, "/api/auth/login", req, "", &resp); err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	return &resp, nil
}

// VerifyMFA performs the TOTP step of the admin login and returns the
// response carrying the bearer access token.
func (c *Client) VerifyMFA(req api.MFAVerifyRequest) (*api.MFAVerifyResponse, error) {
	var resp api.MFAVerifyResponse
	if err := c.call(http.MethodPost, "/api/auth/mfa/verify", req, "", &resp); err != nil {
		return nil, fmt.Errorf("mfa verification failed: %w", err)
	}
	return &resp, nil
}

// CreateTenant requests provisioning of a new tenant and returns the
// initial tenant record.
func (c *Client) CreateTenant(token string, req api.CreateTenantRequest) (*api.Tenant, error) {
	var tenant api.Tenant
	if err := c.call(http.MethodPost, "/api/admin/tenants", req, token, &tenant); err != nil {
		return nil, fmt.Errorf("tenant creation failed: %w", err)
	}
	return &tenant, nil
}

// GetTenant fetches the current snapshot of a tenant record.
func (c *Client) GetTenant(token, tenantID string) (*api.Tenant, error) {
	var tenant api.Tenant
	if err := c.call(http.MethodGet, "/api/admin/tenants/"+tenantID, nil, token, &tenant); err != nil {
		return nil, fmt.Errorf("tenant fetch failed: %w", err)
	}
	return &tenant, nil
}

// call issues a single request and decodes the JSON response into out.
// A nil body sends no payload; an empty token sends no Authorization header.
func (c *Client) call(method, path string, body any, token string, out any) error {
	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("could not marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return &HTTPError{StatusCode: resp.StatusCode, Body: string(bodyBytes)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("could not parse response: %w", err)
		}
	}
	return nil
}
