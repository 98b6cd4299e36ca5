package httpserver

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/aegis-platform/provisioning-verifier/api"
	"github.com/aegis-platform/provisioning-verifier/metrics"
	"github.com/aegis-platform/provisioning-verifier/totp"
	"github.com/google/uuid"
)

// maxBodySize is the maximum allowed request body size (1MB).
const maxBodySize = 1024 * 1024

// mfaSessionTTL is how long a pending-MFA session stays valid after the
// password step.
const mfaSessionTTL = 5 * time.Minute

// RequestError provides structured error information for HTTP responses.
type RequestError struct {
	// StatusCode is the HTTP status code to return.
	StatusCode int

	// Err is the underlying error.
	Err error
}

// Error returns the error message from the underlying error.
func (e *RequestError) Error() string {
	return e.Err.Error()
}

// BackendConfig configures the fake provisioning backend.
type BackendConfig struct {
	// AdminEmail is the platform admin account.
	AdminEmail string

	// AdminPasswordHash is the bcrypt hash of the admin password.
	AdminPasswordHash []byte

	// MFASecret is the base32 TOTP shared secret for the admin account.
	MFASecret string

	// ContainerEndpoint is reported on every tenant once provisioning
	// succeeds. The fake backend does not run real containers, so the
	// endpoint typically points at another local listener.
	ContainerEndpoint string

	// StepDuration is how long each simulated provisioning step takes.
	StepDuration time.Duration

	// FailAtStep forces provisioning to fail when it reaches the named
	// step. Empty means provisioning always succeeds.
	FailAtStep string
}

// Handler implements the provisioning API against an in-memory tenant
// store, simulating the asynchronous provisioning workflow.
type Handler struct {
	cfg     BackendConfig
	log     *slog.Logger
	metrics *metrics.MetricsServer

	mu         sync.RWMutex
	pendingMFA map[string]time.Time
	tokens     map[string]struct{}
	tenants    map[string]*api.Tenant
}

// NewHandler creates a request handler for the fake backend. The metrics
// server may be nil, in which case no metrics are recorded.
func NewHandler(cfg BackendConfig, m *metrics.MetricsServer, log *slog.Logger) *Handler {
	return &Handler{
		cfg:        cfg,
		log:        log,
		metrics:    m,
		pendingMFA: make(map[string]time.Time),
		tokens:     make(map[string]struct{}),
		tenants:    make(map[string]*api.Tenant),
	}
}

// HandleLogin processes the password step of the admin login.
//
// URL format: POST /api/auth/login
// Request body: {"email": ..., "password": ...}
//
// A successful login opens a pending-MFA session but returns no token;
// the client must complete TOTP verification to authenticate.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req api.LoginRequest
	if err := decodeBody(r, &req); err != nil {
		http.Error(w, err.Error(), err.StatusCode)
		return
	}

	if req.Email != h.cfg.AdminEmail ||
		bcrypt.CompareHashAndPassword(h.cfg.AdminPasswordHash, []byte(req.Password)) != nil {
		h.log.Warn("rejected login", "email", req.Email)
		http.Error(w, "Invalid email or password", http.StatusUnauthorized)
		return
	}

	h.mu.Lock()
	h.pendingMFA[req.Email] = time.Now().Add(mfaSessionTTL)
	h.mu.Unlock()

	h.log.Info("password accepted, MFA pending", "email", req.Email)
	writeJSON(w, h.log, api.LoginResponse{MFARequired: true})
}

// HandleMFAVerify processes the TOTP step of the admin login.
//
// URL format: POST /api/auth/mfa/verify
// Request body: {"email": ..., "totpCode": ...}
//
// Response: {"accessToken": ...}
//
// Codes from the adjacent time windows are accepted to tolerate clock skew
// between client and server.
func (h *Handler) HandleMFAVerify(w http.ResponseWriter, r *http.Request) {
	var req api.MFAVerifyRequest
	if err := decodeBody(r, &req); err != nil {
		http.Error(w, err.Error(), err.StatusCode)
		return
	}

	h.mu.Lock()
	deadline, pending := h.pendingMFA[req.Email]
	if pending && time.Now().Before(deadline) {
		delete(h.pendingMFA, req.Email)
	} else {
		pending = false
	}
	h.mu.Unlock()

	if !pending {
		http.Error(w, "No pending MFA session", http.StatusUnauthorized)
		return
	}

	if !h.totpValid(req.TOTPCode) {
		h.log.Warn("rejected TOTP code", "email", req.Email)
		http.Error(w, "Invalid TOTP code", http.StatusUnauthorized)
		return
	}

	token, err := newToken()
	if err != nil {
		h.log.Error("Failed to generate token", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.mu.Lock()
	h.tokens[token] = struct{}{}
	h.mu.Unlock()

	h.log.Info("admin authenticated", "email", req.Email)
	writeJSON(w, h.log, api.MFAVerifyResponse{AccessToken: token})
}

// HandleCreateTenant accepts a tenant provisioning request and starts the
// simulated workflow in the background.
//
// URL format: POST /api/admin/tenants
// Request body: api.CreateTenantRequest
//
// Response: the initial tenant record with status "provisioning".
func (h *Handler) HandleCreateTenant(w http.ResponseWriter, r *http.Request) {
	var req api.CreateTenantRequest
	if err := decodeBody(r, &req); err != nil {
		http.Error(w, err.Error(), err.StatusCode)
		return
	}
	if req.CompanyName == "" {
		http.Error(w, "Missing companyName", http.StatusBadRequest)
		return
	}

	tenant := &api.Tenant{
		ID:     uuid.New().String(),
		Name:   req.CompanyName,
		Status: api.StatusProvisioning,
	}

	h.mu.Lock()
	h.tenants[tenant.ID] = tenant
	h.mu.Unlock()

	if h.metrics != nil {
		h.metrics.TenantsCreated.Inc()
	}

	h.log.Info("tenant accepted", "id", tenant.ID, "name", req.CompanyName, "plan", req.Plan)
	go h.provision(tenant.ID)

	writeJSONStatus(w, h.log, http.StatusCreated, tenant)
}

// HandleGetTenant returns the current snapshot of a tenant record.
//
// URL format: GET /api/admin/tenants/{tenant_id}
func (h *Handler) HandleGetTenant(w http.ResponseWriter, r *http.Request) {
	tenantID := r.PathValue("tenant_id")

	h.mu.RLock()
	tenant, ok := h.tenants[tenantID]
	var snapshot api.Tenant
	if ok {
		snapshot = *tenant
	}
	h.mu.RUnlock()

	if !ok {
		http.Error(w, "Tenant not found", http.StatusNotFound)
		return
	}
	writeJSON(w, h.log, &snapshot)
}

// Authorized reports whether the bearer token was issued by this process.
func (h *Handler) Authorized(r *http.Request) bool {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok || token == "" {
		return false
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	_, issued := h.tokens[token]
	return issued
}

// totpValid checks a code against the current window and both neighbors.
func (h *Handler) totpValid(code string) bool {
	now := time.Now()
	for _, skew := range []time.Duration{0, -totp.DefaultPeriod * time.Second, totp.DefaultPeriod * time.Second} {
		expected, err := totp.GenerateAt(h.cfg.MFASecret, now.Add(skew), totp.DefaultPeriod)
		if err != nil {
			h.log.Error("Invalid MFA secret configured", "err", err)
			return false
		}
		if code == expected {
			return true
		}
	}
	return false
}

func newToken() (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return hex.EncodeToString(raw), nil
}

func decodeBody(r *http.Request, out any) *RequestError {
	if err := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodySize)).Decode(out); err != nil {
		return &RequestError{
			StatusCode: http.StatusBadRequest,
			Err:        fmt.Errorf("invalid request body: %w", err),
		}
	}
	return nil
}

func writeJSON(w http.ResponseWriter, log *slog.Logger, value any) {
	writeJSONStatus(w, log, http.StatusOK, value)
}

func writeJSONStatus(w http.ResponseWriter, log *slog.Logger, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(value); err != nil {
		log.Error("Failed to encode response", "err", err)
	}
}
