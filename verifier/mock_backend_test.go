package verifier

import (
	"github.com/stretchr/testify/mock"

	"github.com/aegis-platform/provisioning-verifier/api"
)

// MockBackend implements Backend for tests where call expectations matter.
type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) Login(req api.LoginRequest) (*api.LoginResponse, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.LoginResponse), args.Error(1)
}

func (m *MockBackend) VerifyMFA(req api.MFAVerifyRequest) (*api.MFAVerifyResponse, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.MFAVerifyResponse), args.Error(1)
}

func (m *MockBackend) CreateTenant(token string, req api.CreateTenantRequest) (*api.Tenant, error) {
	args := m.Called(token, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.Tenant), args.Error(1)
}

func (m *MockBackend) GetTenant(token, tenantID string) (*api.Tenant, error) {
	args := m.Called(token, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.Tenant), args.Error(1)
}

// scriptedBackend serves a fixed sequence of tenant snapshots from
// GetTenant, repeating the last one once the script runs out. It counts
// calls so tests can assert the poller's exact call budget.
type scriptedBackend struct {
	MockBackend

	snapshots []*api.Tenant
	getCalls  int
}

func (s *scriptedBackend) GetTenant(token, tenantID string) (*api.Tenant, error) {
	idx := s.getCalls
	s.getCalls++
	if idx >= len(s.snapshots) {
		idx = len(s.snapshots) - 1
	}
	return s.snapshots[idx], nil
}

func provisioningSnapshot(step string, progress int) *api.Tenant {
	return &api.Tenant{
		ID:                   "tenant-1",
		Status:               api.StatusProvisioning,
		ProvisioningStep:     step,
		ProvisioningProgress: progress,
	}
}
