package service

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/javakishore-veleti/eventsgrasp/internal/domain"
	"github.com/javakishore-veleti/eventsgrasp/internal/domain/credential"
	"github.com/javakishore-veleti/eventsgrasp/internal/domain/customer"
	"github.com/javakishore-veleti/eventsgrasp/internal/port/database"
)

var _ database.Store = (*mockStore)(nil)

// mockStore is an in-memory database.Store for service tests.
type mockStore struct {
	mu        sync.Mutex
	nextID    int64
	creds     map[int64]credential.Credential
	customers map[int64]customer.Customer
	sessions  map[string]customer.Session

	customerLookups atomic.Int64
	lookupDelay     time.Duration

	// Error hooks: set these to inject failures.
	listErr       error
	getErr        error
	createErr     error
	updateErr     error
	deactivateErr error
	customerErr   error
	sessionErr    error
}

func newMockStore() *mockStore {
	return &mockStore{
		creds:     make(map[int64]credential.Credential),
		customers: make(map[int64]customer.Customer),
		sessions:  make(map[string]customer.Session),
	}
}

func (m *mockStore) ListCredentials(_ context.Context, customerID int64, providerType string) ([]credential.Credential, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []credential.Credential
	for _, c := range m.creds {
		if c.CustomerID != customerID || !c.IsActive {
			continue
		}
		if providerType != "" && c.ProviderType != providerType {
			continue
		}
		c.Config = nil
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *mockStore) GetCredential(_ context.Context, customerID, id int64) (*credential.Credential, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.creds[id]
	if !ok || c.CustomerID != customerID {
		return nil, domain.ErrNotFound
	}
	c.Config = copyConfig(c.Config)
	return &c, nil
}

func (m *mockStore) CreateCredential(_ context.Context, c *credential.Credential) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.creds {
		if existing.CustomerID == c.CustomerID && existing.Name == c.Name {
			return &domain.ConflictError{Message: database.DuplicateCredentialName}
		}
	}
	m.nextID++
	c.ID = m.nextID
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	stored := *c
	stored.Config = copyConfig(c.Config)
	m.creds[c.ID] = stored
	return nil
}

func (m *mockStore) UpdateCredential(_ context.Context, customerID, id int64, req credential.UpdateRequest) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.creds[id]
	if !ok || c.CustomerID != customerID {
		return domain.ErrNotFound
	}
	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Description != nil {
		c.Description = *req.Description
	}
	if len(req.Config) > 0 {
		c.Config = copyConfig(req.Config)
	}
	if req.IsActive != nil {
		c.IsActive = *req.IsActive
	}
	c.UpdatedAt = time.Now()
	m.creds[id] = c
	return nil
}

func (m *mockStore) DeactivateCredential(_ context.Context, customerID, id int64) error {
	if m.deactivateErr != nil {
		return m.deactivateErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.creds[id]
	if !ok || c.CustomerID != customerID {
		return domain.ErrNotFound
	}
	c.IsActive = false
	m.creds[id] = c
	return nil
}

func (m *mockStore) GetCustomer(_ context.Context, id int64) (*customer.Customer, error) {
	m.customerLookups.Add(1)
	if m.lookupDelay > 0 {
		time.Sleep(m.lookupDelay)
	}
	if m.customerErr != nil {
		return nil, m.customerErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.customers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (m *mockStore) GetSessionByToken(_ context.Context, token string) (*customer.Session, error) {
	if m.sessionErr != nil {
		return nil, m.sessionErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[token]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &s, nil
}

func (m *mockStore) Ping(context.Context) error { return nil }

func (m *mockStore) Close() {}

func (m *mockStore) putCustomer(c customer.Customer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.customers[c.ID] = c
}

func (m *mockStore) deleteCustomer(id int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.customers, id)
}

func copyConfig(in map[string]any) map[string]any {
	if in == nil {
		return nil
	}
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
