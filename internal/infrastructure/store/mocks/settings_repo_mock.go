package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/example/luxa-shop/internal/apperr"
	"github.com/example/luxa-shop/internal/domain/admin"
)

// MockSettingsRepository is an in-memory admin.SettingsRepository for testing
type MockSettingsRepository struct {
	mu       sync.RWMutex
	settings *admin.Settings

	GetCalls                int
	UpdatePasswordHashCalls []string

	GetErr    error
	UpdateErr error
}

// NewMockSettingsRepository seeds the singleton row with the digest of
// password. An empty password leaves the row absent.
func NewMockSettingsRepository(password string) *MockSettingsRepository {
	m := &MockSettingsRepository{}
	if password != "" {
		m.settings = &admin.Settings{
			ID:                      1,
			PasswordHash:            admin.HashPassword(password),
			DefaultShippingBureau:   400,
			DefaultShippingDomicile: 700,
			UpdatedAt:               time.Now(),
		}
	}
	return m
}

func (m *MockSettingsRepository) SetData(s *admin.Settings) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	m.settings = &cp
}

func (m *MockSettingsRepository) Get(_ context.Context) (*admin.Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetCalls++
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	if m.settings == nil {
		return nil, apperr.NotFound("get admin settings")
	}
	cp := *m.settings
	return &cp, nil
}

func (m *MockSettingsRepository) UpdatePasswordHash(_ context.Context, digest string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdatePasswordHashCalls = append(m.UpdatePasswordHashCalls, digest)
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	if m.settings == nil {
		return apperr.NotFound("update admin password")
	}
	m.settings.PasswordHash = digest
	m.settings.UpdatedAt = time.Now()
	return nil
}

func (m *MockSettingsRepository) UpdateDefaultShipping(_ context.Context, bureau, domicile int) (*admin.Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpdateErr != nil {
		return nil, m.UpdateErr
	}
	if m.settings == nil {
		return nil, apperr.NotFound("update default shipping")
	}
	m.settings.DefaultShippingBureau = bureau
	m.settings.DefaultShippingDomicile = domicile
	m.settings.UpdatedAt = time.Now()
	cp := *m.settings
	return &cp, nil
}
