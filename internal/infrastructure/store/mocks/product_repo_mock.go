package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/example/luxa-shop/internal/apperr"
	"github.com/example/luxa-shop/internal/domain/catalog"
	"github.com/google/uuid"
)

// MockProductRepository is an in-memory catalog.Repository for testing
type MockProductRepository struct {
	mu       sync.RWMutex
	products map[string]*catalog.Product

	// For tracking calls in tests
	InsertCalls []*catalog.Product
	UpdateCalls []*catalog.Product
	DeleteCalls []string

	Err error
}

func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{products: make(map[string]*catalog.Product)}
}

// SetData stores a product directly for testing
func (m *MockProductRepository) SetData(p *catalog.Product) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	m.products[p.ID] = &cp
}

func (m *MockProductRepository) List(_ context.Context, f catalog.Filter) ([]*catalog.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.Err != nil {
		return nil, m.Err
	}

	out := make([]*catalog.Product, 0, len(m.products))
	for _, p := range m.products {
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.IsNew != nil && p.IsNew != *f.IsNew {
			continue
		}
		if f.IsBestseller != nil && p.IsBestseller != *f.IsBestseller {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (m *MockProductRepository) Get(_ context.Context, id string) (*catalog.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.Err != nil {
		return nil, m.Err
	}
	p, ok := m.products[id]
	if !ok {
		return nil, apperr.NotFound("get product")
	}
	cp := *p
	return &cp, nil
}

func (m *MockProductRepository) GetBySlug(_ context.Context, slug string) (*catalog.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.Err != nil {
		return nil, m.Err
	}
	for _, p := range m.products {
		if p.Slug == slug {
			cp := *p
			return &cp, nil
		}
	}
	return nil, apperr.NotFound("get product by slug")
}

func (m *MockProductRepository) Insert(_ context.Context, p *catalog.Product) (*catalog.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.InsertCalls = append(m.InsertCalls, p)
	if m.Err != nil {
		return nil, m.Err
	}
	cp := *p
	cp.ID = uuid.New().String()
	cp.CreatedAt = time.Now()
	cp.UpdatedAt = cp.CreatedAt
	m.products[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (m *MockProductRepository) Update(_ context.Context, p *catalog.Product) (*catalog.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdateCalls = append(m.UpdateCalls, p)
	if m.Err != nil {
		return nil, m.Err
	}
	existing, ok := m.products[p.ID]
	if !ok {
		return nil, apperr.NotFound("update product")
	}
	cp := *p
	cp.CreatedAt = existing.CreatedAt
	cp.UpdatedAt = time.Now()
	m.products[p.ID] = &cp
	out := cp
	return &out, nil
}

func (m *MockProductRepository) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteCalls = append(m.DeleteCalls, id)
	if m.Err != nil {
		return m.Err
	}
	delete(m.products, id)
	return nil
}
