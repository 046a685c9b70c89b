package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/example/luxa-shop/internal/apperr"
	"github.com/example/luxa-shop/internal/domain/wilaya"
)

// MockWilayaRepository is an in-memory wilaya.Repository for testing
type MockWilayaRepository struct {
	mu      sync.RWMutex
	wilayas map[int]*wilaya.Wilaya

	GetCalls []int
	Err      error
}

func NewMockWilayaRepository(ws ...*wilaya.Wilaya) *MockWilayaRepository {
	m := &MockWilayaRepository{wilayas: make(map[int]*wilaya.Wilaya)}
	for _, w := range ws {
		m.SetData(w)
	}
	return m
}

func (m *MockWilayaRepository) SetData(w *wilaya.Wilaya) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *w
	m.wilayas[w.ID] = &cp
}

func (m *MockWilayaRepository) ListActive(_ context.Context) ([]*wilaya.Wilaya, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.Err != nil {
		return nil, m.Err
	}
	out := make([]*wilaya.Wilaya, 0, len(m.wilayas))
	for _, w := range m.wilayas {
		if w.IsActive {
			cp := *w
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (m *MockWilayaRepository) List(_ context.Context) ([]*wilaya.Wilaya, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.Err != nil {
		return nil, m.Err
	}
	out := make([]*wilaya.Wilaya, 0, len(m.wilayas))
	for _, w := range m.wilayas {
		cp := *w
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (m *MockWilayaRepository) Get(_ context.Context, id int) (*wilaya.Wilaya, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetCalls = append(m.GetCalls, id)
	if m.Err != nil {
		return nil, m.Err
	}
	w, ok := m.wilayas[id]
	if !ok {
		return nil, apperr.NotFound("get wilaya")
	}
	cp := *w
	return &cp, nil
}

func (m *MockWilayaRepository) UpdateRates(_ context.Context, id, bureau, domicile int) (*wilaya.Wilaya, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	w, ok := m.wilayas[id]
	if !ok {
		return nil, apperr.NotFound("update wilaya")
	}
	w.ShippingBureau = bureau
	w.ShippingDomicile = domicile
	cp := *w
	return &cp, nil
}
