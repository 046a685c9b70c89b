package mocks

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/example/luxa-shop/internal/apperr"
	"github.com/example/luxa-shop/internal/domain/order"
	"github.com/google/uuid"
)

var errDuplicateOrderNumber = errors.New("duplicate key value violates unique constraint \"orders_order_number_key\"")

// MockOrderRepository is an in-memory order.Repository for testing
type MockOrderRepository struct {
	mu     sync.RWMutex
	orders map[string]*order.Order

	// For tracking calls in tests
	InsertCalls       []*order.Order
	UpdateStatusCalls []UpdateStatusCall
	DeleteCalls       []string

	InsertErr error
	Err       error
	Now       func() time.Time
}

// UpdateStatusCall records parameters passed to UpdateStatus
type UpdateStatusCall struct {
	ID     string
	Status order.Status
}

func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{orders: make(map[string]*order.Order), Now: time.Now}
}

func (m *MockOrderRepository) SetData(o *order.Order) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *o
	m.orders[o.ID] = &cp
}

func (m *MockOrderRepository) Insert(_ context.Context, o *order.Order) (*order.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.InsertCalls = append(m.InsertCalls, o)
	if m.InsertErr != nil {
		return nil, m.InsertErr
	}
	if m.Err != nil {
		return nil, m.Err
	}
	for _, existing := range m.orders {
		if existing.OrderNumber == o.OrderNumber {
			return nil, apperr.Remote("insert order", errDuplicateOrderNumber)
		}
	}
	cp := *o
	cp.ID = uuid.New().String()
	cp.CreatedAt = m.Now()
	cp.UpdatedAt = cp.CreatedAt
	m.orders[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (m *MockOrderRepository) Get(_ context.Context, id string) (*order.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.Err != nil {
		return nil, m.Err
	}
	o, ok := m.orders[id]
	if !ok {
		return nil, apperr.NotFound("get order")
	}
	cp := *o
	return &cp, nil
}

func (m *MockOrderRepository) List(_ context.Context) ([]*order.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.Err != nil {
		return nil, m.Err
	}
	out := make([]*order.Order, 0, len(m.orders))
	for _, o := range m.orders {
		cp := *o
		out = append(out, &cp)
	}
	return out, nil
}

func (m *MockOrderRepository) UpdateStatus(_ context.Context, id string, status order.Status) (*order.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdateStatusCalls = append(m.UpdateStatusCalls, UpdateStatusCall{ID: id, Status: status})
	if m.Err != nil {
		return nil, m.Err
	}
	o, ok := m.orders[id]
	if !ok {
		return nil, apperr.NotFound("update order status")
	}
	o.Status = status
	o.UpdatedAt = m.Now()
	cp := *o
	return &cp, nil
}

func (m *MockOrderRepository) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteCalls = append(m.DeleteCalls, id)
	if m.Err != nil {
		return m.Err
	}
	delete(m.orders, id)
	return nil
}
