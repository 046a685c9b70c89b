package order

import (
	"context"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/example/luxa-shop/internal/apperr"
	"github.com/google/uuid"
)

// Filter narrows an order listing. Zero values match everything.
type Filter struct {
	Status Status
	Search string
}

// Matches applies the filter to a single order.
func (f Filter) Matches(o *Order) bool {
	if f.Status != "" && o.Status != f.Status {
		return false
	}
	if f.Search != "" && !strings.Contains(strings.ToLower(o.OrderNumber), strings.ToLower(f.Search)) {
		return false
	}
	return true
}

// Repository is the orders table of the persistence service.
type Repository interface {
	Insert(ctx context.Context, o *Order) (*Order, error)
	Get(ctx context.Context, id string) (*Order, error)
	List(ctx context.Context) ([]*Order, error)
	UpdateStatus(ctx context.Context, id string, status Status) (*Order, error)
	Delete(ctx context.Context, id string) error
}

// Publisher emits order events to downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, key string, event any) error
}

type Service struct {
	repo      Repository
	publisher Publisher
	now       func() time.Time
}

func NewService(repo Repository, publisher Publisher) *Service {
	return &Service{repo: repo, publisher: publisher, now: time.Now}
}

// List returns the orders matching f, newest first.
func (s *Service) List(ctx context.Context, f Filter) ([]*Order, error) {
	if f.Status != "" && !f.Status.Valid() {
		return nil, apperr.Validation("status", "unknown status "+string(f.Status))
	}
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperr.Remote("list orders", err)
	}

	orders := make([]*Order, 0, len(all))
	for _, o := range all {
		if f.Matches(o) {
			orders = append(orders, o)
		}
	}
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Order, error) {
	o, err := s.repo.Get(ctx, id)
	return o, apperr.Remote("get order", err)
}

// UpdateStatus sets any known status on an order. Admins may move an order
// backwards, e.g. reopening a delivered order.
func (s *Service) UpdateStatus(ctx context.Context, id string, status Status) (*Order, error) {
	if !status.Valid() {
		return nil, apperr.Validation("status", "unknown status "+string(status))
	}

	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperr.Remote("get order", err)
	}
	if current.Status == status {
		return current, nil
	}

	updated, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, apperr.Remote("update order status", err)
	}

	s.publish(ctx, updated.ID, EventOrderStatusChanged, OrderStatusChanged{
		OrderID:     updated.ID,
		OrderNumber: updated.OrderNumber,
		From:        current.Status,
		To:          status,
		ChangedAt:   s.now(),
	})
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperr.Validation("id", "is required")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperr.Remote("delete order", err)
	}
	s.publish(ctx, id, EventOrderDeleted, OrderDeleted{OrderID: id, DeletedAt: s.now()})
	return nil
}

// Published reports a freshly inserted order to downstream consumers.
func (s *Service) Published(ctx context.Context, o *Order) {
	s.publish(ctx, o.ID, EventOrderPlaced, NewOrderPlaced(o))
}

// publish never fails the caller: the order row is the source of truth.
func (s *Service) publish(ctx context.Context, orderID, eventType string, data any) {
	if s.publisher == nil {
		return
	}
	event := Event{
		ID:        uuid.New().String(),
		EventType: eventType,
		OrderID:   orderID,
		Data:      data,
		Timestamp: s.now(),
	}
	if err := s.publisher.Publish(ctx, orderID, event); err != nil {
		log.Printf("[Order] Failed to publish %s for order %s: %v", eventType, orderID, err)
	}
}
