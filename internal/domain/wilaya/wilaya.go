// Package wilaya holds the delivery regions and their flat shipping rates.
package wilaya

import (
	"context"
	"log"

	"github.com/example/luxa-shop/internal/apperr"
)

type Wilaya struct {
	ID               int    `json:"id"`
	Code             string `json:"code"`
	Name             string `json:"name"`
	ShippingBureau   int    `json:"shipping_bureau"`
	ShippingDomicile int    `json:"shipping_domicile"`
	IsActive         bool   `json:"is_active"`
}

// Repository is the wilayas table of the persistence service.
type Repository interface {
	ListActive(ctx context.Context) ([]*Wilaya, error)
	List(ctx context.Context) ([]*Wilaya, error)
	Get(ctx context.Context, id int) (*Wilaya, error)
	UpdateRates(ctx context.Context, id, bureau, domicile int) (*Wilaya, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ListActive returns the active regions ordered by code.
func (s *Service) ListActive(ctx context.Context) ([]*Wilaya, error) {
	ws, err := s.repo.ListActive(ctx)
	return ws, apperr.Remote("list wilayas", err)
}

// Names maps every region id to its name, inactive regions included, so
// past orders keep their label after a region is switched off.
func (s *Service) Names(ctx context.Context) (map[int]string, error) {
	ws, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperr.Remote("list wilayas", err)
	}
	names := make(map[int]string, len(ws))
	for _, w := range ws {
		names[w.ID] = w.Name
	}
	return names, nil
}

func (s *Service) Get(ctx context.Context, id int) (*Wilaya, error) {
	if id <= 0 {
		return nil, apperr.Validation("wilaya_id", "is required")
	}
	w, err := s.repo.Get(ctx, id)
	return w, apperr.Remote("get wilaya", err)
}

// UpdateRates replaces both shipping rates of a region.
func (s *Service) UpdateRates(ctx context.Context, id, bureau, domicile int) (*Wilaya, error) {
	if id <= 0 {
		return nil, apperr.Validation("id", "is required")
	}
	if bureau < 0 || domicile < 0 {
		return nil, apperr.Validation("shipping", "rates must not be negative")
	}
	w, err := s.repo.UpdateRates(ctx, id, bureau, domicile)
	if err != nil {
		return nil, apperr.Remote("update wilaya rates", err)
	}
	log.Printf("[Wilaya] Rates updated for %s %s: bureau=%d domicile=%d", w.Code, w.Name, bureau, domicile)
	return w, nil
}
