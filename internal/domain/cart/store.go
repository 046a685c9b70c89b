package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/example/luxa-shop/internal/apperr"
	"github.com/example/luxa-shop/internal/domain/catalog"
)

// KeyPrefix namespaces cart session keys in the storage backend.
const KeyPrefix = "luxa-cart"

var (
	ErrInvalidProduct = errors.New("product_id is required")
	ErrInvalidVariant = errors.New("variant is not offered by this product")
)

// StorageKey returns the storage key for a cart session.
func StorageKey(sessionID string) string {
	return KeyPrefix + ":" + sessionID
}

type Option func(*Store)

// WithClock overrides the time source used for item ids.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Store owns one shopping cart. Every mutation is written through to the
// storage port before it returns; storage failures are logged and never
// surface to the caller.
type Store struct {
	mu      sync.Mutex
	storage Storage
	key     string
	items   []Item
	now     func() time.Time
}

// Open rehydrates the cart stored under key. Missing, unreadable or corrupt
// state yields an empty cart.
func Open(ctx context.Context, storage Storage, key string, opts ...Option) *Store {
	s := &Store{storage: storage, key: key, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	s.items = s.load(ctx)
	return s
}

func (s *Store) load(ctx context.Context) []Item {
	data, err := s.storage.Load(ctx, s.key)
	if err != nil {
		log.Printf("[Cart] Failed to load cart %s, starting empty: %v", s.key, err)
		return []Item{}
	}
	if len(data) == 0 {
		return []Item{}
	}

	var stored []Item
	if err := json.Unmarshal(data, &stored); err != nil {
		log.Printf("[Cart] Discarding unparsable cart %s: %v", s.key, err)
		return []Item{}
	}

	// Lines with the same product and variant collapse into the first one.
	items := make([]Item, 0, len(stored))
	for _, it := range stored {
		if it.ID == "" || it.Product.ID == "" || it.Quantity < 1 {
			continue
		}
		if i := findLine(items, it.Product.ID, it.Variant); i >= 0 {
			items[i].Quantity += it.Quantity
			continue
		}
		items = append(items, it)
	}
	return items
}

func findLine(items []Item, productID, variant string) int {
	for i, it := range items {
		if it.matches(productID, variant) {
			return i
		}
	}
	return -1
}

func (s *Store) persist(ctx context.Context) {
	data, err := json.Marshal(s.items)
	if err != nil {
		log.Printf("[Cart] Failed to encode cart %s: %v", s.key, err)
		return
	}
	if err := s.storage.Save(ctx, s.key, data); err != nil {
		log.Printf("[Cart] Failed to save cart %s: %v", s.key, err)
	}
}

// AddItem adds quantity units of product. A line with the same product and
// variant is incremented instead of duplicated. Quantities below one are
// treated as one. Stock is not checked.
func (s *Store) AddItem(ctx context.Context, product catalog.Product, quantity int, variant string) (Item, error) {
	if product.ID == "" {
		return Item{}, fmt.Errorf("%w: %w", apperr.Validation("product_id", "is required"), ErrInvalidProduct)
	}
	if err := checkVariant(&product, variant); err != nil {
		return Item{}, err
	}
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := findLine(s.items, product.ID, variant); i >= 0 {
		s.items[i].Quantity += quantity
		s.persist(ctx)
		return s.items[i], nil
	}

	item := Item{
		ID:       s.uniqueID(product.ID, variant),
		Product:  product,
		Quantity: quantity,
		Variant:  variant,
	}
	s.items = append(s.items, item)
	s.persist(ctx)
	return item, nil
}

func checkVariant(p *catalog.Product, variant string) error {
	ok := variant == ""
	if p.HasVariants() {
		ok = p.HasVariantOption(variant)
	}
	if !ok {
		return fmt.Errorf("%w: %w", apperr.Validation("variant", fmt.Sprintf("%q is not offered", variant)), ErrInvalidVariant)
	}
	return nil
}

func (s *Store) uniqueID(productID, variant string) string {
	base := itemID(productID, variant, s.now().UnixMilli())
	id := base
	for n := 2; s.indexOf(id) >= 0; n++ {
		id = fmt.Sprintf("%s-%d", base, n)
	}
	return id
}

func (s *Store) indexOf(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

// RemoveItem drops the line with the given id. Unknown ids are ignored.
func (s *Store) RemoveItem(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.remove(ctx, id)
}

func (s *Store) remove(ctx context.Context, id string) {
	i := s.indexOf(id)
	if i < 0 {
		return
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	s.persist(ctx)
}

// UpdateQuantity sets the quantity of a line; anything below one removes it.
func (s *Store) UpdateQuantity(ctx context.Context, id string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity < 1 {
		s.remove(ctx, id)
		return
	}
	i := s.indexOf(id)
	if i < 0 {
		return
	}
	s.items[i].Quantity = quantity
	s.persist(ctx)
}

// Clear empties the cart.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = []Item{}
	s.persist(ctx)
}

// Items returns a copy of the current lines in insertion order.
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Item(nil), s.items...)
}

// Item returns the line with the given id.
func (s *Store) Item(id string) (Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(id); i >= 0 {
		return s.items[i], true
	}
	return Item{}, false
}

// TotalItems is the sum of quantities over all lines.
func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int
	for _, it := range s.items {
		n += it.Quantity
	}
	return n
}

// TotalPrice is the sum of price times quantity over all lines.
func (s *Store) TotalPrice() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total int
	for _, it := range s.items {
		total += it.Subtotal()
	}
	return total
}

func (s *Store) IsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items) == 0
}

// Key returns the storage key this cart persists under.
func (s *Store) Key() string { return s.key }
