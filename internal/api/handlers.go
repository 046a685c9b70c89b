package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/example/luxa-shop/internal/apperr"
	"github.com/example/luxa-shop/internal/auth"
	"github.com/example/luxa-shop/internal/domain/admin"
	"github.com/example/luxa-shop/internal/domain/cart"
	"github.com/example/luxa-shop/internal/domain/catalog"
	"github.com/example/luxa-shop/internal/domain/checkout"
	"github.com/example/luxa-shop/internal/domain/order"
	"github.com/example/luxa-shop/internal/domain/wilaya"
	"github.com/go-chi/chi/v5"
)

// Handlers holds every HTTP handler of the shop API.
type Handlers struct {
	catalog  *catalog.Service
	wilayas  *wilaya.Service
	orders   *order.Service
	checkout *checkout.Service
	carts    cart.Storage
	gate     *admin.Gate
	tokens   *auth.SessionTokens

	secureCookies bool
	now           func() time.Time
}

// Deps lists the services the handlers are built on.
type Deps struct {
	Catalog       *catalog.Service
	Wilayas       *wilaya.Service
	Orders        *order.Service
	Checkout      *checkout.Service
	Carts         cart.Storage
	Gate          *admin.Gate
	Tokens        *auth.SessionTokens
	SecureCookies bool
	Now           func() time.Time
}

func NewHandlers(d Deps) *Handlers {
	now := d.Now
	if now == nil {
		now = time.Now
	}
	return &Handlers{
		catalog:       d.Catalog,
		wilayas:       d.Wilayas,
		orders:        d.Orders,
		checkout:      d.Checkout,
		carts:         d.Carts,
		gate:          d.Gate,
		tokens:        d.Tokens,
		secureCookies: d.SecureCookies,
		now:           now,
	}
}

// ========================================
// Storefront
// ========================================

func (h *Handlers) ListProducts(w http.ResponseWriter, r *http.Request) {
	category := catalog.Category(strings.ToLower(r.URL.Query().Get("category")))
	if category != "" && !category.Valid() {
		respondError(w, r, apperr.Validation("category", "unknown category "+string(category)))
		return
	}

	products, err := h.catalog.List(r.Context(), category)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, products)
}

func (h *Handlers) Bestsellers(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.Bestsellers(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, products)
}

func (h *Handlers) NewArrivals(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.NewArrivals(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, products)
}

func (h *Handlers) GetProductBySlug(w http.ResponseWriter, r *http.Request) {
	product, err := h.catalog.BySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

func (h *Handlers) ListWilayas(w http.ResponseWriter, r *http.Request) {
	wilayas, err := h.wilayas.ListActive(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, wilayas)
}
