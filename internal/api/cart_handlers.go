package api

import (
	"net/http"
	"time"

	"github.com/example/luxa-shop/internal/apperr"
	"github.com/example/luxa-shop/internal/domain/cart"
	"github.com/example/luxa-shop/internal/domain/checkout"
	"github.com/example/luxa-shop/internal/domain/order"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// CartCookie identifies the visitor's cart.
const CartCookie = "cart_id"

const cartCookieMaxAge = 30 * 24 * time.Hour

type cartResponse struct {
	Items      []cart.Item `json:"items"`
	TotalItems int         `json:"total_items"`
	TotalPrice int         `json:"total_price"`
}

func newCartResponse(c *cart.Store) cartResponse {
	return cartResponse{
		Items:      c.Items(),
		TotalItems: c.TotalItems(),
		TotalPrice: c.TotalPrice(),
	}
}

type AddItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Variant   string `json:"variant"`
}

type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type QuoteRequest struct {
	WilayaID       int                  `json:"wilaya_id"`
	DeliveryMethod order.DeliveryMethod `json:"delivery_method"`
}

// openCart loads the cart of the requesting visitor, issuing a new cart
// cookie on the first visit.
func (h *Handlers) openCart(w http.ResponseWriter, r *http.Request) *cart.Store {
	id := ""
	if cookie, err := r.Cookie(CartCookie); err == nil {
		if _, err := uuid.Parse(cookie.Value); err == nil {
			id = cookie.Value
		}
	}
	if id == "" {
		id = uuid.NewString()
		http.SetCookie(w, &http.Cookie{
			Name:     CartCookie,
			Value:    id,
			Path:     "/",
			MaxAge:   int(cartCookieMaxAge.Seconds()),
			HttpOnly: true,
			Secure:   h.secureCookies,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return cart.Open(r.Context(), h.carts, cart.StorageKey(id), cart.WithClock(h.now))
}

func (h *Handlers) GetCart(w http.ResponseWriter, r *http.Request) {
	c := h.openCart(w, r)
	respondJSON(w, http.StatusOK, newCartResponse(c))
}

func (h *Handlers) AddCartItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	if req.ProductID == "" {
		respondError(w, r, apperr.Validation("product_id", "is required"))
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	product, err := h.catalog.Get(r.Context(), req.ProductID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	c := h.openCart(w, r)
	item, err := c.AddItem(r.Context(), *product, req.Quantity, req.Variant)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"item": item,
		"cart": newCartResponse(c),
	})
}

func (h *Handlers) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	var req UpdateQuantityRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	c := h.openCart(w, r)
	id := chi.URLParam(r, "id")
	if _, ok := c.Item(id); !ok {
		respondError(w, r, apperr.NotFound("cart item "+id))
		return
	}
	c.UpdateQuantity(r.Context(), id, req.Quantity)
	respondJSON(w, http.StatusOK, newCartResponse(c))
}

func (h *Handlers) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	c := h.openCart(w, r)
	id := chi.URLParam(r, "id")
	if _, ok := c.Item(id); !ok {
		respondError(w, r, apperr.NotFound("cart item "+id))
		return
	}
	c.RemoveItem(r.Context(), id)
	respondJSON(w, http.StatusOK, newCartResponse(c))
}

func (h *Handlers) ClearCart(w http.ResponseWriter, r *http.Request) {
	c := h.openCart(w, r)
	c.Clear(r.Context())
	respondJSON(w, http.StatusOK, newCartResponse(c))
}

// ========================================
// Checkout
// ========================================

func (h *Handlers) Quote(w http.ResponseWriter, r *http.Request) {
	var req QuoteRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	c := h.openCart(w, r)
	quote, err := h.checkout.Quote(r.Context(), c, req.WilayaID, req.DeliveryMethod)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, quote)
}

func (h *Handlers) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req checkout.Request
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	c := h.openCart(w, r)
	placed, err := h.checkout.PlaceOrder(r.Context(), c, req)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, placed)
}
