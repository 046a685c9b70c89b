package api

import (
	"bytes"
	"net/http"
	"strconv"
	"time"

	"github.com/example/luxa-shop/internal/api/middleware"
	"github.com/example/luxa-shop/internal/apperr"
	"github.com/example/luxa-shop/internal/domain/admin"
	"github.com/example/luxa-shop/internal/domain/catalog"
	"github.com/example/luxa-shop/internal/domain/order"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type LoginRequest struct {
	Password string `json:"password"`
}

type SessionResponse struct {
	LoggedIn  bool       `json:"logged_in"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

type UpdateStatusRequest struct {
	Status order.Status `json:"status"`
}

type ShippingRatesRequest struct {
	ShippingBureau   int `json:"shipping_bureau"`
	ShippingDomicile int `json:"shipping_domicile"`
}

type DefaultShippingRequest struct {
	DefaultShippingBureau   int `json:"default_shipping_bureau"`
	DefaultShippingDomicile int `json:"default_shipping_domicile"`
}

type ChangePasswordRequest struct {
	NewPassword string `json:"new_password"`
}

// ========================================
// Session
// ========================================

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	var session admin.Session
	if err := h.gate.Login(r.Context(), &session, req.Password); err != nil {
		respondError(w, r, err)
		return
	}

	token, expiresAt, err := h.tokens.Issue(&session)
	if err != nil {
		respondError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteStrictMode,
	})
	respondJSON(w, http.StatusOK, SessionResponse{LoggedIn: true, ExpiresAt: &expiresAt})
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	middleware.ClearSessionCookie(w)
	respondJSON(w, http.StatusOK, SessionResponse{LoggedIn: false})
}

func (h *Handlers) Session(w http.ResponseWriter, r *http.Request) {
	session := middleware.SessionFromRequest(r, h.gate, h.tokens)
	if session == nil {
		respondJSON(w, http.StatusOK, SessionResponse{LoggedIn: false})
		return
	}
	expiresAt := session.ExpiresAt()
	respondJSON(w, http.StatusOK, SessionResponse{LoggedIn: true, ExpiresAt: &expiresAt})
}

// ========================================
// Products
// ========================================

func (h *Handlers) AdminListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.List(r.Context(), "")
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, products)
}

func (h *Handlers) AdminGetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.catalog.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

func (h *Handlers) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var p catalog.Product
	if err := decodeJSON(r, &p); err != nil {
		respondError(w, r, err)
		return
	}
	p.ID = ""

	created, err := h.catalog.Create(r.Context(), &p)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (h *Handlers) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var p catalog.Product
	if err := decodeJSON(r, &p); err != nil {
		respondError(w, r, err)
		return
	}
	p.ID = chi.URLParam(r, "id")

	updated, err := h.catalog.Update(r.Context(), &p)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func (h *Handlers) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UploadProductImage accepts a multipart "image" field and returns the
// public URL of the stored object.
func (h *Handlers) UploadProductImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, catalog.MaxImageSize+1<<20)
	if err := r.ParseMultipartForm(catalog.MaxImageSize); err != nil {
		respondError(w, r, apperr.Validation("image", "must be a multipart upload of 5 MB or smaller"))
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		respondError(w, r, apperr.Validation("image", "is required"))
		return
	}
	defer file.Close()

	url, err := h.catalog.UploadImage(r.Context(), uuid.NewString(), header.Filename,
		header.Header.Get("Content-Type"), file, header.Size)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"url": url})
}

// ========================================
// Orders
// ========================================

func orderFilter(r *http.Request) order.Filter {
	q := r.URL.Query()
	return order.Filter{
		Status: order.Status(q.Get("status")),
		Search: q.Get("search"),
	}
}

func (h *Handlers) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.List(r.Context(), orderFilter(r))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, orders)
}

func (h *Handlers) GetOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.orders.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, o)
}

func (h *Handlers) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	updated, err := h.orders.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func (h *Handlers) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	if err := h.orders.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ExportOrders downloads the filtered orders as CSV (default) or XLSX.
func (h *Handlers) ExportOrders(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "csv"
	}
	if format != "csv" && format != "xlsx" {
		respondError(w, r, apperr.Validation("format", "must be csv or xlsx"))
		return
	}

	orders, err := h.orders.List(r.Context(), orderFilter(r))
	if err != nil {
		respondError(w, r, err)
		return
	}
	if len(orders) == 0 {
		respondError(w, r, apperr.NotFound("export orders"))
		return
	}
	regionNames, err := h.wilayas.Names(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	// Buffer so a failed export still gets a JSON error instead of a
	// truncated file.
	var buf bytes.Buffer
	contentType := "text/csv; charset=utf-8"
	if format == "xlsx" {
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		err = order.WriteXLSX(&buf, orders, regionNames)
	} else {
		err = order.WriteCSV(&buf, orders, regionNames)
	}
	if err != nil {
		respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+order.ExportFilename(h.now(), format)+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// ========================================
// Wilayas and settings
// ========================================

func (h *Handlers) UpdateWilayaRates(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, apperr.Validation("id", "must be a number"))
		return
	}
	var req ShippingRatesRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	updated, err := h.wilayas.UpdateRates(r.Context(), id, req.ShippingBureau, req.ShippingDomicile)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func (h *Handlers) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.gate.Settings(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, settings)
}

func (h *Handlers) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req DefaultShippingRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	settings, err := h.gate.UpdateDefaultShipping(r.Context(), req.DefaultShippingBureau, req.DefaultShippingDomicile)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, settings)
}

func (h *Handlers) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req ChangePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	if err := h.gate.ChangePassword(r.Context(), req.NewPassword); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
