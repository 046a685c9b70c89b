package api

import (
	"net/http"

	"github.com/example/luxa-shop/internal/api/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(handlers *Handlers, webDir string) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)

	r.Route("/api", func(r chi.Router) {
		// Products
		r.Get("/products", handlers.ListProducts)
		r.Get("/products/bestsellers", handlers.Bestsellers)
		r.Get("/products/new", handlers.NewArrivals)
		r.Get("/products/{slug}", handlers.GetProductBySlug)
		r.Get("/wilayas", handlers.ListWilayas)

		// Cart
		r.Get("/cart", handlers.GetCart)
		r.Delete("/cart", handlers.ClearCart)
		r.Post("/cart/items", handlers.AddCartItem)
		r.Patch("/cart/items/{id}", handlers.UpdateCartItem)
		r.Delete("/cart/items/{id}", handlers.RemoveCartItem)

		// Checkout
		r.Post("/checkout/quote", handlers.Quote)
		r.Post("/checkout", handlers.PlaceOrder)

		// Admin
		r.Route("/admin", func(r chi.Router) {
			r.Post("/login", handlers.Login)
			r.Post("/logout", handlers.Logout)
			r.Get("/session", handlers.Session)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin(handlers.gate, handlers.tokens))

				r.Get("/products", handlers.AdminListProducts)
				r.Post("/products", handlers.CreateProduct)
				r.Post("/products/images", handlers.UploadProductImage)
				r.Get("/products/{id}", handlers.AdminGetProduct)
				r.Put("/products/{id}", handlers.UpdateProduct)
				r.Delete("/products/{id}", handlers.DeleteProduct)

				r.Get("/orders", handlers.ListOrders)
				r.Get("/orders/export", handlers.ExportOrders)
				r.Get("/orders/{id}", handlers.GetOrder)
				r.Patch("/orders/{id}/status", handlers.UpdateOrderStatus)
				r.Delete("/orders/{id}", handlers.DeleteOrder)

				r.Get("/wilayas", handlers.ListWilayas)
				r.Patch("/wilayas/{id}", handlers.UpdateWilayaRates)

				r.Get("/settings", handlers.GetSettings)
				r.Patch("/settings", handlers.UpdateSettings)
				r.Post("/password", handlers.ChangePassword)
			})
		})
	})

	// Static files (web UI)
	if webDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(webDir)))
	}

	return r
}
