package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

type Handlers struct {
	Catalog  *CatalogHandler
	Session  *SessionHandler
	Cart     *CartHandler
	Checkout *CheckoutHandler
	Orders   *OrdersHandler
	Metrics  http.Handler
}

type RouterConfig struct {
	RequestTimeout     time.Duration
	MaxRequestBodySize int64
	Cookie             SessionCookie
}

// NewRouter mounts the storefront API and wraps it with tracing.
func NewRouter(h Handlers, cfg RouterConfig, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(AccessLog(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(BodyLimit(cfg.MaxRequestBodySize))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if h.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", h.Metrics)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/catalog", func(r chi.Router) {
			r.Get("/menu", h.Catalog.Menu)
			r.Get("/index", h.Catalog.Index)
			r.Get("/categories", h.Catalog.ListCategories)
			r.Get("/categories/{id}", h.Catalog.GetCategory)
			r.Get("/products", h.Catalog.ListProducts)
			r.Get("/products/{id}", h.Catalog.GetProduct)
			r.Get("/products/{id}/catalog", h.Catalog.GetGallery)
		})

		r.Group(func(r chi.Router) {
			r.Use(SessionMiddleware(cfg.Cookie))

			r.Route("/session", func(r chi.Router) {
				r.Get("/", h.Session.GetSession)
				r.Post("/login", h.Session.Login)
				r.Post("/register", h.Session.Register)
				r.Delete("/", h.Session.Logout)
			})
			r.Route("/cart", func(r chi.Router) {
				r.Get("/", h.Cart.GetCart)
				r.Post("/items", h.Cart.AddItem)
				r.Delete("/items/{id}", h.Cart.RemoveItem)
				r.Delete("/", h.Cart.ClearCart)
			})
			r.Route("/checkout", func(r chi.Router) {
				r.Get("/", h.Checkout.GetCheckout)
				r.Post("/", h.Checkout.SubmitOrder)
			})
			r.Route("/orders", func(r chi.Router) {
				r.Get("/", h.Orders.ListOrders)
				r.Get("/{id}", h.Orders.GetOrder)
				r.Get("/{id}/payment/{checkout_id}", h.Orders.GetPayment)
			})
		})
	})

	return otelhttp.NewHandler(r, "storefront")
}
