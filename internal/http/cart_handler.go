package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/brazcamiseteria/storefront/internal/cart"
	"github.com/brazcamiseteria/storefront/internal/domain"
	"github.com/brazcamiseteria/storefront/internal/metrics"
	"github.com/brazcamiseteria/storefront/pkg/logger"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ProductFinder resolves the product a selection was made on.
type ProductFinder interface {
	Product(ctx context.Context, productID string) (*domain.Product, error)
}

type CartHandler struct {
	products ProductFinder
	carts    *cart.Registry
	builder  *cart.Builder
	metrics  *metrics.Metrics
	timeout  time.Duration
	logger   *zap.Logger
}

func NewCartHandler(products ProductFinder, carts *cart.Registry, builder *cart.Builder, m *metrics.Metrics, timeout time.Duration, logger *zap.Logger) *CartHandler {
	return &CartHandler{
		products: products,
		carts:    carts,
		builder:  builder,
		metrics:  m,
		timeout:  timeout,
		logger:   logger,
	}
}

type AddItemRequestDTO struct {
	ProductID string `json:"product_id"`
	SizeID    string `json:"size_id"`
	Quantity  int    `json:"quantity"`
}

type LineItemDTO struct {
	ID           string      `json:"id"`
	ProductID    string      `json:"product_id"`
	ProductName  string      `json:"product_name"`
	CategoryName string      `json:"category_name"`
	ThumbnailURL string      `json:"thumbnail_url"`
	SizeID       string      `json:"size_id"`
	SizeLabel    string      `json:"size_label"`
	Quantity     int         `json:"quantity"`
	UnitPrice    json.Number `json:"unit_price"`
	LineTotal    json.Number `json:"line_total"`
}

type CartResponseDTO struct {
	Items []LineItemDTO `json:"items"`
	Total json.Number   `json:"total"`
}

func convertCartView(v domain.CartView) CartResponseDTO {
	items := make([]LineItemDTO, 0, len(v.Items))
	for _, item := range v.Items {
		items = append(items, LineItemDTO{
			ID:           item.ID,
			ProductID:    item.ProductID,
			ProductName:  item.ProductName,
			CategoryName: item.CategoryName,
			ThumbnailURL: item.ThumbnailURL,
			SizeID:       item.SizeID,
			SizeLabel:    item.SizeLabel,
			Quantity:     item.Quantity,
			UnitPrice:    money(item.UnitPrice),
			LineTotal:    money(item.LineTotal),
		})
	}
	return CartResponseDTO{Items: items, Total: money(v.Total)}
}

// GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	store := h.carts.Get(getSessionID(r.Context()))
	respondJSON(w, http.StatusOK, convertCartView(store.View()))
}

// POST /api/v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.ProductID) == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}

	product, err := h.products.Product(ctx, req.ProductID)
	if err != nil {
		handleError(w, err)
		return
	}

	// an unknown size id leaves size zero, which the builder rejects
	size, _ := product.FindSize(req.SizeID)

	store := h.carts.Get(getSessionID(r.Context()))
	item, err := h.builder.Build(store, *product, size, req.Quantity)
	if err == nil {
		err = store.Add(item)
	}
	if err != nil {
		if code, ok := domain.CodeOf(err); ok {
			h.metrics.ItemRejected(string(code))
		}
		logger.FromContext(r.Context(), h.logger).Debug("add to cart rejected",
			zap.String("product_id", req.ProductID), zap.Error(err))
		handleError(w, err)
		return
	}

	h.metrics.ItemAdded()
	respondJSON(w, http.StatusCreated, convertCartView(store.View()))
}

// DELETE /api/v1/cart/items/{id}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "id")
	if itemID == "" {
		respondError(w, http.StatusBadRequest, "missing_item_id", "item id is required")
		return
	}

	store := h.carts.Get(getSessionID(r.Context()))
	store.Remove(itemID)
	respondJSON(w, http.StatusOK, convertCartView(store.View()))
}

// DELETE /api/v1/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	store := h.carts.Get(getSessionID(r.Context()))
	store.Clear()
	respondJSON(w, http.StatusOK, convertCartView(store.View()))
}
