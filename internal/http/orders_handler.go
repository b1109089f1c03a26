package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/brazcamiseteria/storefront/internal/domain"
	"github.com/brazcamiseteria/storefront/internal/session"
	"github.com/brazcamiseteria/storefront/pkg/logger"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// OrdersBackend is the order tracking side of the backend.
type OrdersBackend interface {
	ClientOrders(ctx context.Context, clientID string) ([]domain.Order, error)
	Order(ctx context.Context, orderID string) (*domain.Order, domain.CheckoutPaymentStatus, error)
	PaymentDetails(ctx context.Context, checkoutID, orderID string) (*domain.PaymentDetails, error)
}

type OrdersHandler struct {
	orders   OrdersBackend
	sessions session.Store
	timeout  time.Duration
	logger   *zap.Logger
}

func NewOrdersHandler(orders OrdersBackend, sessions session.Store, timeout time.Duration, logger *zap.Logger) *OrdersHandler {
	return &OrdersHandler{
		orders:   orders,
		sessions: sessions,
		timeout:  timeout,
		logger:   logger,
	}
}

type OrderItemDTO struct {
	ID          string      `json:"id"`
	ProductID   string      `json:"product_id"`
	ProductName string      `json:"product_name"`
	Thumbnail   string      `json:"thumbnail"`
	Size        string      `json:"size"`
	Quantity    int         `json:"quantity"`
	Total       json.Number `json:"total"`
}

type OrderResponseDTO struct {
	ID                  string         `json:"id"`
	CheckoutID          string         `json:"checkout_id,omitempty"`
	Observation         string         `json:"observation"`
	OrderStatus         string         `json:"order_status"`
	OrderStatusLabel    string         `json:"order_status_label"`
	PaymentStatus       string         `json:"payment_status"`
	PaymentStatusLabel  string         `json:"payment_status_label"`
	Shipped             bool           `json:"shipped"`
	Total               json.Number    `json:"total"`
	Items               []OrderItemDTO `json:"items"`
	CreatedAt           string         `json:"created_at"`
	ShippingCode        string         `json:"shipping_code,omitempty"`
	ShippingInformation string         `json:"shipping_information,omitempty"`
}

type OrderDetailDTO struct {
	OrderResponseDTO
	CheckoutPaymentStatus      string `json:"checkout_payment_status"`
	CheckoutPaymentStatusLabel string `json:"checkout_payment_status_label"`
}

type PaymentDetailsDTO struct {
	Status      string   `json:"status"`
	StatusLabel string   `json:"status_label"`
	Methods     []string `json:"methods"`
}

// convertOrder renders o for the client. Status values the backend added
// after this build still render, with the unknown label, and are logged.
func (h *OrdersHandler) convertOrder(ctx context.Context, o domain.Order) OrderResponseDTO {
	if _, err := domain.ParseOrderStatus(string(o.OrderStatus)); err != nil {
		logger.FromContext(ctx, h.logger).Warn("order with unknown status", zap.String("order_id", o.ID), zap.Error(err))
	}
	if _, err := domain.ParsePaymentStatus(string(o.PaymentStatus)); err != nil {
		logger.FromContext(ctx, h.logger).Warn("order with unknown payment status", zap.String("order_id", o.ID), zap.Error(err))
	}

	items := make([]OrderItemDTO, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemDTO{
			ID:          item.ID,
			ProductID:   item.Product.ID,
			ProductName: item.Product.Name,
			Thumbnail:   item.Product.Thumbnail,
			Size:        item.Size.Label,
			Quantity:    item.Quantity,
			Total:       money(item.Total),
		})
	}

	var createdAt string
	if !o.CreatedAt.IsZero() {
		createdAt = o.CreatedAt.Format(time.RFC3339)
	}

	return OrderResponseDTO{
		ID:                  o.ID,
		CheckoutID:          o.CheckoutID,
		Observation:         o.Observation,
		OrderStatus:         string(o.OrderStatus),
		OrderStatusLabel:    o.OrderStatus.Label(),
		PaymentStatus:       string(o.PaymentStatus),
		PaymentStatusLabel:  o.PaymentStatus.Label(),
		Shipped:             o.OrderStatus.IsShipped(),
		Total:               money(o.Total),
		Items:               items,
		CreatedAt:           createdAt,
		ShippingCode:        o.ShippingCode,
		ShippingInformation: o.ShippingInformation,
	}
}

// GET /api/v1/orders
func (h *OrdersHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	client, ok := h.requireClient(w, r)
	if !ok {
		return
	}

	orders, err := h.orders.ClientOrders(ctx, client.ID)
	if err != nil {
		handleError(w, err)
		return
	}

	dtos := make([]OrderResponseDTO, 0, len(orders))
	for _, o := range orders {
		dtos = append(dtos, h.convertOrder(ctx, o))
	}
	respondJSON(w, http.StatusOK, dtos)
}

// GET /api/v1/orders/{id}
func (h *OrdersHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	client, ok := h.requireClient(w, r)
	if !ok {
		return
	}

	orderID := chi.URLParam(r, "id")
	if orderID == "" {
		respondError(w, http.StatusBadRequest, "missing_order_id", "order id is required")
		return
	}

	order, paymentStatus, ok := h.ownedOrder(ctx, w, client, orderID)
	if !ok {
		return
	}
	if _, err := domain.ParseCheckoutPaymentStatus(string(paymentStatus)); err != nil && paymentStatus != "" {
		logger.FromContext(ctx, h.logger).Warn("order with unknown checkout payment status", zap.String("order_id", order.ID), zap.Error(err))
	}

	respondJSON(w, http.StatusOK, OrderDetailDTO{
		OrderResponseDTO:           h.convertOrder(ctx, *order),
		CheckoutPaymentStatus:      string(paymentStatus),
		CheckoutPaymentStatusLabel: paymentStatus.Label(),
	})
}

// GET /api/v1/orders/{id}/payment/{checkout_id}
func (h *OrdersHandler) GetPayment(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	client, ok := h.requireClient(w, r)
	if !ok {
		return
	}

	orderID := chi.URLParam(r, "id")
	checkoutID := chi.URLParam(r, "checkout_id")
	if orderID == "" || checkoutID == "" {
		respondError(w, http.StatusBadRequest, "missing_id", "order id and checkout id are required")
		return
	}

	order, _, ok := h.ownedOrder(ctx, w, client, orderID)
	if !ok {
		return
	}
	if order.CheckoutID != "" && order.CheckoutID != checkoutID {
		respondError(w, http.StatusNotFound, "not_found", "order not found")
		return
	}

	details, err := h.orders.PaymentDetails(ctx, checkoutID, orderID)
	if err != nil {
		handleError(w, err)
		return
	}

	methods := details.Methods
	if methods == nil {
		methods = []string{}
	}
	respondJSON(w, http.StatusOK, PaymentDetailsDTO{
		Status:      string(details.Status),
		StatusLabel: details.Status.Label(),
		Methods:     methods,
	})
}

// ownedOrder loads orderID and checks it belongs to client. Orders of other
// clients, and orders with no owner, answer 404 like a missing order.
func (h *OrdersHandler) ownedOrder(ctx context.Context, w http.ResponseWriter, client *domain.ClientIdentity, orderID string) (*domain.Order, domain.CheckoutPaymentStatus, bool) {
	order, paymentStatus, err := h.orders.Order(ctx, orderID)
	if err != nil {
		handleError(w, err)
		return nil, "", false
	}
	if order == nil || order.OwnerID() != client.ID {
		logger.FromContext(ctx, h.logger).Warn("order lookup by non-owner", zap.String("order_id", orderID), zap.String("client_id", client.ID))
		respondError(w, http.StatusNotFound, "not_found", "order not found")
		return nil, "", false
	}
	return order, paymentStatus, true
}

func (h *OrdersHandler) requireClient(w http.ResponseWriter, r *http.Request) (*domain.ClientIdentity, bool) {
	client, err := h.sessions.Get(r.Context(), getSessionID(r.Context()))
	if err != nil {
		logger.FromContext(r.Context(), h.logger).Error("session lookup failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return nil, false
	}
	if client == nil {
		respondError(w, http.StatusUnauthorized, "unauthorized", "log in to see your orders")
		return nil, false
	}
	return client, true
}
