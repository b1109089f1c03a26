package backend

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/brazcamiseteria/storefront/internal/domain"
	"github.com/shopspring/decimal"
)

type orderHeader struct {
	ClientID      string               `json:"clientId"`
	OrderStatus   domain.OrderStatus   `json:"orderStatus"`
	PaymentStatus domain.PaymentStatus `json:"paymentStatus"`
	Observation   string               `json:"observation"`
	Total         json.Number          `json:"total"`
}

type orderItem struct {
	ProductID string      `json:"productId"`
	SizeID    string      `json:"sizeId"`
	Quantity  int         `json:"quantity"`
	Total     json.Number `json:"total"`
	Thumbnail string      `json:"thumbnail"`
	Name      string      `json:"name"`
	Unity     json.Number `json:"unity"`
}

type createOrderRequest struct {
	Order orderHeader `json:"order"`
	Items []orderItem `json:"items"`
}

type createOrderResponse struct {
	Message string `json:"message"`
	URL     string `json:"url"`
	OrderID string `json:"orderId"`
}

// money renders an amount as a JSON number without going through float64.
func money(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

func newCreateOrderRequest(req domain.OrderRequest) createOrderRequest {
	items := make([]orderItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, orderItem{
			ProductID: item.ProductID,
			SizeID:    item.SizeID,
			Quantity:  item.Quantity,
			Total:     money(item.LineTotal),
			Thumbnail: item.ThumbnailURL,
			Name:      item.ProductName,
			Unity:     money(item.UnitPrice),
		})
	}
	return createOrderRequest{
		Order: orderHeader{
			ClientID:      req.ClientID,
			OrderStatus:   domain.OrderStatusPayment,
			PaymentStatus: domain.PaymentStatusWaiting,
			Observation:   req.Observation,
			Total:         money(req.Total),
		},
		Items: items,
	}
}

// CreateOrder submits a new order. New orders always start awaiting payment.
func (c *Client) CreateOrder(ctx context.Context, req domain.OrderRequest) (*domain.OrderCreated, error) {
	var resp createOrderResponse
	if err := c.post(ctx, "create_order", "/order", newCreateOrderRequest(req), &resp); err != nil {
		return nil, err
	}

	orderID := resp.OrderID
	if orderID == "" {
		orderID = orderIDFromURL(resp.URL)
	}
	return &domain.OrderCreated{
		OrderID:     orderID,
		Message:     resp.Message,
		RedirectURL: resp.URL,
	}, nil
}

// orderIDFromURL extracts the "order" query parameter of a redirect target.
func orderIDFromURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Query().Get("order")
}

func (c *Client) ClientOrders(ctx context.Context, clientID string) ([]domain.Order, error) {
	var orders []domain.Order
	if err := c.get(ctx, "client_orders", "/orders/client/"+url.PathEscape(clientID), &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

type orderResponse struct {
	Order         *domain.Order                `json:"order"`
	PaymentStatus domain.CheckoutPaymentStatus `json:"paymentStatus"`
}

// Order returns an order with the payment provider status of its checkout.
func (c *Client) Order(ctx context.Context, orderID string) (*domain.Order, domain.CheckoutPaymentStatus, error) {
	var resp orderResponse
	if err := c.get(ctx, "order", "/order/"+url.PathEscape(orderID), &resp); err != nil {
		return nil, "", err
	}
	return resp.Order, resp.PaymentStatus, nil
}

func (c *Client) PaymentDetails(ctx context.Context, checkoutID, orderID string) (*domain.PaymentDetails, error) {
	var details domain.PaymentDetails
	path := "/order/payment/" + url.PathEscape(checkoutID) + "/" + url.PathEscape(orderID)
	if err := c.get(ctx, "payment_details", path, &details); err != nil {
		return nil, err
	}
	return &details, nil
}
