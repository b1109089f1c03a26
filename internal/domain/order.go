package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the production stage of an order. The backend owns every
// transition; the storefront only displays it.
type OrderStatus string

const (
	OrderStatusPayment    OrderStatus = "payment"
	OrderStatusDesign     OrderStatus = "design"
	OrderStatusProduction OrderStatus = "production"
	OrderStatusPacking    OrderStatus = "packing"
	OrderStatusShipping   OrderStatus = "shipping"
	OrderStatusFinish     OrderStatus = "finish"
)

func ParseOrderStatus(s string) (OrderStatus, error) {
	switch st := OrderStatus(s); st {
	case OrderStatusPayment, OrderStatusDesign, OrderStatusProduction,
		OrderStatusPacking, OrderStatusShipping, OrderStatusFinish:
		return st, nil
	}
	return "", fmt.Errorf("unknown order status %q", s)
}

func (s OrderStatus) Label() string {
	switch s {
	case OrderStatusPayment:
		return "Processando Pagamento"
	case OrderStatusDesign:
		return "Criando o Design"
	case OrderStatusProduction:
		return "Produzindo"
	case OrderStatusPacking:
		return "Embalando o Pedido"
	case OrderStatusShipping:
		return "Pedido Enviado"
	case OrderStatusFinish:
		return "Pedido Finalizado"
	default:
		return unknownLabel
	}
}

// IsShipped reports whether shipping information is meaningful for the order.
func (s OrderStatus) IsShipped() bool {
	return s == OrderStatusShipping
}

// PaymentStatus is the payment state the backend records on an order.
type PaymentStatus string

const (
	PaymentStatusWaiting PaymentStatus = "waiting"
	PaymentStatusPaidOut PaymentStatus = "paidOut"
	PaymentStatusRefused PaymentStatus = "refused"
	PaymentStatusCancel  PaymentStatus = "cancel"
)

func ParsePaymentStatus(s string) (PaymentStatus, error) {
	switch st := PaymentStatus(s); st {
	case PaymentStatusWaiting, PaymentStatusPaidOut, PaymentStatusRefused, PaymentStatusCancel:
		return st, nil
	}
	return "", fmt.Errorf("unknown payment status %q", s)
}

func (s PaymentStatus) Label() string {
	switch s {
	case PaymentStatusWaiting:
		return "Aguardando o pagamento..."
	case PaymentStatusPaidOut:
		return "Pagamento confirmado"
	case PaymentStatusRefused:
		return "Pagamento recusado"
	case PaymentStatusCancel:
		return "Pagamento cancelado"
	default:
		return unknownLabel
	}
}

// CheckoutPaymentStatus is the status reported by the payment provider for a checkout session.
type CheckoutPaymentStatus string

const (
	CheckoutPaymentPaid              CheckoutPaymentStatus = "paid"
	CheckoutPaymentUnpaid            CheckoutPaymentStatus = "unpaid"
	CheckoutPaymentNoPaymentRequired CheckoutPaymentStatus = "no_payment_required"
)

func ParseCheckoutPaymentStatus(s string) (CheckoutPaymentStatus, error) {
	switch st := CheckoutPaymentStatus(s); st {
	case CheckoutPaymentPaid, CheckoutPaymentUnpaid, CheckoutPaymentNoPaymentRequired:
		return st, nil
	}
	return "", fmt.Errorf("unknown checkout payment status %q", s)
}

func (s CheckoutPaymentStatus) Label() string {
	switch s {
	case CheckoutPaymentPaid:
		return "Pago"
	case CheckoutPaymentUnpaid:
		return "Não pago"
	case CheckoutPaymentNoPaymentRequired:
		return "Não requerido"
	default:
		return unknownLabel
	}
}

const unknownLabel = "Desconhecido"

// OrderRequestItem is a line item reduced to what the order endpoint needs.
type OrderRequestItem struct {
	ProductID    string
	SizeID       string
	Quantity     int
	LineTotal    decimal.Decimal
	ThumbnailURL string
	ProductName  string
	UnitPrice    decimal.Decimal
}

// OrderRequest is the outbound order-creation payload.
type OrderRequest struct {
	ClientID    string
	Observation string
	Total       decimal.Decimal
	Items       []OrderRequestItem
}

// NewOrderRequest reduces cart items to an order request. total is passed in
// rather than recomputed so it always matches the cart it came from.
func NewOrderRequest(clientID, observation string, total decimal.Decimal, items []LineItem) OrderRequest {
	reqItems := make([]OrderRequestItem, 0, len(items))
	for _, item := range items {
		reqItems = append(reqItems, OrderRequestItem{
			ProductID:    item.ProductID,
			SizeID:       item.SizeID,
			Quantity:     item.Quantity,
			LineTotal:    item.LineTotal,
			ThumbnailURL: item.ThumbnailURL,
			ProductName:  item.ProductName,
			UnitPrice:    item.UnitPrice,
		})
	}
	return OrderRequest{
		ClientID:    clientID,
		Observation: observation,
		Total:       total,
		Items:       reqItems,
	}
}

// OrderCreated is the backend acknowledgement of a new order.
type OrderCreated struct {
	OrderID     string
	Message     string
	RedirectURL string
}

type OrderItem struct {
	ID       string          `json:"id"`
	Quantity int             `json:"quantity"`
	Product  Product         `json:"product"`
	Size     Size            `json:"size"`
	Total    decimal.Decimal `json:"total"`
}

// Order is an order as the backend reports it for tracking.
type Order struct {
	ID                  string          `json:"id"`
	CheckoutID          string          `json:"checkoutId,omitempty"`
	ClientID            string          `json:"clientId,omitempty"`
	Observation         string          `json:"observation"`
	OrderStatus         OrderStatus     `json:"orderStatus"`
	PaymentStatus       PaymentStatus   `json:"paymentStatus"`
	Client              *ClientIdentity `json:"client,omitempty"`
	Items               []OrderItem     `json:"OrderItems"`
	Total               decimal.Decimal `json:"total"`
	CreatedAt           time.Time       `json:"createdAt"`
	ShippingCode        string          `json:"shippingCode,omitempty"`
	ShippingInformation string          `json:"shippingInformation,omitempty"`
}

// OwnerID is the id of the client the order belongs to, or "" when the
// backend did not say.
func (o Order) OwnerID() string {
	if o.Client != nil && o.Client.ID != "" {
		return o.Client.ID
	}
	return o.ClientID
}

// PaymentDetails describes how a pending order can still be paid.
type PaymentDetails struct {
	Status  CheckoutPaymentStatus `json:"status"`
	Methods []string              `json:"method"`
}
