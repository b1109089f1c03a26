package events

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

const EventTypeOrderPlaced = "order_placed"

type OrderPlacedItem struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	SizeID      string          `json:"size_id"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// OrderPlaced is emitted once the backend has accepted an order.
type OrderPlaced struct {
	OrderID  string            `json:"order_id"`
	ClientID string            `json:"client_id"`
	Total    decimal.Decimal   `json:"total"`
	Items    []OrderPlacedItem `json:"items"`
	PlacedAt time.Time         `json:"placed_at"`
}

type Publisher interface {
	PublishOrderPlaced(ctx context.Context, event OrderPlaced) error
	Close() error
}

// Nop drops every event. Used when no brokers are configured.
type Nop struct{}

func (Nop) PublishOrderPlaced(context.Context, OrderPlaced) error {
	return nil
}

func (Nop) Close() error {
	return nil
}
