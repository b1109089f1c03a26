package checkout

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/brazcamiseteria/storefront/internal/backend"
	"github.com/brazcamiseteria/storefront/internal/cart"
	"github.com/brazcamiseteria/storefront/internal/domain"
	"github.com/brazcamiseteria/storefront/internal/events"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeOrders struct {
	calls   atomic.Int32
	release chan struct{}
	entered chan struct{}
	err     error

	mu   sync.Mutex
	last domain.OrderRequest
}

func (f *fakeOrders) CreateOrder(ctx context.Context, req domain.OrderRequest) (*domain.OrderCreated, error) {
	f.calls.Add(1)
	f.mu.Lock()
	f.last = req
	f.mu.Unlock()
	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.release != nil {
		<-f.release
	}
	if f.err != nil {
		return nil, f.err
	}
	return &domain.OrderCreated{
		OrderID:     "order-42",
		Message:     "Pedido criado",
		RedirectURL: "https://pay.example.com/checkout?order=order-42",
	}, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.OrderPlaced
	err    error
}

func (p *recordingPublisher) PublishOrderPlaced(_ context.Context, e events.OrderPlaced) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func client() *domain.ClientIdentity {
	return &domain.ClientIdentity{ID: "client-1", Name: "Maria"}
}

func item(id, name, size string, unit int64, qty int) domain.LineItem {
	price := decimal.NewFromInt(unit)
	return domain.LineItem{
		ID:          id,
		ProductID:   "prod-" + name,
		ProductName: name,
		SizeID:      "size-" + size,
		SizeLabel:   size,
		Quantity:    qty,
		UnitPrice:   price,
		LineTotal:   price.Mul(decimal.NewFromInt(int64(qty))),
	}
}

func filledCart(t *testing.T) *cart.Store {
	t.Helper()
	s := cart.NewStore("session-1")
	require.NoError(t, s.Add(item("a", "Camisa A", "M", 50, 2)))
	require.NoError(t, s.Add(item("b", "Camisa B", "G", 30, 1)))
	return s
}

func TestSubmit_Success(t *testing.T) {
	orders := &fakeOrders{}
	pub := &recordingPublisher{}
	sub := NewSubmitter(orders, pub, nil, zap.NewNop())
	store := filledCart(t)

	res, err := sub.Submit(context.Background(), store, client(), "entregar à tarde")
	require.NoError(t, err)

	assert.Equal(t, "order-42", res.OrderID)
	assert.Equal(t, "https://pay.example.com/checkout?order=order-42", res.RedirectURL)
	assert.True(t, store.IsEmpty())
	assert.True(t, store.Total().IsZero())

	assert.Equal(t, int32(1), orders.calls.Load())
	assert.Equal(t, "client-1", orders.last.ClientID)
	assert.Equal(t, "entregar à tarde", orders.last.Observation)
	assert.True(t, decimal.NewFromInt(130).Equal(orders.last.Total))
	require.Len(t, orders.last.Items, 2)

	require.Len(t, pub.events, 1)
	assert.Equal(t, "order-42", pub.events[0].OrderID)
	assert.Len(t, pub.events[0].Items, 2)
}

func TestSubmit_EmptyCartIsPreconditionFailure(t *testing.T) {
	orders := &fakeOrders{}
	sub := NewSubmitter(orders, nil, nil, zap.NewNop())

	_, err := sub.Submit(context.Background(), cart.NewStore("s"), client(), "")
	assert.ErrorIs(t, err, domain.ErrPreconditionFailed)
	assert.Equal(t, int32(0), orders.calls.Load())
}

func TestSubmit_NoClientIsPreconditionFailure(t *testing.T) {
	orders := &fakeOrders{}
	sub := NewSubmitter(orders, nil, nil, zap.NewNop())
	store := filledCart(t)

	_, err := sub.Submit(context.Background(), store, nil, "")
	assert.ErrorIs(t, err, domain.ErrPreconditionFailed)

	_, err = sub.Submit(context.Background(), store, &domain.ClientIdentity{}, "")
	assert.ErrorIs(t, err, domain.ErrPreconditionFailed)

	assert.Equal(t, int32(0), orders.calls.Load())
	assert.Equal(t, 2, store.Len())
}

func TestSubmit_FailureKeepsCart(t *testing.T) {
	orders := &fakeOrders{err: errors.New("connection refused")}
	pub := &recordingPublisher{}
	sub := NewSubmitter(orders, pub, nil, zap.NewNop())
	store := filledCart(t)
	before := store.Items()

	_, err := sub.Submit(context.Background(), store, client(), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrOrderSubmissionFailed)

	var derr *domain.Error
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, domain.ErrOrderSubmissionFailed.Message, derr.Message)

	assert.Equal(t, before, store.Items())
	assert.True(t, decimal.NewFromInt(130).Equal(store.Total()))
	assert.Empty(t, pub.events)
}

func TestSubmit_FailureCarriesBackendMessage(t *testing.T) {
	orders := &fakeOrders{err: &backend.APIError{StatusCode: 422, Message: "Produto indisponível"}}
	sub := NewSubmitter(orders, nil, nil, zap.NewNop())

	_, err := sub.Submit(context.Background(), filledCart(t), client(), "")

	var derr *domain.Error
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, domain.CodeOrderSubmissionFailed, derr.Code)
	assert.Equal(t, "Produto indisponível", derr.Message)
}

func TestSubmit_PublishFailureDoesNotFailCheckout(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("broker down")}
	sub := NewSubmitter(&fakeOrders{}, pub, nil, zap.NewNop())
	store := filledCart(t)

	res, err := sub.Submit(context.Background(), store, client(), "")
	require.NoError(t, err)
	assert.Equal(t, "order-42", res.OrderID)
	assert.True(t, store.IsEmpty())
}

func TestSubmit_SecondSubmitWhileInFlightIsRejected(t *testing.T) {
	orders := &fakeOrders{
		release: make(chan struct{}),
		entered: make(chan struct{}, 1),
	}
	sub := NewSubmitter(orders, nil, nil, zap.NewNop())
	store := filledCart(t)

	done := make(chan error, 1)
	go func() {
		_, err := sub.Submit(context.Background(), store, client(), "first note")
		done <- err
	}()
	<-orders.entered

	assert.True(t, sub.InFlight(store.ID()))
	assert.False(t, sub.CanSubmit(store, client()))

	res, err := sub.Submit(context.Background(), store, client(), "second note")
	assert.Nil(t, res)
	assert.ErrorIs(t, err, domain.ErrSubmissionInProgress)

	close(orders.release)
	require.NoError(t, <-done)

	assert.Equal(t, int32(1), orders.calls.Load())
	assert.Equal(t, "first note", orders.last.Observation)
	assert.False(t, sub.InFlight(store.ID()))
	assert.True(t, store.IsEmpty())
}

func TestSubmit_AfterFailureCanRetry(t *testing.T) {
	orders := &fakeOrders{err: errors.New("timeout")}
	sub := NewSubmitter(orders, nil, nil, zap.NewNop())
	store := filledCart(t)

	_, err := sub.Submit(context.Background(), store, client(), "")
	require.Error(t, err)
	assert.False(t, sub.InFlight(store.ID()))

	orders.err = nil
	res, err := sub.Submit(context.Background(), store, client(), "retry")
	require.NoError(t, err)
	assert.Equal(t, "order-42", res.OrderID)
	assert.Equal(t, int32(2), orders.calls.Load())
}

func TestSubmit_ItemsAddedDuringSubmissionSurvive(t *testing.T) {
	orders := &fakeOrders{
		release: make(chan struct{}),
		entered: make(chan struct{}, 1),
	}
	sub := NewSubmitter(orders, nil, nil, zap.NewNop())
	store := filledCart(t)

	done := make(chan error, 1)
	go func() {
		_, err := sub.Submit(context.Background(), store, client(), "")
		done <- err
	}()
	<-orders.entered

	require.NoError(t, store.Add(item("c", "Camisa C", "P", 40, 1)))
	close(orders.release)
	require.NoError(t, <-done)

	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "c", items[0].ID)
	assert.True(t, decimal.NewFromInt(40).Equal(store.Total()))
}

func TestCanSubmit(t *testing.T) {
	sub := NewSubmitter(&fakeOrders{}, nil, nil, zap.NewNop())

	assert.False(t, sub.CanSubmit(cart.NewStore("s"), client()))
	assert.False(t, sub.CanSubmit(filledCart(t), nil))
	assert.True(t, sub.CanSubmit(filledCart(t), client()))
}

func TestSubmit_SingleItemTotalAndRedirect(t *testing.T) {
	orders := &fakeOrders{}
	sub := NewSubmitter(orders, nil, nil, zap.NewNop())
	store := cart.NewStore("session-2")
	require.NoError(t, store.Add(item("a", "Camisa A", "M", 50, 2)))

	res, err := sub.Submit(context.Background(), store, client(), "")
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(100).Equal(orders.last.Total))
	require.Len(t, orders.last.Items, 1)
	assert.True(t, decimal.NewFromInt(100).Equal(orders.last.Items[0].LineTotal))
	assert.Equal(t, "https://pay.example.com/checkout?order=order-42", res.RedirectURL)
	assert.True(t, store.IsEmpty())
}

func TestSubmit_OutOfStockMessage(t *testing.T) {
	orders := &fakeOrders{err: &backend.APIError{StatusCode: 500, Message: "out of stock"}}
	sub := NewSubmitter(orders, nil, nil, zap.NewNop())
	store := filledCart(t)

	_, err := sub.Submit(context.Background(), store, client(), "")

	assert.ErrorIs(t, err, domain.ErrOrderSubmissionFailed)
	var derr *domain.Error
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "out of stock", derr.Message)
	assert.Equal(t, 2, store.Len())
}
