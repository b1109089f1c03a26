package checkout

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/brazcamiseteria/storefront/internal/domain"
	"github.com/brazcamiseteria/storefront/internal/events"
	"github.com/brazcamiseteria/storefront/internal/metrics"
	"github.com/brazcamiseteria/storefront/pkg/logger"
	"go.uber.org/zap"
)

// OrderCreator is the order-creation endpoint of the backend.
type OrderCreator interface {
	CreateOrder(ctx context.Context, req domain.OrderRequest) (*domain.OrderCreated, error)
}

// Cart is what checkout needs from a cart store.
type Cart interface {
	ID() string
	View() domain.CartView
	Remove(id string)
	IsEmpty() bool
}

type Result struct {
	OrderID     string `json:"order_id"`
	Message     string `json:"message"`
	RedirectURL string `json:"redirect_url"`
}

// Submitter turns a cart into an order. At most one submission per cart is
// in flight; a second submit for the same cart is rejected with
// ErrSubmissionInProgress while the first one runs.
type Submitter struct {
	orders    OrderCreator
	publisher events.Publisher
	metrics   *metrics.Metrics
	logger    *zap.Logger
	now       func() time.Time

	mu       sync.Mutex
	inFlight map[string]struct{}
}

func NewSubmitter(orders OrderCreator, publisher events.Publisher, m *metrics.Metrics, logger *zap.Logger) *Submitter {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &Submitter{
		orders:    orders,
		publisher: publisher,
		metrics:   m,
		logger:    logger,
		now:       time.Now,
		inFlight:  make(map[string]struct{}),
	}
}

// CanSubmit reports whether the submit action should be enabled.
func (s *Submitter) CanSubmit(c Cart, client *domain.ClientIdentity) bool {
	return client != nil && client.ID != "" && !c.IsEmpty() && !s.InFlight(c.ID())
}

// InFlight reports whether a submission for cartID is running.
func (s *Submitter) InFlight(cartID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.inFlight[cartID]
	return ok
}

// Submit sends the cart as an order for client. The cart is emptied only
// after the backend has accepted the order; on failure it is left as is.
func (s *Submitter) Submit(ctx context.Context, c Cart, client *domain.ClientIdentity, observation string) (*Result, error) {
	if client == nil || client.ID == "" || c.IsEmpty() {
		s.metrics.Checkout("precondition_failed")
		return nil, domain.ErrPreconditionFailed
	}

	if !s.acquire(c.ID()) {
		logger.FromContext(ctx, s.logger).Info("checkout rejected, submission in progress", zap.String("cart_id", c.ID()))
		s.metrics.Checkout("in_progress")
		return nil, domain.ErrSubmissionInProgress
	}
	defer s.release(c.ID())

	return s.submit(ctx, c, client, observation)
}

func (s *Submitter) submit(ctx context.Context, c Cart, client *domain.ClientIdentity, observation string) (*Result, error) {
	log := logger.FromContext(ctx, s.logger).With(zap.String("cart_id", c.ID()), zap.String("client_id", client.ID))

	view := c.View()
	if len(view.Items) == 0 {
		s.metrics.Checkout("precondition_failed")
		return nil, domain.ErrPreconditionFailed
	}
	req := domain.NewOrderRequest(client.ID, observation, view.Total, view.Items)

	// An order may be created server-side even if the caller goes away, so
	// the call is not tied to the request's cancellation.
	created, err := s.orders.CreateOrder(context.WithoutCancel(ctx), req)
	if err != nil {
		log.Warn("order submission failed", zap.Error(err))
		s.metrics.Checkout("failed")
		return nil, submissionError(err)
	}

	// Only the submitted items are removed: anything added while the call
	// was running was not part of the order.
	for _, item := range view.Items {
		c.Remove(item.ID)
	}
	s.metrics.Checkout("success")
	log.Info("order created",
		zap.String("order_id", created.OrderID),
		zap.String("total", view.Total.String()),
		zap.Int("items", len(view.Items)))

	if err := s.publisher.PublishOrderPlaced(ctx, orderPlaced(created, req, s.now())); err != nil {
		log.Error("failed to publish order placed event", zap.String("order_id", created.OrderID), zap.Error(err))
	}

	return &Result{
		OrderID:     created.OrderID,
		Message:     created.Message,
		RedirectURL: created.RedirectURL,
	}, nil
}

// acquire marks cartID as in flight. It returns false if it already was.
func (s *Submitter) acquire(cartID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.inFlight[cartID]; ok {
		return false
	}
	s.inFlight[cartID] = struct{}{}
	return true
}

func (s *Submitter) release(cartID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, cartID)
}

type userMessager interface {
	UserMessage() string
}

func submissionError(err error) error {
	msg := domain.ErrOrderSubmissionFailed.Message
	var um userMessager
	if errors.As(err, &um) && um.UserMessage() != "" {
		msg = um.UserMessage()
	}
	return &domain.Error{
		Code:    domain.CodeOrderSubmissionFailed,
		Message: msg,
		Err:     err,
	}
}

func orderPlaced(created *domain.OrderCreated, req domain.OrderRequest, at time.Time) events.OrderPlaced {
	items := make([]events.OrderPlacedItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, events.OrderPlacedItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			SizeID:      item.SizeID,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			LineTotal:   item.LineTotal,
		})
	}
	return events.OrderPlaced{
		OrderID:  created.OrderID,
		ClientID: req.ClientID,
		Total:    req.Total,
		Items:    items,
		PlacedAt: at,
	}
}
