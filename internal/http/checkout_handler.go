package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/brazcamiseteria/storefront/internal/cart"
	"github.com/brazcamiseteria/storefront/internal/checkout"
	"github.com/brazcamiseteria/storefront/internal/domain"
	"github.com/brazcamiseteria/storefront/internal/session"
	"github.com/brazcamiseteria/storefront/pkg/logger"
	"go.uber.org/zap"
)

// OrderSubmitter places the cart as an order.
type OrderSubmitter interface {
	Submit(ctx context.Context, c checkout.Cart, client *domain.ClientIdentity, observation string) (*checkout.Result, error)
	CanSubmit(c checkout.Cart, client *domain.ClientIdentity) bool
}

type CheckoutHandler struct {
	submitter OrderSubmitter
	carts     *cart.Registry
	sessions  session.Store
	logger    *zap.Logger
}

func NewCheckoutHandler(submitter OrderSubmitter, carts *cart.Registry, sessions session.Store, logger *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		submitter: submitter,
		carts:     carts,
		sessions:  sessions,
		logger:    logger,
	}
}

type CheckoutRequestDTO struct {
	Observation string `json:"observation"`
}

type CheckoutSummaryDTO struct {
	Items     []LineItemDTO          `json:"items"`
	Total     json.Number            `json:"total"`
	Client    *domain.ClientIdentity `json:"client"`
	CanSubmit bool                   `json:"can_submit"`
}

// GET /api/v1/checkout
func (h *CheckoutHandler) GetCheckout(w http.ResponseWriter, r *http.Request) {
	client, ok := h.currentClient(w, r)
	if !ok {
		return
	}

	store := h.carts.Get(getSessionID(r.Context()))
	view := convertCartView(store.View())
	respondJSON(w, http.StatusOK, CheckoutSummaryDTO{
		Items:     view.Items,
		Total:     view.Total,
		Client:    client,
		CanSubmit: h.submitter.CanSubmit(store, client),
	})
}

// POST /api/v1/checkout
func (h *CheckoutHandler) SubmitOrder(w http.ResponseWriter, r *http.Request) {
	client, ok := h.currentClient(w, r)
	if !ok {
		return
	}

	var req CheckoutRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	store := h.carts.Get(getSessionID(r.Context()))
	res, err := h.submitter.Submit(r.Context(), store, client, req.Observation)
	if err != nil {
		handleError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, res)
}

// currentClient loads the logged-in client, which may be nil. It writes the
// error response itself and returns false when the lookup fails.
func (h *CheckoutHandler) currentClient(w http.ResponseWriter, r *http.Request) (*domain.ClientIdentity, bool) {
	client, err := h.sessions.Get(r.Context(), getSessionID(r.Context()))
	if err != nil {
		logger.FromContext(r.Context(), h.logger).Error("session lookup failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return nil, false
	}
	return client, true
}
