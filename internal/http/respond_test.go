package http

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/brazcamiseteria/storefront/internal/backend"
	"github.com/brazcamiseteria/storefront/internal/domain"
	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
)

func TestHandleError_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"no size", domain.ErrNoSizeSelected, http.StatusBadRequest, "NO_SIZE_SELECTED"},
		{"invalid quantity", domain.ErrInvalidQuantity, http.StatusBadRequest, "INVALID_QUANTITY"},
		{"duplicate", domain.ErrDuplicateConfiguration, http.StatusConflict, "DUPLICATE_CONFIGURATION"},
		{"precondition", domain.ErrPreconditionFailed, http.StatusPreconditionFailed, "PRECONDITION_FAILED"},
		{"submission in progress", domain.ErrSubmissionInProgress, http.StatusConflict, "SUBMISSION_IN_PROGRESS"},
		{"submission failed", &domain.Error{Code: domain.CodeOrderSubmissionFailed, Message: "x"}, http.StatusBadGateway, "ORDER_SUBMISSION_FAILED"},
		{"submission with open breaker", &domain.Error{Code: domain.CodeOrderSubmissionFailed, Err: gobreaker.ErrOpenState}, http.StatusServiceUnavailable, "ORDER_SUBMISSION_FAILED"},
		{"wrapped domain error", fmt.Errorf("add: %w", domain.ErrDuplicateConfiguration), http.StatusConflict, "DUPLICATE_CONFIGURATION"},
		{"breaker open", gobreaker.ErrOpenState, http.StatusServiceUnavailable, "service_unavailable"},
		{"too many requests", gobreaker.ErrTooManyRequests, http.StatusServiceUnavailable, "service_unavailable"},
		{"backend not found", &backend.APIError{StatusCode: 404}, http.StatusNotFound, "not_found"},
		{"backend 4xx", &backend.APIError{StatusCode: 422, Message: "invalid"}, 422, "backend_rejected"},
		{"backend 5xx", &backend.APIError{StatusCode: 503}, http.StatusBadGateway, "backend_error"},
		{"deadline", context.DeadlineExceeded, http.StatusGatewayTimeout, "timeout"},
		{"no client in login", backend.ErrNoClientInLogin, http.StatusBadGateway, "backend_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handleError(rec, tt.err)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.code, decode[ErrorResponse](t, rec).Code)
		})
	}
}
