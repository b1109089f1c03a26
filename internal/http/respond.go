package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/brazcamiseteria/storefront/internal/backend"
	"github.com/brazcamiseteria/storefront/internal/catalog"
	"github.com/brazcamiseteria/storefront/internal/domain"
	"github.com/brazcamiseteria/storefront/pkg/circuitbreaker"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		zap.L().Error("failed to encode response", zap.Error(err))
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error:   message,
		Code:    code,
		Details: "",
	})
}

// handleError maps service and backend errors to HTTP responses.
func handleError(w http.ResponseWriter, err error) {
	var derr *domain.Error
	if errors.As(err, &derr) {
		respondError(w, domainStatus(derr), string(derr.Code), derr.Message)
		return
	}

	if circuitbreaker.IsOpen(err) {
		respondError(w, http.StatusServiceUnavailable, "service_unavailable", "backend temporarily unavailable")
		return
	}
	if errors.Is(err, catalog.ErrProductNotFound) || backend.IsNotFound(err) {
		respondError(w, http.StatusNotFound, "not_found", "resource not found")
		return
	}
	if errors.Is(err, context.DeadlineExceeded) {
		respondError(w, http.StatusGatewayTimeout, "timeout", "backend did not answer in time")
		return
	}

	if errors.Is(err, backend.ErrNoClientInLogin) {
		respondError(w, http.StatusBadGateway, "backend_error", "backend returned no client")
		return
	}

	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		if apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
			respondError(w, apiErr.StatusCode, "backend_rejected", apiErr.Message)
			return
		}
		respondError(w, http.StatusBadGateway, "backend_error", "backend request failed")
		return
	}

	respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
}

func domainStatus(err *domain.Error) int {
	switch err.Code {
	case domain.CodeNoSizeSelected, domain.CodeInvalidQuantity:
		return http.StatusBadRequest
	case domain.CodeDuplicateConfiguration, domain.CodeSubmissionInProgress:
		return http.StatusConflict
	case domain.CodePreconditionFailed:
		return http.StatusPreconditionFailed
	case domain.CodeOrderSubmissionFailed:
		if circuitbreaker.IsOpen(err.Err) {
			return http.StatusServiceUnavailable
		}
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func money(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}
