package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/brazcamiseteria/storefront/internal/cart"
	"github.com/brazcamiseteria/storefront/internal/domain"
	"github.com/brazcamiseteria/storefront/internal/session"
	"github.com/brazcamiseteria/storefront/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Authenticator is the backend side of login and sign-up.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*domain.ClientIdentity, string, error)
	Register(ctx context.Context, reg domain.Registration) (string, error)
}

type SessionHandler struct {
	auth     Authenticator
	sessions session.Store
	carts    *cart.Registry
	cookie   SessionCookie
	timeout  time.Duration
	logger   *zap.Logger
}

func NewSessionHandler(auth Authenticator, sessions session.Store, carts *cart.Registry, cookie SessionCookie, timeout time.Duration, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{
		auth:     auth,
		sessions: sessions,
		carts:    carts,
		cookie:   cookie,
		timeout:  timeout,
		logger:   logger,
	}
}

type LoginRequestDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponseDTO struct {
	Message string                 `json:"message"`
	Client  *domain.ClientIdentity `json:"client"`
}

type MessageResponseDTO struct {
	Message string `json:"message"`
}

// GET /api/v1/session
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	client, err := h.sessions.Get(r.Context(), getSessionID(r.Context()))
	if err != nil {
		logger.FromContext(r.Context(), h.logger).Error("session lookup failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}
	if client == nil {
		respondError(w, http.StatusNotFound, "no_session", "no client logged in")
		return
	}
	respondJSON(w, http.StatusOK, client)
}

// POST /api/v1/session/login
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req LoginRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "missing_credentials", "email and password are required")
		return
	}

	client, message, err := h.auth.Login(ctx, req.Email, req.Password)
	if err != nil {
		handleError(w, err)
		return
	}

	// A logged-in session never keeps an id the browser chose before login.
	oldID := getSessionID(r.Context())
	newID := uuid.NewString()
	if err := h.sessions.Set(r.Context(), newID, client); err != nil {
		logger.FromContext(r.Context(), h.logger).Error("failed to store session", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}
	if err := h.sessions.Clear(r.Context(), oldID); err != nil {
		logger.FromContext(r.Context(), h.logger).Warn("failed to clear previous session", zap.Error(err))
	}
	h.carts.Rekey(oldID, newID)
	h.cookie.set(w, newID)

	respondJSON(w, http.StatusOK, LoginResponseDTO{Message: message, Client: client})
}

// POST /api/v1/session/register
func (h *SessionHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var reg domain.Registration
	if err := json.NewDecoder(r.Body).Decode(&reg); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if strings.TrimSpace(reg.Email) == "" || reg.Password == "" || strings.TrimSpace(reg.Name) == "" {
		respondError(w, http.StatusBadRequest, "missing_fields", "name, email and password are required")
		return
	}

	message, err := h.auth.Register(ctx, reg)
	if err != nil {
		handleError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, MessageResponseDTO{Message: message})
}

// DELETE /api/v1/session
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Clear(r.Context(), getSessionID(r.Context())); err != nil {
		logger.FromContext(r.Context(), h.logger).Error("failed to clear session", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
