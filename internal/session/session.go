package session

import (
	"context"

	"github.com/brazcamiseteria/storefront/internal/domain"
)

// Store keeps the logged-in client of each browsing session.
// Get returns nil and no error when the session has no client.
type Store interface {
	Get(ctx context.Context, sessionID string) (*domain.ClientIdentity, error)
	Set(ctx context.Context, sessionID string, client *domain.ClientIdentity) error
	Clear(ctx context.Context, sessionID string) error
}
