package backend

import (
	"context"
	"errors"

	"github.com/brazcamiseteria/storefront/internal/domain"
)

var ErrNoClientInLogin = errors.New("login response carried no client")

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Message string                 `json:"message"`
	Client  *domain.ClientIdentity `json:"client"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Login checks the credentials and returns the client record to keep in the session.
func (c *Client) Login(ctx context.Context, email, password string) (*domain.ClientIdentity, string, error) {
	var resp loginResponse
	if err := c.post(ctx, "login", "/login", loginRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, "", err
	}
	if resp.Client == nil || resp.Client.ID == "" {
		return nil, "", ErrNoClientInLogin
	}
	return resp.Client, resp.Message, nil
}

// Register creates a client account. It does not log the client in.
func (c *Client) Register(ctx context.Context, reg domain.Registration) (string, error) {
	var resp messageResponse
	if err := c.post(ctx, "register", "/clients", reg, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}
