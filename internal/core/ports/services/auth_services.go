package services

import (
	"context"
	"time"
)

// AuthSvc authenticates the dashboard owner.
type AuthSvc interface {
	// Enabled reports whether credentials are configured; when false the API is open.
	Enabled() bool

	// Login checks the credentials and issues a signed access token.
	Login(ctx context.Context, username, password string) (token string, expiresAt time.Time, err error)
}
