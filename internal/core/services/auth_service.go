package services

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/million_tracker/internal/apperrors"
	portssvc "github.com/SscSPs/million_tracker/internal/core/ports/services"
	"github.com/SscSPs/million_tracker/internal/platform/config"
	"github.com/SscSPs/million_tracker/internal/utils"
)

// authService implements portssvc.AuthSvc for the single dashboard owner.
type authService struct {
	BaseService
	username     string
	passwordHash string
	secret       string
	issuer       string
	ttl          time.Duration
	now          func() time.Time
}

// NewAuthService creates an auth service from the owner credentials in cfg.
func NewAuthService(cfg *config.Config) portssvc.AuthSvc {
	return &authService{
		username:     cfg.DashboardUsername,
		passwordHash: cfg.DashboardPasswordHash,
		secret:       cfg.JWTSecret,
		issuer:       cfg.JWTIssuer,
		ttl:          cfg.JWTExpiryDuration,
		now:          time.Now,
	}
}

var _ portssvc.AuthSvc = (*authService)(nil)

func (s *authService) Enabled() bool { return s.passwordHash != "" }

// Login issues an access token when username and password match the owner.
func (s *authService) Login(ctx context.Context, username, password string) (string, time.Time, error) {
	if !s.Enabled() {
		return "", time.Time{}, fmt.Errorf("%w: authentication is disabled", apperrors.ErrNotConfigured)
	}

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1
	// The hash is always checked so a wrong username costs the same as a wrong password.
	passOK := utils.CheckPasswordHash(password, s.passwordHash)
	if !userOK || !passOK {
		s.LogWarn(ctx, "Login rejected", slog.String("username", username))
		return "", time.Time{}, fmt.Errorf("%w: invalid username or password", apperrors.ErrUnauthorized)
	}

	token, expiresAt, err := utils.IssueToken(s.username, s.secret, s.issuer, s.now(), s.ttl)
	if err != nil {
		s.LogError(ctx, err, "Failed to sign access token")
		return "", time.Time{}, fmt.Errorf("failed to sign access token: %w", err)
	}
	s.LogInfo(ctx, "Owner logged in", slog.Time("expires_at", expiresAt))
	return token, expiresAt, nil
}
