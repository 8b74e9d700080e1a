package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/amontenegro/gadgethub-backend/config"
	"github.com/amontenegro/gadgethub-backend/pkg/logger"
	"github.com/amontenegro/gadgethub-backend/pkg/redis"
	"github.com/amontenegro/gadgethub-backend/pkg/util"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAuthNotConfigured  = errors.New("admin credentials not configured")
)

const adminRole = "admin"

type AuthService interface {
	Login(email, password string) (string, error)
	Logout(ctx context.Context, token string) error
}

// authService verifies the single admin identity configured through the
// environment. There is no user table; the storefront has one owner.
type authService struct {
	cfg *config.Config
}

func NewAuthService(cfg *config.Config) AuthService {
	return &authService{cfg: cfg}
}

func (s *authService) Login(email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	logger.Info("Admin login attempt", map[string]interface{}{
		"email": email,
	})

	if s.cfg.Admin.Email == "" || s.cfg.Admin.PasswordHash == "" {
		logger.Error("Admin login impossible: credentials not configured", ErrAuthNotConfigured, nil)
		return "", ErrAuthNotConfigured
	}

	if email != strings.ToLower(s.cfg.Admin.Email) {
		logger.Warn("Admin login failed: unknown email", map[string]interface{}{
			"email": email,
		})
		return "", ErrInvalidCredentials
	}

	if !util.VerifyPassword(s.cfg.Admin.PasswordHash, password) {
		logger.Warn("Admin login failed: wrong password", map[string]interface{}{
			"email": email,
		})
		return "", ErrInvalidCredentials
	}

	token, err := util.GenerateToken(email, adminRole, s.cfg.JWT.Secret, s.cfg.JWT.TokenExpiry)
	if err != nil {
		logger.Error("Failed to generate admin token", err, map[string]interface{}{
			"email": email,
		})
		return "", err
	}

	logger.Info("Admin logged in", map[string]interface{}{
		"email": email,
	})
	return token, nil
}

// Logout blacklists the token for its remaining lifetime. Without Redis the
// call succeeds anyway and the token simply expires on schedule.
func (s *authService) Logout(ctx context.Context, token string) error {
	claims, err := util.ValidateToken(token, s.cfg.JWT.Secret)
	if err != nil {
		// Already expired or malformed: nothing to revoke.
		logger.Debug("Logout with unusable token", map[string]interface{}{
			"error": err.Error(),
		})
		return nil
	}

	remaining := time.Until(claims.ExpiresAt.Time)
	if remaining <= 0 {
		return nil
	}

	if err := redis.BlacklistToken(ctx, token, remaining); err != nil {
		logger.Error("Failed to blacklist token", err, nil)
		return err
	}

	logger.Info("Admin logged out", map[string]interface{}{
		"email": claims.Email,
	})
	return nil
}
