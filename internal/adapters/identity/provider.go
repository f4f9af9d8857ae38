// Package identity resolves the current user from the local configuration.
package identity

import (
	"context"

	"github.com/example/twodo/internal/config"
	"github.com/example/twodo/internal/ports/secondary"
)

// ConfigAccountService reads the signed-in user id from the twodo config.
// An empty id means nobody is logged in; services turn that into a
// not_authenticated failure.
type ConfigAccountService struct {
	cfg *config.Config
}

// NewConfigAccountService creates an account service over a loaded config.
// A nil config behaves like a logged-out session.
func NewConfigAccountService(cfg *config.Config) *ConfigAccountService {
	return &ConfigAccountService{cfg: cfg}
}

// CurrentUserID returns the configured user id, or "" when logged out.
func (s *ConfigAccountService) CurrentUserID(ctx context.Context) string {
	if s.cfg == nil {
		return ""
	}
	return s.cfg.UserID
}

// Ensure ConfigAccountService implements the interface
var _ secondary.AccountService = (*ConfigAccountService)(nil)
