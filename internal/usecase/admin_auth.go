package usecase

import (
	"strings"

	"calendar-booking/internal/pkg/config"
	"calendar-booking/internal/pkg/errs"
	"calendar-booking/internal/pkg/secret"
)

var ErrAdminAuthNotConfigured = errs.New("admin token not configured")

// AdminAuthenticator checks the shared admin bearer secret for middleware
type AdminAuthenticator interface {
	Authenticate(token string) error
	Configured() bool
}

type adminAuthImpl struct {
	plain  string
	hashed string
}

func NewAdminAuthenticator(cfg config.AdminConfig) AdminAuthenticator {
	return &adminAuthImpl{
		plain:  strings.TrimSpace(cfg.Token),
		hashed: strings.TrimSpace(cfg.TokenHash),
	}
}

func (a *adminAuthImpl) Configured() bool {
	return a.plain != "" || a.hashed != ""
}

// Authenticate prefers the bcrypt hash when both forms are configured. With
// neither configured every token is rejected.
func (a *adminAuthImpl) Authenticate(token string) error {
	if !a.Configured() {
		return errs.Mark(ErrAdminAuthNotConfigured, errs.ErrUnauthorized)
	}
	var err error
	if a.hashed != "" {
		err = secret.CompareHash(a.hashed, token)
	} else {
		err = secret.Equal(a.plain, token)
	}
	if err != nil {
		return errs.Mark(errs.Wrap(err, "admin token rejected"), errs.ErrUnauthorized)
	}
	return nil
}
