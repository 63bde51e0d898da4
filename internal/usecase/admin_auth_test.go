//go:build unit

package usecase_test

import (
	"testing"

	"calendar-booking/internal/pkg/config"
	"calendar-booking/internal/pkg/errs"
	"calendar-booking/internal/pkg/secret"
	"calendar-booking/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminAuthenticator(t *testing.T) {
	hashed, err := secret.Hash("from-hash")
	require.NoError(t, err)

	tests := []struct {
		name       string
		cfg        config.AdminConfig
		token      string
		configured bool
		wantErr    bool
	}{
		{name: "plain match", cfg: config.AdminConfig{Token: "plain"}, token: "plain", configured: true},
		{name: "plain mismatch", cfg: config.AdminConfig{Token: "plain"}, token: "plain2", configured: true, wantErr: true},
		{name: "hash match", cfg: config.AdminConfig{TokenHash: hashed}, token: "from-hash", configured: true},
		{name: "hash wins over plain", cfg: config.AdminConfig{Token: "plain", TokenHash: hashed}, token: "plain", configured: true, wantErr: true},
		{name: "empty token", cfg: config.AdminConfig{Token: "plain"}, token: "", configured: true, wantErr: true},
		{name: "not configured", cfg: config.AdminConfig{}, token: "", configured: false, wantErr: true},
		{name: "whitespace only config", cfg: config.AdminConfig{Token: "  "}, token: "  ", configured: false, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := usecase.NewAdminAuthenticator(tt.cfg)
			assert.Equal(t, tt.configured, auth.Configured())

			err := auth.Authenticate(tt.token)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errs.Is(err, errs.ErrUnauthorized))
		})
	}
}
