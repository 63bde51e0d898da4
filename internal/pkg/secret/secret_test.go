//go:build unit

package secret_test

import (
	"testing"

	"calendar-booking/internal/pkg/secret"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCompare(t *testing.T) {
	hashed, err := secret.Hash("admin-token")
	require.NoError(t, err)
	assert.NotEqual(t, "admin-token", hashed)

	assert.NoError(t, secret.CompareHash(hashed, "admin-token"))
	assert.ErrorIs(t, secret.CompareHash(hashed, "wrong"), secret.ErrMismatch)
	assert.ErrorIs(t, secret.CompareHash(hashed, ""), secret.ErrEmpty)

	_, err = secret.Hash("")
	assert.ErrorIs(t, err, secret.ErrEmpty)
}

func TestEqual(t *testing.T) {
	assert.NoError(t, secret.Equal("abc", "abc"))
	assert.ErrorIs(t, secret.Equal("abc", "abd"), secret.ErrMismatch)
	assert.ErrorIs(t, secret.Equal("abc", "abcd"), secret.ErrMismatch)
	assert.ErrorIs(t, secret.Equal("", ""), secret.ErrEmpty)
}
