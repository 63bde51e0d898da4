// Package secret compares operator-supplied bearer secrets against the
// configured value, either a plain string or a bcrypt hash of it.
package secret

import (
	"crypto/subtle"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrHashingFailed = errors.New("secret hashing failed")
	ErrMismatch      = errors.New("secret mismatch")
	ErrEmpty         = errors.New("secret is empty")
)

const DefaultCost = bcrypt.DefaultCost

// Hash produces the value to put in ADMIN_TOKEN_BCRYPT.
func Hash(plain string) (string, error) {
	if plain == "" {
		return "", ErrEmpty
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), DefaultCost)
	if err != nil {
		return "", ErrHashingFailed
	}
	return string(hashed), nil
}

func CompareHash(hashed, candidate string) error {
	if hashed == "" || candidate == "" {
		return ErrEmpty
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(candidate)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrMismatch
		}
		return err
	}
	return nil
}

// Equal compares in time independent of where the inputs differ.
func Equal(expected, candidate string) error {
	if expected == "" || candidate == "" {
		return ErrEmpty
	}
	if subtle.ConstantTimeCompare([]byte(expected), []byte(candidate)) != 1 {
		return ErrMismatch
	}
	return nil
}
