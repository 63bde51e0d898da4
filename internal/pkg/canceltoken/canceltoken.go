// Package canceltoken issues and verifies the signed capability that lets a
// client cancel their own booking without logging in.
//
// Token layout: <eventId>.<issuedAtMillis>.<hex HMAC-SHA256(secret, eventId + "." + issuedAtMillis)>
package canceltoken

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	"calendar-booking/internal/pkg/clock"
	"calendar-booking/internal/pkg/errs"
)

var (
	// ErrInvalidToken covers forged, malformed and expired tokens alike.
	ErrInvalidToken = errs.New("invalid cancel token")
	ErrDisabled     = errs.New("cancel tokens are not configured")
	ErrEmptyEventID = errs.New("event id is empty")
)

const DefaultMaxAgeDays = 30

type Signer struct {
	secret []byte
	maxAge time.Duration
	clock  clock.Clock
}

// NewSigner returns a disabled signer when secret is empty.
func NewSigner(secret string, maxAgeDays int, clk clock.Clock) *Signer {
	if maxAgeDays <= 0 {
		maxAgeDays = DefaultMaxAgeDays
	}
	return &Signer{
		secret: []byte(secret),
		maxAge: time.Duration(maxAgeDays) * 24 * time.Hour,
		clock:  clk,
	}
}

func (s *Signer) Enabled() bool {
	return s != nil && len(s.secret) > 0
}

func (s *Signer) Issue(eventID string) (string, error) {
	if !s.Enabled() {
		return "", ErrDisabled
	}
	if strings.TrimSpace(eventID) == "" {
		return "", ErrEmptyEventID
	}
	payload := eventID + "." + strconv.FormatInt(s.clock.Now().UnixMilli(), 10)
	return payload + "." + s.sign(payload), nil
}

// Verify returns the event id bound to token. Every failure, including
// expiry, is reported as ErrInvalidToken.
func (s *Signer) Verify(token string) (string, error) {
	if !s.Enabled() {
		return "", ErrInvalidToken
	}
	sigAt := strings.LastIndexByte(token, '.')
	if sigAt <= 0 {
		return "", ErrInvalidToken
	}
	payload, sig := token[:sigAt], token[sigAt+1:]
	issuedAt := strings.LastIndexByte(payload, '.')
	if issuedAt <= 0 {
		return "", ErrInvalidToken
	}
	eventID, issuedRaw := payload[:issuedAt], payload[issuedAt+1:]

	expected := s.sign(payload)
	if !hmac.Equal([]byte(sig), []byte(expected)) {
		return "", ErrInvalidToken
	}

	ms, err := strconv.ParseInt(issuedRaw, 10, 64)
	if err != nil {
		return "", ErrInvalidToken
	}
	age := s.clock.Now().Sub(time.UnixMilli(ms))
	if age > s.maxAge {
		return "", ErrInvalidToken
	}
	return eventID, nil
}

func (s *Signer) sign(payload string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}
