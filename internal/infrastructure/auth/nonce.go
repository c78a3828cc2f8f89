package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Nonce errors
var (
	ErrInvalidNonce = errors.New("invalid nonce")
	ErrExpiredNonce = errors.New("nonce has expired")
)

// NonceService issues and verifies short-lived HMAC tokens used to protect
// the catalog sync endpoint against replayed or forged requests. A token is
// "<unix-timestamp>.<hex signature>".
type NonceService struct {
	secret []byte
	ttl    time.Duration
}

// NewNonceService creates a nonce service with the given secret and lifetime
func NewNonceService(secret string, ttl time.Duration) *NonceService {
	return &NonceService{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Issue creates a nonce valid for the service TTL
func (s *NonceService) Issue() string {
	return s.issueAt(time.Now())
}

func (s *NonceService) issueAt(now time.Time) string {
	ts := strconv.FormatInt(now.Unix(), 10)
	return ts + "." + s.sign(ts)
}

// Verify checks the nonce signature and age
func (s *NonceService) Verify(nonce string) error {
	parts := strings.SplitN(nonce, ".", 2)
	if len(parts) != 2 {
		return ErrInvalidNonce
	}

	ts, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return ErrInvalidNonce
	}

	expected := s.sign(parts[0])
	if !hmac.Equal([]byte(expected), []byte(parts[1])) {
		return ErrInvalidNonce
	}

	issuedAt := time.Unix(ts, 0)
	if time.Since(issuedAt) > s.ttl {
		return fmt.Errorf("%w: issued at %s", ErrExpiredNonce, issuedAt.Format(time.RFC3339))
	}
	if issuedAt.After(time.Now().Add(time.Minute)) {
		return ErrInvalidNonce
	}

	return nil
}

func (s *NonceService) sign(payload string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}
