// Package invite mints and checks invite codes. A code is a short-lived
// signed token; holding a valid one gates account signup, nothing more.
package invite

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const issuer = "credchat-invites"

type claims struct {
	jwt.RegisteredClaims
}

// Service issues and validates invite codes with a shared HMAC key.
type Service struct {
	signingKey []byte
	ttl        time.Duration
}

func NewService(signingKey string, ttl time.Duration) *Service {
	return &Service{signingKey: []byte(signingKey), ttl: ttl}
}

// Issue mints a new invite code.
func (s *Service) Issue() (string, error) {
	now := time.Now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
			ID:        uuid.NewString(),
		},
	})
	return tok.SignedString(s.signingKey)
}

// Validate reports whether the code is genuine and unexpired. Invalid codes
// are an expected outcome, not an error.
func (s *Service) Validate(code string) bool {
	parsed, err := jwt.ParseWithClaims(code, &claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	}, jwt.WithIssuer(issuer))
	return err == nil && parsed.Valid
}
