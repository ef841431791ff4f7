package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// newTestTokenWithIssuer hand-signs a token with arbitrary claims for
// negative-path tests.
func newTestTokenWithIssuer(t *testing.T, secret []byte, subject, issuer string, expiresAt time.Time) string {
	t.Helper()

	claims := jwt.MapClaims{
		"sub": subject,
		"iss": issuer,
		"exp": expiresAt.Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		t.Fatalf("signing test token: %v", err)
	}
	return signed
}
