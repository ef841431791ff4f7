package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/flexnotes/flexnotes-go/internal/core/domain"
)

// Issuer is the constant issuer tag carried in every token.
const Issuer = "flexnotes"

// Default token lifetimes.
const (
	DefaultAccessTTL  = 2 * time.Hour
	DefaultRefreshTTL = 48 * time.Hour
)

// Claims is the decoded payload of a signed token.
type Claims struct {
	// Subject is the username the token was issued for.
	Subject string

	// Issuer is the issuer tag, always the Issuer constant.
	Issuer string

	// ExpiresAt is the token expiry.
	ExpiresAt time.Time
}

// TokenService issues and verifies HMAC-SHA-256 signed tokens.
//
// The signing key is immutable configuration injected at construction;
// there is no ambient key state. Expiry is checked explicitly against
// the injected clock, independent of the signing library's own claim
// validation, so the refresh path can distinguish an expired token
// from a malformed one.
type TokenService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// TokenOption configures a TokenService.
type TokenOption func(*TokenService)

// WithAccessTTL overrides the access token lifetime.
func WithAccessTTL(ttl time.Duration) TokenOption {
	return func(s *TokenService) {
		s.accessTTL = ttl
	}
}

// WithRefreshTTL overrides the refresh token lifetime.
func WithRefreshTTL(ttl time.Duration) TokenOption {
	return func(s *TokenService) {
		s.refreshTTL = ttl
	}
}

// WithClock overrides the clock used for expiry checks.
func WithClock(now func() time.Time) TokenOption {
	return func(s *TokenService) {
		s.now = now
	}
}

// NewTokenService creates a TokenService signing with the given secret.
func NewTokenService(secret []byte, opts ...TokenOption) *TokenService {
	s := &TokenService{
		secret:     secret,
		accessTTL:  DefaultAccessTTL,
		refreshTTL: DefaultRefreshTTL,
		now:        time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// IssueAccessToken issues a short-lived access token for the subject.
func (s *TokenService) IssueAccessToken(subject string) (string, error) {
	return s.issue(subject, s.accessTTL)
}

// IssueRefreshToken issues a long-lived refresh token for the subject.
func (s *TokenService) IssueRefreshToken(subject string) (string, error) {
	return s.issue(subject, s.refreshTTL)
}

// IssuePair issues an access and refresh token for the subject.
func (s *TokenService) IssuePair(subject string) (*TokenPair, error) {
	access, err := s.IssueAccessToken(subject)
	if err != nil {
		return nil, err
	}
	refresh, err := s.IssueRefreshToken(subject)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *TokenService) issue(subject string, ttl time.Duration) (string, error) {
	if subject == "" {
		return "", domain.ErrInvalidArgument.WithDetails("token subject is required")
	}

	claims := jwt.MapClaims{
		"sub": subject,
		"iss": Issuer,
		"exp": s.now().Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", domain.ErrInternal.WithCause(err)
	}
	return signed, nil
}

// Verify checks the signature and structure of a token and decodes its
// claims. Malformed tokens and bad signatures yield ErrTokenInvalid; a
// structurally valid token whose expiry has passed yields
// ErrTokenExpired. Claim validation inside the signing library is
// disabled so the expiry check below is the only one that runs.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	parsed, err := jwt.Parse(tokenString,
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, domain.ErrTokenInvalid.WithDetails("unexpected signing method")
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil || !parsed.Valid {
		return nil, domain.ErrTokenInvalid.WithCause(err)
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrTokenInvalid
	}

	sub, _ := mapClaims["sub"].(string)
	iss, _ := mapClaims["iss"].(string)
	exp, ok := mapClaims["exp"].(float64)
	if sub == "" || iss != Issuer || !ok {
		return nil, domain.ErrTokenInvalid.WithDetails("missing or malformed claims")
	}

	claims := &Claims{
		Subject:   sub,
		Issuer:    iss,
		ExpiresAt: time.Unix(int64(exp), 0),
	}

	if claims.ExpiresAt.Before(s.now()) {
		return nil, domain.ErrTokenExpired
	}

	return claims, nil
}

// Refresh verifies a refresh token and issues a fresh access and
// refresh token pair for the same subject. The old refresh token is
// not invalidated; it stays valid until its own expiry.
func (s *TokenService) Refresh(refreshToken string) (*TokenPair, error) {
	claims, err := s.Verify(refreshToken)
	if err != nil {
		return nil, err
	}
	return s.IssuePair(claims.Subject)
}
