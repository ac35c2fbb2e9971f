package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-errors"

	"github.com/YasminTrembulack/Project-Backend-JA-5P/internal/config"
	"github.com/YasminTrembulack/Project-Backend-JA-5P/internal/model"
)

// Claims is the payload carried by every access token.
type Claims struct {
	jwt.RegisteredClaims
	UID      string         `json:"uid,omitempty"`
	UserRole model.UserRole `json:"role,omitempty"`
}

// UserID returns the subject identifier encoded in the token.
func (c *Claims) UserID() string {
	if c.UID != "" {
		return c.UID
	}
	return c.RegisteredClaims.Subject
}

// Role returns the role claim.
func (c *Claims) Role() model.UserRole {
	return c.UserRole
}

// TokenService issues and verifies signed, time-limited access
// tokens. It is stateless: a token is valid iff its signature
// verifies under the configured method and the clock is before exp.
type TokenService struct {
	signingKey []byte
	method     jwt.SigningMethod
	issuer     string
	ttl        time.Duration
	now        func() time.Time
}

// NewTokenService validates the signing configuration once at
// startup. A missing key or a non-HMAC method is a fatal
// misconfiguration, not a per-request failure.
func NewTokenService(cfg config.Auth, issuer string) (*TokenService, error) {
	if cfg.SigningKey == "" {
		return nil, errors.New("token signing key is required", errors.CategoryInternal)
	}

	method := jwt.GetSigningMethod(cfg.SigningMethod)
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, errors.New("unsupported token signing method: "+cfg.SigningMethod, errors.CategoryInternal)
	}

	return &TokenService{
		signingKey: []byte(cfg.SigningKey),
		method:     method,
		issuer:     issuer,
		ttl:        cfg.TokenDuration(),
		now:        time.Now,
	}, nil
}

// WithClock overrides the time source. Used by tests.
func (ts *TokenService) WithClock(now func() time.Time) *TokenService {
	if now != nil {
		ts.now = now
	}
	return ts
}

// Issue signs a token for the subject with the default TTL.
func (ts *TokenService) Issue(subject string, role model.UserRole) (string, error) {
	return ts.IssueWithTTL(subject, role, ts.ttl)
}

// IssueWithTTL signs a token whose expiration is now + ttl. The
// expiration instant is absolute: possession never extends it.
func (ts *TokenService) IssueWithTTL(subject string, role model.UserRole, ttl time.Duration) (string, error) {
	now := ts.now()

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    ts.issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UID:      subject,
		UserRole: role,
	}

	signed, err := jwt.NewWithClaims(ts.method, claims).SignedString(ts.signingKey)
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to sign token")
	}
	return signed, nil
}

// Verify parses and validates a raw token. Expired tokens fail with
// ErrTokenExpired; every other failure (bad signature, wrong
// algorithm, garbage input) fails with ErrTokenMalformed.
func (ts *TokenService) Verify(raw string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != ts.method.Alg() {
			return nil, errors.New("unexpected signing method: "+t.Method.Alg(), errors.CategoryAuth)
		}
		return ts.signingKey, nil
	}, jwt.WithTimeFunc(ts.now))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, errors.Wrap(err, ErrTokenMalformed.Category, ErrTokenMalformed.Message).
			WithTextCode(ErrTokenMalformed.TextCode).
			WithCode(errors.CodeUnauthorized)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenMalformed
	}
	return claims, nil
}
