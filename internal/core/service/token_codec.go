package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/citypulse/report-system/internal/core/domain"
)

// JWTCodec issues and validates HS256-signed bearer tokens whose subject is
// the account phone. Tokens are the sole proof of identity: there is no
// server-side session or revocation list, so a leaked token stays valid until
// its expiry. Keep the TTL short accordingly.
type JWTCodec struct {
	secret []byte
	ttl    time.Duration
}

// NewJWTCodec builds a codec with the given signing secret and validity
// window. If ttl <= 0 the 24h default is applied.
func NewJWTCodec(secret string, ttl time.Duration) *JWTCodec {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &JWTCodec{secret: []byte(secret), ttl: ttl}
}

// Issue produces a signed token bound to the account's phone, stamped with the
// current time and the configured validity window.
func (c *JWTCodec) Issue(phone string) (string, error) {
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   phone,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.secret)
}

// ParseSubject recovers the subject claim iff the token is structurally
// well-formed and the signature verifies. Expiry is deliberately not checked
// here: an expired-but-well-formed token still parses, and IsValid rejects it.
// Any failure maps to domain.ErrTokenInvalid.
func (c *JWTCodec) ParseSubject(token string) (string, error) {
	claims, err := c.parse(token)
	if err != nil {
		return "", domain.ErrTokenInvalid
	}
	if claims.Subject == "" {
		return "", domain.ErrTokenInvalid
	}
	return claims.Subject, nil
}

// IsValid reports whether the token's signature verifies, the token is
// unexpired, and the subject matches the principal's phone exactly.
// Expired tokens return false, never an error.
func (c *JWTCodec) IsValid(token string, principal *domain.Principal) bool {
	if principal == nil {
		return false
	}
	claims, err := c.parse(token)
	if err != nil {
		return false
	}
	if claims.Subject != principal.Phone {
		return false
	}
	if claims.ExpiresAt == nil || !time.Now().Before(claims.ExpiresAt.Time) {
		return false
	}
	return true
}

// parse verifies structure and signature only. Clock skew is not compensated;
// expiry is validated separately by IsValid.
func (c *JWTCodec) parse(token string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	}, jwt.WithoutClaimsValidation())
	if err != nil || !tkn.Valid {
		return nil, domain.ErrTokenInvalid
	}
	return claims, nil
}
