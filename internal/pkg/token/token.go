// Package token encodes session claims into signed bearer tokens.
//
// Tokens are HS256 JWTs. The legacy store issued unsigned base64 claims that
// any holder could forge; Decode here rejects anything whose signature does
// not verify, along with expired or malformed input.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const defaultTTL = 24 * time.Hour

// ErrInvalidToken covers every decode failure: bad signature, bad encoding,
// wrong algorithm, or an elapsed expiry. Callers treat all of them as "not
// authenticated".
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the identity slice carried inside a session token.
type Claims struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// Codec issues and decodes session tokens under a server-held secret.
type Codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewCodec returns a Codec. A non-positive ttl falls back to 24 hours.
func NewCodec(secret string, ttl time.Duration) *Codec {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Codec{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue builds claims for the identity with issued-at now and expiry
// now + ttl, and returns the signed compact form.
func (c *Codec) Issue(username, email string) (string, error) {
	now := c.now().UTC()
	claims := Claims{
		Username: username,
		Email:    email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.secret)
}

// Decode parses and validates a token, returning its claims.
func (c *Codec) Decode(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	}, jwt.WithTimeFunc(c.now))
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// TTL reports the validity window applied to issued tokens.
func (c *Codec) TTL() time.Duration {
	return c.ttl
}
