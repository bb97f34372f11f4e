// Package token mints and decodes the bearer token handed to the browser
// client after login. The token is deliberately unsigned: it is a reversible
// base64-JSON claims blob with no MAC, kept in this shape for behavioural
// compatibility with the existing client. Logout invalidation therefore
// relies on the separate session key, not on the token itself.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TTL is the token lifetime from mint time.
const TTL = time.Hour

var ErrExpired = errors.New("token expired")
var ErrMalformed = errors.New("token malformed")

// Claims are the fields carried inside the token.
type Claims struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Exp      int64  `json:"exp"`
}

// Codec encodes and decodes bearer tokens.
type Codec struct {
	now func() time.Time
}

func NewCodec() *Codec {
	return &Codec{now: time.Now}
}

// NewCodecAt returns a Codec with a fixed clock. Intended for tests.
func NewCodecAt(now func() time.Time) *Codec {
	return &Codec{now: now}
}

// Mint produces a token encoding {userId, username, role, exp} with
// exp = now + TTL in Unix seconds.
func (c *Codec) Mint(userID, username, role string) (string, error) {
	claims := jwt.MapClaims{
		"userId":   userID,
		"username": username,
		"role":     role,
		"exp":      c.now().Add(TTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	signed, err := t.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		return "", fmt.Errorf("mint token: %w", err)
	}
	return signed, nil
}

// Decode parses a token and returns its claims. Expired tokens fail with
// ErrExpired, anything unparseable with ErrMalformed.
func (c *Codec) Decode(raw string) (Claims, error) {
	mc := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(raw, mc, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodNone.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return jwt.UnsafeAllowNoneSignatureType, nil
	}, jwt.WithValidMethods([]string{"none"}), jwt.WithTimeFunc(c.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrExpired
		}
		return Claims{}, ErrMalformed
	}
	if !tkn.Valid {
		return Claims{}, ErrMalformed
	}

	exp, _ := mc.GetExpirationTime()
	claims := Claims{
		UserID:   asString(mc["userId"]),
		Username: asString(mc["username"]),
		Role:     asString(mc["role"]),
	}
	if exp != nil {
		claims.Exp = exp.Unix()
	}
	return claims, nil
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}
