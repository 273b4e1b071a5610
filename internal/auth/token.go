// Package auth provides credential tokens, identity context plumbing,
// and password hashing.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/joblane/joblane/internal/model"
)

// ErrInvalidToken indicates the token signature or structure could not
// be verified against the issuer's secret.
var ErrInvalidToken = errors.New("invalid token")

// claims is the wire payload of a credential token.
type claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
}

// TokenIssuer creates and verifies signed identity tokens. The secret is
// injected at construction and read-only afterwards; nothing here reads
// ambient state.
type TokenIssuer struct {
	secret []byte
}

// NewTokenIssuer creates a TokenIssuer signing with the given secret.
func NewTokenIssuer(secret []byte) *TokenIssuer {
	return &TokenIssuer{secret: secret}
}

// Issue signs a token carrying the identity's username and admin flag.
// The zero value of IsAdmin is false, so a partially populated identity
// can never escalate to admin.
//
// Tokens carry no expiry: there is no refresh or revocation path, and
// an expiry without one would just break clients on a timer.
func (ti *TokenIssuer) Issue(id model.Identity) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
		Username: id.Username,
		IsAdmin:  id.IsAdmin,
	})

	signed, err := token.SignedString(ti.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Decode verifies a token's signature and returns the embedded identity.
// Any verification failure (wrong key, corrupted token, unexpected
// algorithm) yields ErrInvalidToken.
func (ti *TokenIssuer) Decode(tokenString string) (*model.Identity, error) {
	var c claims
	token, err := jwt.ParseWithClaims(tokenString, &c, func(t *jwt.Token) (any, error) {
		return ti.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	id := &model.Identity{
		Username: c.Username,
		IsAdmin:  c.IsAdmin,
	}
	if c.IssuedAt != nil {
		id.IssuedAt = c.IssuedAt.Time
	}
	return id, nil
}
