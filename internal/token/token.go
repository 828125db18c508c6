// Package token issues and parses the signed credentials that carry a
// principal's identity and the single role the session was opened in.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

var (
	// ErrExpired is returned when the credential signature is valid but the
	// expiry has passed.
	ErrExpired = errors.New("credential expired")
	// ErrMalformed is returned for anything else that prevents the credential
	// from being accepted.
	ErrMalformed = errors.New("credential invalid")
)

// Claims is the payload carried by an issued credential. BindingID refers to
// the user-role binding the session was opened under; older credentials
// predate the field and carry a zero value.
type Claims struct {
	PrincipalID uint64 `json:"uid"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	BindingID   uint64 `json:"binding_id,omitempty"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies credentials with a shared HMAC secret.
type Issuer struct {
	secret []byte
	expiry time.Duration
}

// NewIssuer returns an Issuer signing with the given secret. Credentials are
// valid for the given expiry from the moment of issue.
func NewIssuer(secret string, expiry time.Duration) *Issuer {
	return &Issuer{
		secret: []byte(secret),
		expiry: expiry,
	}
}

// Issue mints a signed credential for the given principal acting in the given
// role.
func (i *Issuer) Issue(principalID uint64, email, role string, bindingID uint64) (string, error) {
	now := time.Now()

	claims := Claims{
		PrincipalID: principalID,
		Email:       email,
		Role:        role,
		BindingID:   bindingID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.expiry)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", errors.Wrap(err, "signing credential")
	}

	return signed, nil
}

// Parse verifies the signature and expiry of a credential and returns its
// claims. Expired credentials are reported as ErrExpired, everything else as
// ErrMalformed.
func (i *Issuer) Parse(credential string) (*Claims, error) {
	claims := &Claims{}

	_, err := jwt.ParseWithClaims(credential, claims, func(_ *jwt.Token) (interface{}, error) {
		return i.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	switch {
	case err == nil:
		return claims, nil
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrExpired
	default:
		return nil, ErrMalformed
	}
}
