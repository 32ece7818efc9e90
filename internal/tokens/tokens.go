package tokens

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// AccessClaims carries the authenticated subject plus its authority names
// (role and permission ids) so authorization never needs a database lookup.
type AccessClaims struct {
	Authorities []string `json:"authorities"`
	jwt.RegisteredClaims
}

func SignAccessToken(userID string, authorities []string, secret []byte, ttl time.Duration) (string, error) {
	claims := AccessClaims{
		Authorities: authorities,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(secret)
}

func AccessClaimsFromToken(tokenStr string, secret []byte) (*AccessClaims, error) {
	var claims AccessClaims
	tkn, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected sign method")
		}
		return secret, nil
	})
	if err != nil || !tkn.Valid {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}

func ExtractUserID(tokenStr string, secret []byte) (string, error) {
	claims, err := AccessClaimsFromToken(tokenStr, secret)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

func IsTokenValid(tokenStr, userID string, secret []byte) bool {
	claims, err := AccessClaimsFromToken(tokenStr, secret)
	if err != nil {
		return false
	}
	return claims.Subject == userID
}

func ExtractAuthorities(tokenStr string, secret []byte) ([]string, error) {
	claims, err := AccessClaimsFromToken(tokenStr, secret)
	if err != nil {
		return nil, err
	}
	return claims.Authorities, nil
}
