// Package auth implements the login gate: signed session cookies and the
// server-side session registry.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the payload of the signed session cookie.
type Claims struct {
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	SessionID   string `json:"sid"`
	jwt.RegisteredClaims
}

// SignSessionToken signs a session cookie valid for ttl.
func SignSessionToken(key []byte, sessionID, username, displayName string, ttl time.Duration) (string, error) {
	claims := Claims{
		Username:    username,
		DisplayName: displayName,
		SessionID:   sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(key)
}

// ParseSessionToken verifies a session cookie and returns its claims.
func ParseSessionToken(key []byte, tokenStr string) (*Claims, error) {
	tok, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		return key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}
