package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Claims defines the JWT claims issued by the identity service.
// This backend only verifies tokens; it never issues them.
type Claims struct {
	UserID string `json:"sub"`
	jwt.RegisteredClaims
}

// JWTVerifier validates access tokens from the external identity service.
type JWTVerifier struct {
	secret []byte
}

// NewJWTVerifier creates a new JWT verifier.
func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret)}
}

// ParseAndValidate validates a JWT and returns the parsed claims.
func (v *JWTVerifier) ParseAndValidate(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		// Ensure token is signed using HS256
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %T", t.Method)
		}
		return v.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse jwt: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid jwt token")
	}

	return claims, nil
}
