package util

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/sunthewhat/certgen-api/type/shared"
)

// GenerateAuthToken signs a HS256 token carrying the user id and role.
// Tokens are issued by the auth service; this is used by tooling and tests.
func GenerateAuthToken(secret string, id string, role string, ttl time.Duration) (string, error) {
	now := time.Now()

	claims := &shared.UserClaims{
		UserId: &id,
		Role:   &role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(secret))
}

// DecodeAuthToken parses and verifies a token produced by GenerateAuthToken.
func DecodeAuthToken(secret string, tokenString string) (*shared.UserClaims, error) {
	claims := new(shared.UserClaims)

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}
