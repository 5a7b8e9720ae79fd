package security

import (
	"errors"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
)

// TokenIssuer signs and verifies the HS256 bearer tokens handed out at login.
type TokenIssuer struct {
	Auth *jwtauth.JWTAuth
	ttl  time.Duration
	now  func() time.Time
}

func NewTokenIssuer(key []byte, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{
		Auth: jwtauth.New("HS256", key, nil),
		ttl:  ttl,
		now:  time.Now,
	}
}

func (ti *TokenIssuer) GenerateToken(userID string) (string, error) {
	now := ti.now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     now.Add(ti.ttl).Unix(),
		"iat":     now.Unix(),
	}
	_, tokenString, err := ti.Auth.Encode(claims)
	return tokenString, err
}

func GetUserIDFromClaims(claims jwt.MapClaims) (string, error) {
	id, ok := claims["user_id"].(string)
	if !ok || id == "" {
		return "", errors.New("user_id claim is missing or not a string")
	}
	return id, nil
}
