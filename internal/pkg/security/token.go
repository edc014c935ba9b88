package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is how long an issued admin token stays valid.
const TokenTTL = 7 * 24 * time.Hour

// ErrInvalidToken covers every verification failure: malformed token,
// wrong signature, unexpected signing method, or expiry. Callers get a
// single error class so responses cannot leak which check failed.
var ErrInvalidToken = errors.New("invalid or expired token")

// TokenClaims is what an admin bearer token carries.
type TokenClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// GenerateToken signs an HS256 JWT for the given admin username with the
// given time-to-live.
func GenerateToken(username, secret string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", errors.New("secret is required for token generation")
	}
	now := time.Now()
	claims := TokenClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// VerifyToken checks signature and expiry and returns the embedded claims.
func VerifyToken(token, secret string) (*TokenClaims, error) {
	if secret == "" {
		return nil, errors.New("secret is required for token verification")
	}
	claims := &TokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Username == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
