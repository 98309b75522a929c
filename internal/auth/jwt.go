package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taskhive/taskhive/internal/apperr"
)

// DefaultTokenTTL applies when a manager is built with a non-positive
// duration. The login flow normally supplies the configured TTL instead.
const DefaultTokenTTL = 15 * time.Minute

type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"sub_email"`
	jwt.RegisteredClaims
}

type TokenClaims struct {
	UserID    string
	Email     string
	ExpiresAt time.Time
}

// JWTManager issues and verifies HS256 bearer tokens. The signing secret is
// injected at construction time; verification is stateless, so expiry is the
// only invalidation mechanism.
type JWTManager struct {
	secretKey     string
	tokenDuration time.Duration
}

func NewJWTManager(secretKey string, tokenDuration time.Duration) *JWTManager {
	if tokenDuration <= 0 {
		tokenDuration = DefaultTokenTTL
	}
	return &JWTManager{
		secretKey:     secretKey,
		tokenDuration: tokenDuration,
	}
}

func (m *JWTManager) GenerateToken(userID, email string) (string, time.Time, error) {
	return m.GenerateTokenWithTTL(userID, email, m.tokenDuration)
}

func (m *JWTManager) GenerateTokenWithTTL(userID, email string, ttl time.Duration) (string, time.Time, error) {
	if ttl <= 0 {
		ttl = m.tokenDuration
	}
	expiresAt := time.Now().Add(ttl)

	claims := Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(m.secretKey))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, expiresAt, nil
}

// ValidateToken returns the embedded claims, or apperr.ErrInvalidToken when
// the signature does not match, the payload is malformed, or the token has
// expired. Decoding internals never reach the caller.
func (m *JWTManager) ValidateToken(tokenString string) (*TokenClaims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(m.secretKey), nil
	})
	if err != nil || !token.Valid {
		return nil, apperr.ErrInvalidToken
	}

	if claims.UserID == "" || claims.Email == "" || claims.ExpiresAt == nil {
		return nil, apperr.ErrInvalidToken
	}

	return &TokenClaims{
		UserID:    claims.UserID,
		Email:     claims.Email,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
