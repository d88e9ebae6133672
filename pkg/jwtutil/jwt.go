package jwtutil

import (
	"time"

	"hanouti-api/pkg/config"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims represents the admin session token carried in the
// session cookie.
type SessionClaims struct {
	Email  string `json:"email"`
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Util signs and validates admin session tokens with the configured key.
type Util struct {
	signingKey []byte
	expiration time.Duration
}

// New creates a token utility from configuration
func New(cfg *config.JWTConfig) *Util {
	return &Util{
		signingKey: []byte(cfg.SigningKey),
		expiration: cfg.ExpirationTime,
	}
}

// GenerateToken issues a signed session token for an admin user
func (u *Util) GenerateToken(userID uint, email, role string) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		Email:  email,
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(u.expiration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(u.signingKey)
}

// ValidateToken validates and parses the session token
func (u *Util) ValidateToken(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return u.signingKey, nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*SessionClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, jwt.ErrSignatureInvalid
}
