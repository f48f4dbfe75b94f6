package userservice

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/himatikom/blogserver/internal/docstore"
)

// IssueToken signs a session token for the given account, valid for TokenTTL.
func (s *UserService) IssueToken(user *docstore.User) (string, error) {
	now := time.Now()

	claims := &Claims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("could not sign token: %w", err)
	}

	return token, nil
}

// VerifyToken parses and validates a session token. Any failure, including an
// expired or tampered token, maps to ErrInvalidToken.
func (s *UserService) VerifyToken(token string) (*Claims, error) {
	var claims Claims

	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	return &claims, nil
}
