package userservice

import (
	"errors"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/himatikom/blogserver/internal/docstore"
)

const TokenTTL = time.Hour

var (
	// ErrAuthenticationFailure covers both an unknown username and a wrong
	// password so that responses cannot be used to enumerate accounts.
	ErrAuthenticationFailure = errors.New("invalid username or password")
	ErrInvalidToken          = errors.New("invalid or expired token")
)

type UserService struct {
	store  docstore.Store
	logger *slog.Logger
	secret []byte
}

// Claims is the session token payload carried in the cookie.
type Claims struct {
	UserID   int    `json:"id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}
