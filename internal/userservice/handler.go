package userservice

import (
	"context"
	"log/slog"

	"github.com/himatikom/blogserver/internal/docstore"
)

func NewUserService(store docstore.Store, secret string, logger *slog.Logger) *UserService {
	return &UserService{
		store:  store,
		logger: logger,
		secret: []byte(secret),
	}
}

// Login checks the credentials against the stored accounts and returns a
// signed session token. A store read failure degrades to an empty account
// list, so an unreachable store presents as an authentication failure.
// Missing or wrong credentials are indistinguishable on purpose.
func (s *UserService) Login(ctx context.Context, username, password string) (string, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		s.logger.Warn("could not load document, treating account list as empty", slog.String("error", err.Error()))
		doc = &docstore.Document{}
	}

	var user *docstore.User
	for i := range doc.Users {
		if doc.Users[i].Username == username {
			user = &doc.Users[i]
			break
		}
	}

	if user == nil {
		return "", ErrAuthenticationFailure
	}

	match, err := comparePassword(user.Password, password)
	if err != nil {
		return "", err
	}
	if !match {
		return "", ErrAuthenticationFailure
	}

	return s.IssueToken(user)
}
