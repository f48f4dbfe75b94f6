package main

import (
	"context"
	"net/http"

	"github.com/himatikom/blogserver/internal/userservice"
)

type contextKey string

const userContextKey = contextKey("user")

func (app *application) createUserContext(r *http.Request, claims *userservice.Claims) *http.Request {
	ctx := context.WithValue(r.Context(), userContextKey, claims)
	return r.WithContext(ctx)
}

func (app *application) getUserContext(r *http.Request) *userservice.Claims {
	claims, ok := r.Context().Value(userContextKey).(*userservice.Claims)
	if !ok {
		return nil
	}
	return claims
}
