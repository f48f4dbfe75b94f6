package main

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/himatikom/blogserver/internal/common"
)

const sessionCookieName = "token"

func (app *application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")
				app.serverErrorResponse(w, r, fmt.Errorf("%s", err))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

func (app *application) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var (
			ip     = r.RemoteAddr
			method = r.Method
			proto  = r.Proto
			uri    = r.URL.RequestURI()
		)

		app.logger.Info("request from", slog.String("method", method), slog.String("uri", uri), slog.String("remote_addr", ip), slog.String("proto", proto))

		next.ServeHTTP(w, r)
	})
}

// rateLimit throttles per client IP. Limiters live in an expiring cache so
// idle clients do not accumulate. Disabled unless RATE_LIMIT_RPS is set.
func (app *application) rateLimit(next http.Handler) http.Handler {
	if app.config.RateLimitRPS <= 0 {
		return next
	}

	limiters := common.NewCache(3*time.Minute, 10*time.Minute)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}

		var limiter *rate.Limiter
		if cached, ok := limiters.Get(ip); ok {
			limiter = cached.(*rate.Limiter)
		} else {
			limiter = rate.NewLimiter(rate.Limit(app.config.RateLimitRPS), app.config.RateLimitBurst)
		}
		limiters.Set(ip, limiter)

		if !limiter.Allow() {
			app.rateLimitExceededResponse(w, r)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// requireAuth gates a handler behind the session cookie: no cookie is 401,
// a cookie with an invalid or expired token is 403. Verified claims are
// attached to the request context.
func (app *application) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookieName)
		if err != nil {
			app.authTokenMissingResponse(w, r)
			return
		}

		claims, err := app.userService.VerifyToken(cookie.Value)
		if err != nil {
			app.invalidAuthTokenResponse(w, r)
			return
		}

		r = app.createUserContext(r, claims)
		next.ServeHTTP(w, r)
	}
}
