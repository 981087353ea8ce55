package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"yamdb/proj/internal/domain/models"
	"yamdb/proj/internal/domain/permissions"
)

type ctxKey string

const CtxKeyUser ctxKey = "user"

func (app *Application) userFromContext(r *http.Request) *models.User {
	user, ok := r.Context().Value(CtxKeyUser).(*models.User)
	if !ok {
		return models.AnonymousUser
	}
	return user
}

func (app *Application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")
				app.Http.ServerError(w, r, fmt.Errorf("%v", err), "")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (app *Application) rateLimit(next http.Handler) http.Handler {
	type client struct {
		limiter  *rate.Limiter
		lastSeen time.Time
	}
	var (
		mu      sync.Mutex
		clients = make(map[string]*client)
	)

	go func() {
		for {
			time.Sleep(time.Minute)
			mu.Lock()
			for ip, c := range clients {
				if time.Since(c.lastSeen) > 3*time.Minute {
					delete(clients, ip)
				}
			}
			mu.Unlock()
		}
	}()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !app.cfg.Limiter.Enabled {
			next.ServeHTTP(w, r)
			return
		}
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			app.Http.ServerError(w, r, err, "")
			return
		}
		mu.Lock()
		c, found := clients[ip]
		if !found {
			c = &client{limiter: rate.NewLimiter(rate.Limit(app.cfg.Limiter.Rps), app.cfg.Limiter.Burst)}
			clients[ip] = c
		}
		c.lastSeen = time.Now()
		if !c.limiter.Allow() {
			mu.Unlock()
			app.Http.Response(w, r, nil, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}
		mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

// authenticate resolves the bearer token, if any, into the request user.
// Requests without an Authorization header proceed as anonymous; a header
// with a bad token is rejected outright.
func (app *Application) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Authorization")

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			ctx := context.WithValue(r.Context(), CtxKeyUser, models.AnonymousUser)
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			app.Http.Unauthorized(w, r, "invalid or missing authentication token")
			return
		}
		user, err := app.services.Auth.UserFromToken(r.Context(), parts[1])
		if err != nil {
			app.Http.Unauthorized(w, r, "invalid or missing authentication token")
			return
		}
		ctx := context.WithValue(r.Context(), CtxKeyUser, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (app *Application) requireAuthenticatedUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if app.userFromContext(r).IsAnonymous() {
			app.Http.Unauthorized(w, r, "you must be authenticated to access this resource")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requireAdmin gates the user-management routes: every method, admins only.
func (app *Application) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !permissions.AdminOnly(app.userFromContext(r)) {
			app.Http.Forbidden(w, r, "you don't have permission to perform this action")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requireAdminOrReadOnly gates catalog writes. Anonymous callers get 403
// here, not 401: the rule is about the role, not about missing credentials.
func (app *Application) requireAdminOrReadOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !permissions.AdminOrReadOnly(app.userFromContext(r), r.Method) {
			app.Http.Forbidden(w, r, "you don't have permission to perform this action")
			return
		}
		next.ServeHTTP(w, r)
	})
}
