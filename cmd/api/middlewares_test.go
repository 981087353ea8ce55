package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	govalidator "github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yamdb/proj/internal/config"
	"yamdb/proj/internal/domain/models"
	"yamdb/proj/internal/lib/validator"
)

func newTestApplication(t *testing.T) *Application {
	t.Helper()
	cfg := &config.Config{BannedNames: []string{"me"}}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	validate := govalidator.New(govalidator.WithRequiredStructEnabled())
	validator.Register(validate, cfg.BannedNames)
	queryDecoder := schema.NewDecoder()
	queryDecoder.IgnoreUnknownKeys(true)
	return &Application{
		cfg:          cfg,
		log:          log,
		Http:         &Http{log, cfg},
		validator:    validate,
		queryDecoder: queryDecoder,
	}
}

func requestWithUser(user *models.User) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/api/v1/categories", nil)
	return r.WithContext(context.WithValue(r.Context(), CtxKeyUser, user))
}

func okHandler() (http.Handler, *bool) {
	called := false
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}), &called
}

func TestRequireAuthenticatedUser(t *testing.T) {
	app := newTestApplication(t)

	t.Run("anonymous is rejected", func(t *testing.T) {
		next, called := okHandler()
		rec := httptest.NewRecorder()
		app.requireAuthenticatedUser(next).ServeHTTP(rec, requestWithUser(models.AnonymousUser))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, *called)
	})

	t.Run("authenticated passes through", func(t *testing.T) {
		next, called := okHandler()
		rec := httptest.NewRecorder()
		user := &models.User{ID: 1, Username: "reader", Role: models.RoleUser}
		app.requireAuthenticatedUser(next).ServeHTTP(rec, requestWithUser(user))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, *called)
	})
}

func TestRequireAdminOrReadOnly(t *testing.T) {
	app := newTestApplication(t)

	cases := []struct {
		name       string
		user       *models.User
		method     string
		wantStatus int
	}{
		{"anonymous read is allowed", models.AnonymousUser, http.MethodGet, http.StatusOK},
		{"anonymous write is forbidden", models.AnonymousUser, http.MethodPost, http.StatusForbidden},
		{"plain user write is forbidden", &models.User{ID: 2, Role: models.RoleUser}, http.MethodPost, http.StatusForbidden},
		{"moderator write is forbidden", &models.User{ID: 3, Role: models.RoleModerator}, http.MethodDelete, http.StatusForbidden},
		{"admin write is allowed", &models.User{ID: 4, Role: models.RoleAdmin}, http.MethodPost, http.StatusOK},
		{"superuser write is allowed", &models.User{ID: 5, Role: models.RoleUser, IsSuperuser: true}, http.MethodPost, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			next, _ := okHandler()
			rec := httptest.NewRecorder()
			r := httptest.NewRequest(tc.method, "/api/v1/categories", nil)
			r = r.WithContext(context.WithValue(r.Context(), CtxKeyUser, tc.user))
			app.requireAdminOrReadOnly(next).ServeHTTP(rec, r)
			assert.Equal(t, tc.wantStatus, rec.Code)
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	app := newTestApplication(t)

	t.Run("read access still requires admin", func(t *testing.T) {
		next, called := okHandler()
		rec := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
		r = r.WithContext(context.WithValue(r.Context(), CtxKeyUser, &models.User{ID: 2, Role: models.RoleUser}))
		app.requireAdmin(next).ServeHTTP(rec, r)
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.False(t, *called)
	})

	t.Run("admin passes", func(t *testing.T) {
		next, called := okHandler()
		rec := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
		r = r.WithContext(context.WithValue(r.Context(), CtxKeyUser, &models.User{ID: 1, Role: models.RoleAdmin}))
		app.requireAdmin(next).ServeHTTP(rec, r)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, *called)
	})
}

func TestAuthenticate(t *testing.T) {
	app := newTestApplication(t)

	t.Run("no header means anonymous", func(t *testing.T) {
		var seen *models.User
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = app.userFromContext(r)
		})
		rec := httptest.NewRecorder()
		app.authenticate(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/titles", nil))
		require.NotNil(t, seen)
		assert.True(t, seen.IsAnonymous())
	})

	t.Run("malformed header is rejected", func(t *testing.T) {
		next, called := okHandler()
		rec := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/v1/titles", nil)
		r.Header.Set("Authorization", "Basic abc123")
		app.authenticate(next).ServeHTTP(rec, r)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, *called)
	})
}
