package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadJSON(t *testing.T) {
	app := newTestApplication(t)

	type payload struct {
		Name string `json:"name"`
	}

	cases := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"valid body", `{"name": "films"}`, ""},
		{"empty body", ``, "body must not be empty"},
		{"malformed json", `{"name": `, "badly-formed JSON"},
		{"unknown field", `{"nope": 1}`, "unknown key"},
		{"multiple values", `{"name": "a"}{"name": "b"}`, "single JSON value"},
		{"wrong type", `{"name": 42}`, `incorrect JSON type for field "name"`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.body))
			var dst payload
			err := app.readJSON(httptest.NewRecorder(), r, &dst)
			if tc.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, "films", dst.Name)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestExtractIDParam(t *testing.T) {
	app := newTestApplication(t)

	router := app.getRoutesHandler()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/titles/abc", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealthcheck(t *testing.T) {
	app := newTestApplication(t)

	rec := httptest.NewRecorder()
	app.getRoutesHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/healthcheck", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "available", resp.Data["status"])
}

func TestRouterNotFound(t *testing.T) {
	app := newTestApplication(t)

	rec := httptest.NewRecorder()
	app.getRoutesHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAnonymousCatalogWriteForbidden(t *testing.T) {
	app := newTestApplication(t)

	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/v1/categories", strings.NewReader(`{"name": "Films", "slug": "films"}`))
	app.getRoutesHandler().ServeHTTP(rec, r)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAnonymousReviewCreateUnauthorized(t *testing.T) {
	app := newTestApplication(t)

	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/v1/titles/1/reviews", strings.NewReader(`{"text": "fine", "score": 7}`))
	app.getRoutesHandler().ServeHTTP(rec, r)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
