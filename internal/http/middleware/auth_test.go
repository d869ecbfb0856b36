package middleware_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skycab/internal/http/middleware"
	"skycab/internal/infra"
)

type fakeVerifier struct {
	token *infra.AuthToken
	err   error
	raw   string
}

func (f *fakeVerifier) VerifyIDToken(_ context.Context, raw string) (*infra.AuthToken, error) {
	f.raw = raw
	return f.token, f.err
}

func whoAmI(v infra.TokenVerifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.Auth(v))
	r.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"uid": middleware.CallerUID(c)})
	})
	return r
}

func TestAuth_Rejects(t *testing.T) {
	rider := &infra.AuthToken{UID: "rider1"}
	tests := []struct {
		name     string
		header   string
		verifier *fakeVerifier
	}{
		{"no header", "", &fakeVerifier{token: rider}},
		{"wrong scheme", "Token abc", &fakeVerifier{token: rider}},
		{"blank bearer", "Bearer   ", &fakeVerifier{token: rider}},
		{"verifier error", "Bearer forged", &fakeVerifier{err: errors.New("signature mismatch")}},
		{"token without uid", "Bearer anon", &fakeVerifier{token: &infra.AuthToken{}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			whoAmI(tt.verifier).ServeHTTP(w, req)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())
		})
	}
}

func TestAuth_ExposesCaller(t *testing.T) {
	v := &fakeVerifier{token: &infra.AuthToken{UID: "rider123", Email: "rider@example.com"}}
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	w := httptest.NewRecorder()
	whoAmI(v).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "good-token", v.raw)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "rider123", body["uid"])
	assert.NotContains(t, body, "email")
}

func TestRecoveryAndLogging(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	logger := infra.NewLogger("info", &buf)

	r := gin.New()
	r.Use(middleware.Logging(logger), middleware.Recovery(logger))
	r.GET("/boom", func(c *gin.Context) { panic("kaboom") })
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	out := buf.String()
	assert.Contains(t, out, "panic recovered")
	assert.Contains(t, out, `"path":"/ok"`)
	assert.Contains(t, out, `"status":500`)
}
