package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"skycab/internal/infra"
	"skycab/internal/modules/booking"
	"skycab/internal/modules/fare"
	"skycab/internal/modules/geo"
)

type denyVerifier struct{}

func (denyVerifier) VerifyIDToken(context.Context, string) (*infra.AuthToken, error) {
	return nil, errors.New("invalid token")
}

func newTestServer(deps ServerDeps) http.Handler {
	gin.SetMode(gin.TestMode)
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	deps.Logger = logger
	return NewServer(deps).Routes()
}

func serve(h http.Handler, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestRoutes_Health(t *testing.T) {
	h := newTestServer(ServerDeps{})
	w := serve(h, http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

func TestRoutes_PublicFareRoutes(t *testing.T) {
	engine := fare.NewEngine(fare.DefaultCatalog(), geo.BengaluruRegion)
	h := newTestServer(ServerDeps{Fare: fare.NewService(engine, nil, 0)})

	assert.Equal(t, http.StatusOK, serve(h, http.MethodGet, "/api/tiers").Code)
	assert.Equal(t, http.StatusOK, serve(h, http.MethodGet, "/api/tiers/economy").Code)
	assert.Equal(t, http.StatusOK, serve(h, http.MethodGet, "/api/region").Code)
}

func TestRoutes_ProtectedRoutesRequireAuth(t *testing.T) {
	engine := fare.NewEngine(fare.DefaultCatalog(), geo.BengaluruRegion)
	h := newTestServer(ServerDeps{
		Fare:     fare.NewService(engine, nil, 0),
		Booking:  booking.NewService(nil, nil, nil),
		Verifier: denyVerifier{},
	})

	for _, path := range []string{"/api/bookings", "/api/bookings/BK-ABC"} {
		w := serve(h, http.MethodGet, path)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
		assert.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())
	}
}

func TestRoutes_NoVerifierOmitsProtectedRoutes(t *testing.T) {
	h := newTestServer(ServerDeps{Booking: booking.NewService(nil, nil, nil)})
	assert.Equal(t, http.StatusNotFound, serve(h, http.MethodGet, "/api/bookings").Code)
}
