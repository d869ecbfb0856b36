package handlers

import (
	"bytes"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skycab/internal/modules/fare"
	"skycab/internal/modules/geo"
)

func newFareRouter(t *testing.T) (*gin.Engine, *miniredis.Miniredis) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	engine := fare.NewEngine(fare.DefaultCatalog(), geo.BengaluruRegion)
	h := NewFareHandler(fare.NewService(engine, fare.NewStore(client), time.Minute))

	r := gin.New()
	r.GET("/api/tiers", h.Tiers)
	r.GET("/api/tiers/:id", h.Tier)
	r.GET("/api/region", h.Region)
	r.GET("/api/region/contains", h.Contains)
	r.POST("/api/fares/quote", h.Quote)
	return r, mr
}

func doJSON(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestFareHandler_Tiers(t *testing.T) {
	r, _ := newFareRouter(t)
	w := doJSON(r, http.MethodGet, "/api/tiers", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Tiers       []fare.Tier `json:"tiers"`
		MinimumFare float64     `json:"minimum_fare"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Tiers, 3)
	assert.Equal(t, "economy", body.Tiers[0].ID)
	assert.Equal(t, 200.0, body.MinimumFare)
}

func TestFareHandler_Tier(t *testing.T) {
	r, _ := newFareRouter(t)

	w := doJSON(r, http.MethodGet, "/api/tiers/luxury", "")
	require.Equal(t, http.StatusOK, w.Code)
	var tier fare.Tier
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tier))
	assert.Equal(t, 1000.0, tier.PricePerKm)
	assert.Equal(t, 4, tier.Capacity)

	w = doJSON(r, http.MethodGet, "/api/tiers/gold", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFareHandler_Contains(t *testing.T) {
	r, _ := newFareRouter(t)
	tests := []struct {
		name   string
		query  string
		status int
		within bool
	}{
		{"centre", "lat=12.9716&lng=77.5946", http.StatusOK, true},
		{"mumbai", "lat=19.076&lng=72.8777", http.StatusOK, false},
		{"edge", "lat=12.70&lng=77.35", http.StatusOK, true},
		{"not a number", "lat=abc&lng=77.5", http.StatusBadRequest, false},
		{"missing", "lat=12.9", http.StatusBadRequest, false},
		{"nan latitude", "lat=NaN&lng=77.5", http.StatusBadRequest, false},
		{"infinite latitude", "lat=Inf&lng=77.5", http.StatusBadRequest, false},
		{"negative infinite longitude", "lat=12.9&lng=-Inf", http.StatusBadRequest, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(r, http.MethodGet, "/api/region/contains?"+tt.query, "")
			require.Equal(t, tt.status, w.Code)
			if tt.status != http.StatusOK {
				return
			}
			var body struct {
				Within bool `json:"within"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.within, body.Within)
		})
	}
}

func TestFareHandler_Region(t *testing.T) {
	r, _ := newFareRouter(t)
	w := doJSON(r, http.MethodGet, "/api/region", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"center"`)
}

func decodeQuote(t *testing.T, w *httptest.ResponseRecorder) quoteResp {
	t.Helper()
	var q quoteResp
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &q))
	return q
}

func TestFareHandler_Quote(t *testing.T) {
	r, mr := newFareRouter(t)

	w := doJSON(r, http.MethodPost, "/api/fares/quote", `{
		"pickup": {"lat": 12.9716, "lng": 77.5946},
		"destination": {"lat": 13.1986, "lng": 77.7066},
		"tier_id": "premium"
	}`)
	require.Equal(t, http.StatusOK, w.Code)
	q := decodeQuote(t, w)
	require.NotEmpty(t, q.QuoteID)
	assert.True(t, q.TierKnown)
	assert.True(t, q.WithinRegion)
	assert.InDelta(t, q.DistanceKm*750, q.TotalFare, 1e-6)
	assert.Equal(t, "INR", q.Currency)
	assert.NotNil(t, q.ExpiresAt)
	assert.True(t, mr.Exists("fare:quote:"+q.QuoteID))
}

func TestFareHandler_Quote_UnknownTierPricesZero(t *testing.T) {
	r, _ := newFareRouter(t)
	w := doJSON(r, http.MethodPost, "/api/fares/quote", `{
		"pickup": {"lat": 12.9716, "lng": 77.5946},
		"destination": {"lat": 13.1986, "lng": 77.7066},
		"tier_id": "gold"
	}`)
	require.Equal(t, http.StatusOK, w.Code)
	q := decodeQuote(t, w)
	assert.False(t, q.TierKnown)
	assert.Equal(t, 0.0, q.TotalFare)
	assert.Empty(t, q.QuoteID)
}

func TestFareHandler_Quote_OutsideRegion(t *testing.T) {
	r, mr := newFareRouter(t)
	w := doJSON(r, http.MethodPost, "/api/fares/quote", `{
		"pickup": {"lat": 12.9716, "lng": 77.5946},
		"destination": {"lat": 19.076, "lng": 72.8777},
		"tier_id": "economy"
	}`)
	require.Equal(t, http.StatusOK, w.Code)
	q := decodeQuote(t, w)
	assert.True(t, q.PickupInRegion)
	assert.False(t, q.DestinationInRegion)
	assert.False(t, q.WithinRegion)
	assert.Empty(t, q.QuoteID)
	assert.Greater(t, q.TotalFare, 200.0)
	assert.Empty(t, mr.Keys())
}

func TestFareHandler_Quote_SameSpotChargesMinimum(t *testing.T) {
	r, _ := newFareRouter(t)
	w := doJSON(r, http.MethodPost, "/api/fares/quote", `{
		"pickup": {"lat": 12.9716, "lng": 77.5946},
		"destination": {"lat": 12.9716, "lng": 77.5946},
		"tier_id": "luxury"
	}`)
	require.Equal(t, http.StatusOK, w.Code)
	q := decodeQuote(t, w)
	assert.Equal(t, 0.0, q.DistanceKm)
	assert.Equal(t, 200.0, q.TotalFare)
}

func TestFareHandler_Quote_BadInput(t *testing.T) {
	r, _ := newFareRouter(t)
	tests := []struct {
		name string
		body string
	}{
		{"malformed", `{"pickup":`},
		{"missing destination", `{"pickup":{"lat":12.9,"lng":77.5},"tier_id":"economy"}`},
		{"missing lng", `{"pickup":{"lat":12.9},"destination":{"lat":12.9,"lng":77.5}}`},
		{"latitude out of range", `{"pickup":{"lat":100,"lng":77.5},"destination":{"lat":12.9,"lng":77.5}}`},
		{"longitude out of range", `{"pickup":{"lat":12.9,"lng":77.5},"destination":{"lat":12.9,"lng":-181}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(r, http.MethodPost, "/api/fares/quote", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestFareHandler_Quote_AntipodalTripRendersFinite(t *testing.T) {
	r, _ := newFareRouter(t)
	w := doJSON(r, http.MethodPost, "/api/fares/quote", `{
		"pickup": {"lat": -61.82653414809758, "lng": -145.09097319078555},
		"destination": {"lat": 61.82653416331021, "lng": 34.90902680921445},
		"tier_id": "economy"
	}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotEmpty(t, w.Body.String())
	q := decodeQuote(t, w)
	assert.False(t, q.WithinRegion)
	assert.InDelta(t, math.Pi*6371, q.DistanceKm, 1)
	assert.InDelta(t, q.DistanceKm*500, q.TotalFare, 1e-6)
}
