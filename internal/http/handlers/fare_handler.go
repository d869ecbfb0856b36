// README: Fare handlers; tier catalog, service region and fare quotes.
package handlers

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"skycab/internal/modules/fare"
	"skycab/internal/modules/geo"
)

type FareHandler struct {
	fare *fare.Service
}

func NewFareHandler(svc *fare.Service) *FareHandler {
	return &FareHandler{fare: svc}
}

// Tiers handles GET /api/tiers.
func (h *FareHandler) Tiers(c *gin.Context) {
	writeJSON(c, http.StatusOK, gin.H{
		"tiers":        h.fare.Engine().Tiers(),
		"minimum_fare": h.fare.Engine().MinimumFare(),
	})
}

// Tier handles GET /api/tiers/:id.
func (h *FareHandler) Tier(c *gin.Context) {
	tier, ok := h.fare.Engine().GetTier(c.Param("id"))
	if !ok {
		writeError(c, http.StatusNotFound, fare.ErrUnknownTier.Error())
		return
	}
	writeJSON(c, http.StatusOK, tier)
}

// Region handles GET /api/region.
func (h *FareHandler) Region(c *gin.Context) {
	r := h.fare.Engine().Region()
	writeJSON(c, http.StatusOK, gin.H{
		"region": r,
		"center": r.Center(),
	})
}

// Contains handles GET /api/region/contains?lat=&lng=.
// Out-of-range values are answered with within=false, not rejected.
// NaN and Inf parse as floats but cannot be rendered as JSON, so they are 400.
func (h *FareHandler) Contains(c *gin.Context) {
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lng, errLng := strconv.ParseFloat(c.Query("lng"), 64)
	if errLat != nil || errLng != nil || !isFinite(lat) || !isFinite(lng) {
		writeError(c, http.StatusBadRequest, "lat and lng must be finite numbers")
		return
	}
	p := geo.Point{Lat: lat, Lng: lng}
	writeJSON(c, http.StatusOK, gin.H{"point": p, "within": h.fare.Engine().IsWithinServiceRegion(p)})
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

type quoteReq struct {
	Pickup      pointReq `json:"pickup" binding:"required"`
	Destination pointReq `json:"destination" binding:"required"`
	TierID      string   `json:"tier_id"`
}

type quoteResp struct {
	QuoteID             string     `json:"quote_id,omitempty"`
	TierID              string     `json:"tier_id"`
	TierKnown           bool       `json:"tier_known"`
	DistanceKm          float64    `json:"distance_km"`
	TotalFare           float64    `json:"total_fare"`
	Currency            string     `json:"currency"`
	PickupInRegion      bool       `json:"pickup_in_region"`
	DestinationInRegion bool       `json:"destination_in_region"`
	WithinRegion        bool       `json:"within_region"`
	ExpiresAt           *time.Time `json:"expires_at,omitempty"`
}

// Quote handles POST /api/fares/quote. Unknown tiers price at 0 and
// out-of-region trips get no quote id; both still answer 200.
func (h *FareHandler) Quote(c *gin.Context) {
	var req quoteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	pickup, dest := req.Pickup.point(), req.Destination.point()
	if !pickup.Valid() || !dest.Valid() {
		writeError(c, http.StatusBadRequest, "invalid coordinates")
		return
	}

	est, err := h.fare.Estimate(c.Request.Context(), fare.EstimateRequest{
		Pickup:      pickup,
		Destination: dest,
		TierID:      req.TierID,
	})
	if err != nil {
		_ = c.Error(err)
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}

	resp := quoteResp{
		QuoteID:             est.ID,
		TierID:              est.TierID,
		TierKnown:           est.TierKnown,
		DistanceKm:          est.DistanceKm,
		TotalFare:           est.TotalFare,
		Currency:            est.Currency,
		PickupInRegion:      est.PickupInRegion,
		DestinationInRegion: est.DestinationInRegion,
		WithinRegion:        est.PickupInRegion && est.DestinationInRegion,
	}
	if !est.ExpiresAt.IsZero() {
		resp.ExpiresAt = &est.ExpiresAt
	}
	writeJSON(c, http.StatusOK, resp)
}
