// README: Base handler utilities (JSON helpers, request types, error mapping).
package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"skycab/internal/modules/booking"
	"skycab/internal/modules/fare"
	"skycab/internal/modules/geo"
)

type errorResponse struct {
	Error string `json:"error"`
}

// pointReq uses pointers so a missing coordinate is distinguishable from 0.
type pointReq struct {
	Lat *float64 `json:"lat" binding:"required"`
	Lng *float64 `json:"lng" binding:"required"`
}

func (p pointReq) point() geo.Point {
	return geo.Point{Lat: *p.Lat, Lng: *p.Lng}
}

// isValidBookingID accepts "BK-" followed by up to 32 alphanumerics.
func isValidBookingID(v string) bool {
	rest, ok := strings.CutPrefix(v, "BK-")
	if !ok || rest == "" || len(rest) > 32 {
		return false
	}
	for _, c := range rest {
		if (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			continue
		}
		return false
	}
	return true
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

func writeBookingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, booking.ErrBadRequest):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, booking.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, booking.ErrQuoteExpired):
		writeError(c, http.StatusGone, err.Error())
	case errors.Is(err, booking.ErrInvalidState):
		writeError(c, http.StatusConflict, err.Error())
	case errors.Is(err, fare.ErrUnknownTier), errors.Is(err, fare.ErrOutsideRegion):
		writeError(c, http.StatusUnprocessableEntity, err.Error())
	default:
		_ = c.Error(err)
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
