// README: Booking handlers; confirm a quote, list, view and cancel bookings.
package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"skycab/internal/http/middleware"
	"skycab/internal/modules/booking"
	"skycab/internal/modules/fare"
	"skycab/internal/modules/geo"
	"skycab/internal/types"
)

type BookingHandler struct {
	bookings *booking.Service
	engine   *fare.Engine
}

func NewBookingHandler(svc *booking.Service, engine *fare.Engine) *BookingHandler {
	return &BookingHandler{bookings: svc, engine: engine}
}

// createBookingReq takes either a quote_id or a full trip description.
type createBookingReq struct {
	QuoteID     string    `json:"quote_id"`
	Pickup      *pointReq `json:"pickup"`
	Destination *pointReq `json:"destination"`
	TierID      string    `json:"tier_id"`
}

type bookingResp struct {
	ID               types.ID   `json:"id"`
	Status           string     `json:"status"`
	Pickup           geo.Point  `json:"pickup"`
	Destination      geo.Point  `json:"destination"`
	PickupLabel      string     `json:"pickup_label"`
	DestinationLabel string     `json:"destination_label"`
	TierID           string     `json:"tier_id"`
	TierName         string     `json:"tier_name,omitempty"`
	DistanceKm       float64    `json:"distance_km"`
	Fare             float64    `json:"fare"`
	Currency         string     `json:"currency"`
	QuoteID          *string    `json:"quote_id,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	CancelledAt      *time.Time `json:"cancelled_at,omitempty"`
}

func (h *BookingHandler) toResp(b *booking.Booking) bookingResp {
	resp := bookingResp{
		ID:               b.ID,
		Status:           string(b.Status),
		Pickup:           b.Pickup,
		Destination:      b.Destination,
		PickupLabel:      b.PickupLabel,
		DestinationLabel: b.DestinationLabel,
		TierID:           b.TierID,
		DistanceKm:       b.DistanceKm,
		Fare:             b.Fare.Major(),
		Currency:         b.Fare.Currency,
		QuoteID:          b.QuoteID,
		CreatedAt:        b.CreatedAt,
		CancelledAt:      b.CancelledAt,
	}
	if h.engine != nil {
		if t, ok := h.engine.GetTier(b.TierID); ok {
			resp.TierName = t.Name
		}
	}
	return resp
}

// Create handles POST /api/bookings.
func (h *BookingHandler) Create(c *gin.Context) {
	var req createBookingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	uid := types.ID(middleware.CallerUID(c))

	var (
		b   *booking.Booking
		err error
	)
	switch {
	case strings.TrimSpace(req.QuoteID) != "":
		b, err = h.bookings.Book(c.Request.Context(), booking.BookCommand{
			UserID:  uid,
			QuoteID: strings.TrimSpace(req.QuoteID),
		})
	case req.Pickup != nil && req.Destination != nil:
		if req.Pickup.Lat == nil || req.Pickup.Lng == nil || req.Destination.Lat == nil || req.Destination.Lng == nil {
			writeError(c, http.StatusBadRequest, "missing coordinates")
			return
		}
		pickup, dest := req.Pickup.point(), req.Destination.point()
		if !pickup.Valid() || !dest.Valid() {
			writeError(c, http.StatusBadRequest, "invalid coordinates")
			return
		}
		b, err = h.bookings.BookDirect(c.Request.Context(), booking.DirectCommand{
			UserID:      uid,
			Pickup:      pickup,
			Destination: dest,
			TierID:      req.TierID,
		})
	default:
		writeError(c, http.StatusBadRequest, "quote_id or pickup and destination required")
		return
	}
	if err != nil {
		writeBookingError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, h.toResp(b))
}

// List handles GET /api/bookings.
func (h *BookingHandler) List(c *gin.Context) {
	items, err := h.bookings.ListByUser(c.Request.Context(), types.ID(middleware.CallerUID(c)))
	if err != nil {
		writeBookingError(c, err)
		return
	}
	out := make([]bookingResp, 0, len(items))
	for i := range items {
		out = append(out, h.toResp(&items[i]))
	}
	writeJSON(c, http.StatusOK, gin.H{"bookings": out})
}

// Get handles GET /api/bookings/:id.
func (h *BookingHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if !isValidBookingID(id) {
		writeError(c, http.StatusBadRequest, "invalid booking id")
		return
	}
	b, err := h.bookings.Get(c.Request.Context(), types.ID(id), types.ID(middleware.CallerUID(c)))
	if err != nil {
		writeBookingError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, h.toResp(b))
}

// Cancel handles POST /api/bookings/:id/cancel.
func (h *BookingHandler) Cancel(c *gin.Context) {
	id := c.Param("id")
	if !isValidBookingID(id) {
		writeError(c, http.StatusBadRequest, "invalid booking id")
		return
	}
	err := h.bookings.Cancel(c.Request.Context(), booking.CancelCommand{
		BookingID: types.ID(id),
		UserID:    types.ID(middleware.CallerUID(c)),
	})
	if err != nil {
		writeBookingError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"id": id, "status": booking.StatusCancelled})
}
