// README: Booking aggregate and status definitions.
package booking

import (
	"time"

	"skycab/internal/modules/geo"
	"skycab/internal/types"
)

type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

type Booking struct {
	ID               types.ID
	UserID           types.ID
	Status           Status
	Pickup           geo.Point
	Destination      geo.Point
	PickupLabel      string
	DestinationLabel string
	PickupCell       string
	DestinationCell  string
	TierID           string
	DistanceKm       float64
	Fare             types.Money
	QuoteID          *string
	CreatedAt        time.Time
	CancelledAt      *time.Time
}

// AllowedTransitions represents the booking state flow as code.
var AllowedTransitions = map[Status][]Status{
	StatusConfirmed: {StatusCancelled},
}

func CanTransition(from, to Status) bool {
	next, ok := AllowedTransitions[from]
	if !ok {
		return false
	}
	for _, s := range next {
		if s == to {
			return true
		}
	}
	return false
}
