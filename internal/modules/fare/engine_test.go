package fare

import (
	"math"
	"sync"
	"testing"

	"skycab/internal/modules/geo"
)

func newTestEngine() *Engine {
	return NewEngine(DefaultCatalog(), geo.BengaluruRegion)
}

func TestEngine_QuoteFare(t *testing.T) {
	tests := []struct {
		name       string
		distanceKm float64
		tierID     string
		wantFare   float64
	}{
		{
			name:       "Floor at zero distance",
			distanceKm: 0,
			tierID:     "economy",
			wantFare:   200,
		},
		{
			name:       "Economy 1km above floor",
			distanceKm: 1,
			tierID:     "economy",
			wantFare:   500,
		},
		{
			name:       "Premium 10km",
			distanceKm: 10,
			tierID:     "premium",
			wantFare:   7500,
		},
		{
			name:       "Luxury 2.5km",
			distanceKm: 2.5,
			tierID:     "luxury",
			wantFare:   2500,
		},
		{
			// 0.3 * 500 = 150 -> floored
			name:       "Short hop floored",
			distanceKm: 0.3,
			tierID:     "economy",
			wantFare:   200,
		},
		{
			name:       "Unknown tier sentinel",
			distanceKm: 5,
			tierID:     "unknown-tier",
			wantFare:   0,
		},
		{
			name:       "Empty tier sentinel",
			distanceKm: 5,
			tierID:     "",
			wantFare:   0,
		},
	}

	e := newTestEngine()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.QuoteFare(tt.distanceKm, tt.tierID); got != tt.wantFare {
				t.Errorf("QuoteFare() = %v, want %v", got, tt.wantFare)
			}
		})
	}
}

func TestEngine_QuoteFare_CustomFloor(t *testing.T) {
	e := NewEngine(DefaultCatalog(), geo.BengaluruRegion, WithMinimumFare(1000))
	if got := e.QuoteFare(1, "economy"); got != 1000 {
		t.Errorf("QuoteFare() = %v, want 1000", got)
	}
	if e.MinimumFare() != 1000 {
		t.Errorf("MinimumFare() = %v", e.MinimumFare())
	}
}

func TestEngine_QuoteFare_NaNPropagates(t *testing.T) {
	if got := newTestEngine().QuoteFare(math.NaN(), "economy"); !math.IsNaN(got) {
		t.Errorf("expected NaN, got %v", got)
	}
}

func TestEngine_DistanceKm(t *testing.T) {
	e := newTestEngine()
	centre := geo.Point{Lat: 12.9716, Lng: 77.5946}
	north := geo.Point{Lat: 13.9716, Lng: 77.5946}

	if d := e.DistanceKm(centre, centre); d != 0 {
		t.Errorf("distance to self = %v", d)
	}
	d := e.DistanceKm(centre, north)
	if math.Abs(d-111.19) > 0.5 {
		t.Errorf("one degree latitude = %v km", d)
	}
	if e.DistanceKm(north, centre) != d {
		t.Errorf("distance not symmetric")
	}
}

func TestEngine_IsWithinServiceRegion(t *testing.T) {
	e := newTestEngine()
	if !e.IsWithinServiceRegion(geo.Point{Lat: 12.9716, Lng: 77.5946}) {
		t.Error("city centre should be inside")
	}
	if e.IsWithinServiceRegion(geo.Point{Lat: 0, Lng: 0}) {
		t.Error("(0,0) should be outside")
	}
}

func TestEngine_GetTier(t *testing.T) {
	e := newTestEngine()
	lux, ok := e.GetTier("luxury")
	if !ok {
		t.Fatal("luxury tier missing")
	}
	if lux.PricePerKm != 1000 || lux.Capacity != 4 {
		t.Errorf("luxury = %+v", lux)
	}
	if _, ok := e.GetTier("nope"); ok {
		t.Error("expected nope to be absent")
	}
}

func TestEngine_Quote(t *testing.T) {
	e := newTestEngine()
	centre := geo.Point{Lat: 12.9716, Lng: 77.5946}
	airport := geo.Point{Lat: 13.1986, Lng: 77.7066}

	q, err := e.Quote(centre, airport, "premium")
	if err != nil {
		t.Fatalf("Quote() error = %v", err)
	}
	if q.TotalFare != q.DistanceKm*750 {
		t.Errorf("TotalFare = %v, want %v", q.TotalFare, q.DistanceKm*750)
	}
	if q.Currency != "INR" {
		t.Errorf("Currency = %q", q.Currency)
	}

	if _, err := e.Quote(centre, airport, "nope"); err != ErrUnknownTier {
		t.Errorf("expected ErrUnknownTier, got %v", err)
	}
	if _, err := e.Quote(centre, geo.Point{}, "economy"); err != ErrOutsideRegion {
		t.Errorf("expected ErrOutsideRegion, got %v", err)
	}
}

func TestEngine_ConcurrentUse(t *testing.T) {
	e := newTestEngine()
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			d := float64(i)
			if got := e.QuoteFare(d, "economy"); got != math.Max(d*500, 200) {
				t.Errorf("QuoteFare(%v) = %v", d, got)
			}
		}(i)
	}
	wg.Wait()
}

func TestEngine_AntipodalFareIsFinite(t *testing.T) {
	e := newTestEngine()
	a := geo.Point{Lat: -61.82653414809758, Lng: -145.09097319078555}
	b := geo.Point{Lat: 61.82653416331021, Lng: 34.90902680921445}
	d := e.DistanceKm(a, b)
	if math.IsNaN(d) || math.IsInf(d, 0) {
		t.Fatalf("DistanceKm = %v, want finite", d)
	}
	for _, tier := range e.Tiers() {
		if fare := e.QuoteFare(d, tier.ID); math.IsNaN(fare) || fare < MinimumFare {
			t.Errorf("QuoteFare(%v, %s) = %v", d, tier.ID, fare)
		}
	}
}
