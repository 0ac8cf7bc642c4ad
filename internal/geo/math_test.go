package geo

import (
	"errors"
	"math"
	"testing"

	"github.com/frankchang1000/csv2geojson/internal/failure"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"
)

func TestIdentity_RoundTrip(t *testing.T) {
	tests := []orb.Point{
		{0, 0},
		{-122.4194, 37.7749},
		{179.999999, -89.999999},
		{200.5, 12.25},
	}
	for _, p := range tests {
		got := Identity(p.Lon(), p.Lat())
		if got != p {
			t.Errorf("Identity(%v, %v) = %v, want unchanged", p.Lon(), p.Lat(), got)
		}
	}
}

func TestLonLatToMercator_Equator(t *testing.T) {
	for _, lon := range []float64{-180, -45.5, 0, 13.37, 180, 540} {
		got, err := LonLatToMercator(lon, 0)
		if err != nil {
			t.Fatalf("unexpected error for lon %v: %v", lon, err)
		}
		if got.Y() != 0 {
			t.Errorf("expected y=0 at equator for lon %v, got %v", lon, got.Y())
		}
		if math.Signbit(got.Y()) {
			t.Errorf("expected positive zero for lon %v", lon)
		}
	}
}

func TestLonLatToMercator_Origin(t *testing.T) {
	got, err := LonLatToMercator(0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != (orb.Point{0, 0}) {
		t.Errorf("expected [0 0], got %v", got)
	}

	got, err = LonLatToMercator(math.Copysign(0, -1), math.Copysign(0, -1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Signbit(got.X()) || math.Signbit(got.Y()) {
		t.Errorf("expected negative zero to be normalised, got %v", got)
	}
}

func TestLonLatToMercator_KnownValues(t *testing.T) {
	tests := []struct {
		lon, lat float64
		x, y     float64
	}{
		{180, 0, 20037508.342789244, 0},
		{-180, 0, -20037508.342789244, 0},
		{0, 85.0511287798066, 0, 20037508.342789244},
		{10, 50, 1113194.9079327357, 6446275.841017158},
	}
	for _, tc := range tests {
		got, err := LonLatToMercator(tc.lon, tc.lat)
		if err != nil {
			t.Fatalf("unexpected error for (%v, %v): %v", tc.lon, tc.lat, err)
		}
		if math.Abs(got.X()-tc.x) > 1e-6 || math.Abs(got.Y()-tc.y) > 1e-6 {
			t.Errorf("LonLatToMercator(%v, %v) = %v, want [%v %v]", tc.lon, tc.lat, got, tc.x, tc.y)
		}
	}
}

func TestLonLatToMercator_MatchesOrb(t *testing.T) {
	for lat := -85.0; lat <= 85.0; lat += 2.5 {
		for lon := -180.0; lon <= 180.0; lon += 15 {
			got, err := LonLatToMercator(lon, lat)
			if err != nil {
				t.Fatalf("unexpected error for (%v, %v): %v", lon, lat, err)
			}
			want := project.WGS84.ToMercator(orb.Point{lon, lat})
			if math.Abs(got.X()-want.X()) > 1e-6 || math.Abs(got.Y()-want.Y()) > 1e-6 {
				t.Errorf("(%v, %v): got %v, orb gives %v", lon, lat, got, want)
			}
		}
	}
}

func TestLonLatToMercator_Monotonic(t *testing.T) {
	prev := math.Inf(-1)
	for lat := -89.9; lat < 90; lat += 0.1 {
		p, err := LonLatToMercator(12, lat)
		if err != nil {
			t.Fatalf("unexpected error at lat %v: %v", lat, err)
		}
		if p.Y() <= prev {
			t.Fatalf("y not strictly increasing at lat %v: %v <= %v", lat, p.Y(), prev)
		}
		prev = p.Y()
	}

	prev = math.Inf(-1)
	for lon := -360.0; lon <= 360; lon += 0.5 {
		p, err := LonLatToMercator(lon, -33.5)
		if err != nil {
			t.Fatalf("unexpected error at lon %v: %v", lon, err)
		}
		if p.X() <= prev {
			t.Fatalf("x not strictly increasing at lon %v: %v <= %v", lon, p.X(), prev)
		}
		prev = p.X()
	}
}

func TestLonLatToMercator_OutOfDomain(t *testing.T) {
	for _, lat := range []float64{90, -90, 90.0001, -120, math.NaN()} {
		_, err := LonLatToMercator(0, lat)
		if err == nil {
			t.Errorf("expected error for lat %v", lat)
			continue
		}
		if !errors.Is(err, failure.ErrOutOfDomain) {
			t.Errorf("expected OutOfDomain for lat %v, got %v", lat, err)
		}
	}
}

func TestMercatorToLonLat_Inverse(t *testing.T) {
	for lat := -89.0; lat <= 89.0; lat += 7.25 {
		for lon := -179.0; lon <= 179.0; lon += 31 {
			p, err := LonLatToMercator(lon, lat)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			back := MercatorToLonLat(p.X(), p.Y())
			if math.Abs(back.Lon()-lon) > 1e-9 || math.Abs(back.Lat()-lat) > 1e-9 {
				t.Errorf("round trip (%v, %v) -> %v -> %v", lon, lat, p, back)
			}
		}
	}
}

func TestLonLatToMercator_NearPole(t *testing.T) {
	for _, lat := range []float64{89.9999, 89.99999, 89.999999, 89.9999999, -89.9999999} {
		got, err := LonLatToMercator(0, lat)
		if err != nil {
			t.Fatalf("unexpected error at lat %v: %v", lat, err)
		}
		if math.IsInf(got.Y(), 0) || math.IsNaN(got.Y()) {
			t.Fatalf("expected finite y at lat %v, got %v", lat, got.Y())
		}

		want := EarthRadius * math.Log(math.Tan(math.Pi/4+lat*math.Pi/360))
		if rel := math.Abs(got.Y()-want) / math.Abs(want); rel > 1e-6 {
			t.Errorf("lat %v: expected y %v, got %v (relative error %g)", lat, want, got.Y(), rel)
		}
	}
}

func TestLonLatToMercator_MonotonicNearPole(t *testing.T) {
	prev := math.Inf(-1)
	for _, lat := range []float64{89.99, 89.999, 89.9999, 89.99999, 89.999999, 89.9999999, 89.99999999} {
		p, err := LonLatToMercator(0, lat)
		if err != nil {
			t.Fatalf("unexpected error at lat %v: %v", lat, err)
		}
		if p.Y() <= prev {
			t.Fatalf("y not strictly increasing at lat %v: %v <= %v", lat, p.Y(), prev)
		}
		prev = p.Y()
	}
}

func TestLonLatToMercator_NonFiniteResult(t *testing.T) {
	for _, lon := range []float64{math.MaxFloat64, -math.MaxFloat64, math.NaN(), math.Inf(1)} {
		_, err := LonLatToMercator(lon, 10)
		if !errors.Is(err, failure.ErrOutOfDomain) {
			t.Errorf("expected OutOfDomain for lon %v, got %v", lon, err)
		}
	}
}
