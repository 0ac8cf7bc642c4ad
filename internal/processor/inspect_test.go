package processor

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/frankchang1000/csv2geojson/internal/failure"
	"github.com/frankchang1000/csv2geojson/internal/geo"

	"github.com/google/go-cmp/cmp"
)

const twoCities = "name,latitude,longitude,country\n" +
	"Berlin,52.52,13.405,DE\n" +
	"Lima,-12.0464,-77.0428,PE\n"

func TestSummarize_Mercator(t *testing.T) {
	for _, format := range []Format{FormatJSON, FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "cities."+string(format))
			job := Job{Input: writeInput(t, twoCities), Output: out, Mode: geo.Mercator, Format: format}
			if _, err := Run(job, nil); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			fc, err := LoadGeoJSON(out)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			s := Summarize(fc, false)
			if s.Features != 2 || s.CRS != geo.CRSWebMercator {
				t.Errorf("unexpected summary %s", s)
			}
			if diff := cmp.Diff([]string{"name", "country"}, s.Properties); diff != "" {
				t.Errorf("properties mismatch (-want +got):\n%s", diff)
			}

			u := Summarize(fc, true)
			if u.CRS != geo.CRSWGS84 {
				t.Errorf("expected unprojected crs, got %s", u.CRS)
			}
			want := [4]float64{-77.0428, -12.0464, 13.405, 52.52}
			got := [4]float64{u.Bound.Min.X(), u.Bound.Min.Y(), u.Bound.Max.X(), u.Bound.Max.Y()}
			for i := range want {
				if math.Abs(want[i]-got[i]) > 1e-9 {
					t.Errorf("bound[%d]: expected %v, got %v", i, want[i], got[i])
				}
			}
		})
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(geo.NewFeatureCollection("", nil), true)
	if s.Features != 0 || s.CRS != geo.CRSWGS84 || len(s.Properties) != 0 {
		t.Errorf("unexpected summary %s", s)
	}
}

func TestLoadGeoJSON_Errors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadGeoJSON(filepath.Join(dir, "missing.geojson")); !errors.Is(err, failure.ErrSourceNotFound) {
		t.Errorf("expected SourceNotFound, got %v", err)
	}

	bad := filepath.Join(dir, "bad.geojson")
	if err := os.WriteFile(bad, []byte(`{"type":"Feature"}`), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	if _, err := LoadGeoJSON(bad); !errors.Is(err, failure.ErrMalformedInput) {
		t.Errorf("expected MalformedInput, got %v", err)
	}
}
