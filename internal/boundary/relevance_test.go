package boundary_test

import (
	"math"
	"reflect"
	"testing"

	"github.com/stirlingbridge/landdev/internal/boundary"
)

// rect builds a rectangular polygon boundary from corner coordinates in
// (lng, lat) order.
func rect(name, layerType string, minLng, minLat, maxLng, maxLat float64) boundary.Boundary {
	return boundary.Boundary{
		LayerName: name,
		LayerType: layerType,
		SourceAPI: "CSG",
		Geometry: &boundary.Geometry{
			Rings: [][][]float64{{
				{minLng, minLat}, {maxLng, minLat}, {maxLng, maxLat}, {minLng, maxLat}, {minLng, minLat},
			}},
		},
	}
}

func line(name, layerType string, pts ...[]float64) boundary.Boundary {
	return boundary.Boundary{
		LayerName: name,
		LayerType: layerType,
		SourceAPI: "SANBI_BGIS",
		Geometry:  &boundary.Geometry{Paths: [][][]float64{pts}},
	}
}

func TestRelevant_ContainingBoundaries(t *testing.T) {
	at := boundary.Coordinate{Latitude: -26.205, Longitude: 28.045}
	inside1 := rect("farm 1", "Farm Portions", 28.0, -26.3, 28.1, -26.1)
	inside2 := rect("erf 2", "Erven", 28.04, -26.21, 28.05, -26.20)
	outside := rect("farm 3", "Farm Portions", 29.0, -25.0, 29.5, -24.5)

	got := boundary.Relevant([]boundary.Boundary{inside1, outside, inside2}, at)

	want := []boundary.Boundary{inside1, inside2}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("relevant = %v boundaries, want the two containing ones in input order", names(got))
	}
}

func TestRelevant_NearestFallback(t *testing.T) {
	// Neither polygon contains the point; the nearer centroid wins.
	at := boundary.Coordinate{Latitude: 0, Longitude: 0}
	near := rect("near", "Farm Portions", 1, 1, 2, 2)   // centroid ~(1.5, 1.5)
	far := rect("far", "Farm Portions", 10, 10, 12, 12) // centroid ~(11, 11)

	got := boundary.Relevant([]boundary.Boundary{far, near}, at)

	if len(got) != 1 || got[0].LayerName != "near" {
		t.Fatalf("fallback = %v, want only the nearest boundary", names(got))
	}
}

func TestRelevant_FallbackTieKeepsInputOrder(t *testing.T) {
	at := boundary.Coordinate{Latitude: 0, Longitude: 0}
	first := rect("first", "Erven", 1, 1, 2, 2)
	twin := rect("twin", "Erven", 1, 1, 2, 2)

	got := boundary.Relevant([]boundary.Boundary{first, twin}, at)

	if len(got) != 1 || got[0].LayerName != "first" {
		t.Fatalf("tie broke to %v, want the earlier input boundary", names(got))
	}
}

func TestRelevant_FallbackSkipsUnusableGeometry(t *testing.T) {
	at := boundary.Coordinate{Latitude: 0, Longitude: 0}
	noGeom := boundary.Boundary{LayerName: "no geometry", LayerType: "Roads"}
	emptyRings := boundary.Boundary{
		LayerName: "empty rings",
		LayerType: "Roads",
		Geometry:  &boundary.Geometry{Rings: [][][]float64{}},
	}
	usable := rect("usable", "Farm Portions", 5, 5, 6, 6)

	got := boundary.Relevant([]boundary.Boundary{noGeom, emptyRings, usable}, at)
	if len(got) != 1 || got[0].LayerName != "usable" {
		t.Fatalf("fallback = %v, want the only boundary with a usable ring", names(got))
	}

	// No usable ring at all: empty result, not an error.
	got = boundary.Relevant([]boundary.Boundary{noGeom, emptyRings}, at)
	if len(got) != 0 {
		t.Fatalf("fallback over unusable geometry = %v, want empty", names(got))
	}
}

func TestRelevant_PolylinesNeverContain(t *testing.T) {
	at := boundary.Coordinate{Latitude: 0.5, Longitude: 0.5}
	road := line("road", "Roads", []float64{0, 0}, []float64{1, 1})
	farm := rect("farm", "Farm Portions", 0, 0, 1, 1)

	got := boundary.Relevant([]boundary.Boundary{road, farm}, at)
	if len(got) != 1 || got[0].LayerName != "farm" {
		t.Fatalf("relevant = %v, want only the containing polygon", names(got))
	}
}

func TestRelevant_EmptyInput(t *testing.T) {
	got := boundary.Relevant(nil, boundary.Coordinate{Latitude: 1, Longitude: 1})
	if len(got) != 0 {
		t.Fatalf("relevant of empty input = %v, want empty", names(got))
	}
}

func TestRelevant_Idempotent(t *testing.T) {
	at := boundary.Coordinate{Latitude: -26.205, Longitude: 28.045}
	input := []boundary.Boundary{
		rect("farm", "Farm Portions", 28.0, -26.3, 28.1, -26.1),
		line("road", "Roads", []float64{28.0, -26.2}, []float64{28.1, -26.2}),
	}

	first := boundary.Relevant(input, at)
	second := boundary.Relevant(input, at)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("two calls with identical inputs returned different results")
	}
}

func TestRelevant_NaNCoordinateDoesNotPanic(t *testing.T) {
	at := boundary.Coordinate{Latitude: math.NaN(), Longitude: math.NaN()}
	input := []boundary.Boundary{rect("farm", "Farm Portions", 0, 0, 1, 1)}

	// NaN distances sort last; with a single candidate nothing qualifies.
	got := boundary.Relevant(input, at)
	if len(got) != 0 {
		t.Fatalf("relevant with NaN coordinate = %v, want empty", names(got))
	}
}

func names(bs []boundary.Boundary) []string {
	out := make([]string, len(bs))
	for i, b := range bs {
		out[i] = b.LayerName
	}
	return out
}
