package boundary_test

import (
	"testing"

	"github.com/paulmach/orb"

	"github.com/stirlingbridge/landdev/internal/boundary"
)

func TestLatLngSequences_Rings(t *testing.T) {
	g := &boundary.Geometry{
		Rings: [][][]float64{
			{{28.0, -26.2}, {28.1, -26.2}, {28.1, -26.1}},
			{{28.02, -26.18}, {28.04, -26.18}, {28.04, -26.16}},
		},
	}

	seqs := boundary.LatLngSequences(g)
	if len(seqs) != 2 {
		t.Fatalf("got %d sequences, want 2", len(seqs))
	}
	// [lng, lat] pairs come back swapped into (lat, lng).
	first := seqs[0][0]
	if first.Lat != -26.2 || first.Lng != 28.0 {
		t.Fatalf("first point = (%v, %v), want (-26.2, 28.0)", first.Lat, first.Lng)
	}
}

func TestLatLngSequences_Paths(t *testing.T) {
	g := &boundary.Geometry{
		Paths: [][][]float64{{{28.0, -26.2}, {28.5, -26.3}}},
	}

	seqs := boundary.LatLngSequences(g)
	if len(seqs) != 1 || len(seqs[0]) != 2 {
		t.Fatalf("got %d sequences, want 1 path of 2 points", len(seqs))
	}
	if seqs[0][1].Lat != -26.3 || seqs[0][1].Lng != 28.5 {
		t.Fatalf("second point = %+v, want (-26.3, 28.5)", seqs[0][1])
	}
}

func TestLatLngSequences_Degenerate(t *testing.T) {
	if got := boundary.LatLngSequences(nil); got != nil {
		t.Fatalf("nil geometry returned %v", got)
	}
	if got := boundary.LatLngSequences(&boundary.Geometry{}); got != nil {
		t.Fatalf("empty geometry returned %v", got)
	}

	// Malformed pairs are skipped, not fatal.
	g := &boundary.Geometry{Rings: [][][]float64{{{28.0, -26.2}, {99.0}, {28.1, -26.1}}}}
	seqs := boundary.LatLngSequences(g)
	if len(seqs) != 1 || len(seqs[0]) != 2 {
		t.Fatalf("malformed pair not skipped: %v", seqs)
	}
}

func TestToOrb(t *testing.T) {
	poly := boundary.ToOrb(&boundary.Geometry{
		Rings: [][][]float64{{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}}},
	})
	if _, ok := poly.(orb.Polygon); !ok {
		t.Fatalf("rings converted to %T, want orb.Polygon", poly)
	}

	lines := boundary.ToOrb(&boundary.Geometry{
		Paths: [][][]float64{{{0, 0}, {1, 1}}},
	})
	if _, ok := lines.(orb.MultiLineString); !ok {
		t.Fatalf("paths converted to %T, want orb.MultiLineString", lines)
	}

	if got := boundary.ToOrb(nil); got != nil {
		t.Fatalf("nil geometry converted to %v", got)
	}
}

func TestFeatureCollection(t *testing.T) {
	sections := testSections()
	boundaries := []boundary.Boundary{
		rect("farm", "Farm Portions", 28.0, -26.3, 28.1, -26.1),
		{LayerName: "no geometry", LayerType: "Roads"},
	}

	fc := boundary.FeatureCollection(boundaries, sections)
	if len(fc.Features) != 1 {
		t.Fatalf("got %d features, want 1 (no-geometry boundary skipped)", len(fc.Features))
	}

	props := fc.Features[0].Properties
	if props["layer_id"] != "property_boundaries" {
		t.Errorf("layer_id = %v, want property_boundaries", props["layer_id"])
	}
	if props["color"] != "#00FF00" {
		t.Errorf("color = %v, want #00FF00", props["color"])
	}
	if props["source_api"] != "CSG" {
		t.Errorf("source_api = %v, want CSG", props["source_api"])
	}
}

func TestMapExtent(t *testing.T) {
	boundaries := []boundary.Boundary{
		rect("a", "Erven", 28.0, -26.3, 28.1, -26.1),
		rect("b", "Erven", 28.2, -26.0, 28.4, -25.9),
	}

	bound, ok := boundary.MapExtent(boundaries)
	if !ok {
		t.Fatal("no extent for usable geometry")
	}
	if bound.Min != (orb.Point{28.0, -26.3}) || bound.Max != (orb.Point{28.4, -25.9}) {
		t.Fatalf("extent = %v, want lng 28.0..28.4, lat -26.3..-25.9", bound)
	}

	if _, ok := boundary.MapExtent(nil); ok {
		t.Fatal("extent reported for empty input")
	}
}

func TestTypesPresent(t *testing.T) {
	types := boundary.TypesPresent([]boundary.Boundary{
		{LayerType: "Roads"},
		{LayerType: "Roads"},
		{LayerType: "Erven"},
		{LayerType: ""},
	})

	if len(types) != 2 || !types["Roads"] || !types["Erven"] {
		t.Fatalf("types = %v, want {Roads, Erven}", types)
	}
}
