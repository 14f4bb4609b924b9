package boundary

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// LatLngSequences converts ring- or path-based geometry into ordered
// (latitude, longitude) sequences for geometric tests and map renderers.
// Ring order, path order, and point order are preserved; pairs with fewer
// than two values are skipped. Absent or empty geometry yields nil.
//
// Ring closure and minimum point counts are not validated here; that is
// the caller's responsibility.
func LatLngSequences(g *Geometry) [][]LatLng {
	if g == nil {
		return nil
	}
	src := g.Rings
	if len(src) == 0 {
		src = g.Paths
	}
	if len(src) == 0 {
		return nil
	}

	out := make([][]LatLng, 0, len(src))
	for _, seq := range src {
		pts := make([]LatLng, 0, len(seq))
		for _, pair := range seq {
			if len(pair) < 2 {
				continue
			}
			pts = append(pts, LatLng{Lat: pair[1], Lng: pair[0]})
		}
		out = append(out, pts)
	}
	return out
}

// outerRing returns the first (outer) ring in (lat, lng) order, or nil when
// the geometry has no rings.
func outerRing(g *Geometry) []LatLng {
	if g == nil || len(g.Rings) == 0 {
		return nil
	}
	seqs := LatLngSequences(g)
	if len(seqs) == 0 {
		return nil
	}
	return seqs[0]
}

// ToOrb converts ring geometry to an orb.Polygon and path geometry to an
// orb.MultiLineString. Returns nil for absent or empty geometry.
func ToOrb(g *Geometry) orb.Geometry {
	if g == nil {
		return nil
	}
	if len(g.Rings) > 0 {
		poly := make(orb.Polygon, 0, len(g.Rings))
		for _, ring := range g.Rings {
			r := make(orb.Ring, 0, len(ring))
			for _, pair := range ring {
				if len(pair) < 2 {
					continue
				}
				r = append(r, orb.Point{pair[0], pair[1]})
			}
			poly = append(poly, r)
		}
		return poly
	}
	if len(g.Paths) > 0 {
		mls := make(orb.MultiLineString, 0, len(g.Paths))
		for _, path := range g.Paths {
			ls := make(orb.LineString, 0, len(path))
			for _, pair := range path {
				if len(pair) < 2 {
					continue
				}
				ls = append(ls, orb.Point{pair[0], pair[1]})
			}
			mls = append(mls, ls)
		}
		return mls
	}
	return nil
}

// FeatureCollection builds a GeoJSON feature collection for the map
// renderer. Each feature carries the upstream properties plus layer_name,
// layer_type, source_api, and, when the type maps to a configured layer,
// layer_id and color. Boundaries without usable geometry are skipped.
func FeatureCollection(boundaries []Boundary, sections []Section) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, b := range boundaries {
		geom := ToOrb(b.Geometry)
		if geom == nil {
			continue
		}

		f := geojson.NewFeature(geom)
		for k, v := range b.Properties {
			f.Properties[k] = v
		}
		f.Properties["layer_name"] = b.LayerName
		f.Properties["layer_type"] = b.LayerType
		f.Properties["source_api"] = b.SourceAPI

		if m := MapLayerType(b.LayerType, sections); !m.Unmapped() {
			f.Properties["layer_id"] = m.First()
			if color := layerColor(sections, m.First()); color != "" {
				f.Properties["color"] = color
			}
		}
		fc.Append(f)
	}
	return fc
}

// MapExtent returns the bounding box of all usable geometry, for fitting
// the map view. ok is false when no boundary has usable geometry.
func MapExtent(boundaries []Boundary) (bound orb.Bound, ok bool) {
	for _, b := range boundaries {
		geom := ToOrb(b.Geometry)
		if geom == nil {
			continue
		}
		gb := geom.Bound()
		if !ok {
			bound = gb
			ok = true
			continue
		}
		bound = bound.Union(gb)
	}
	return bound, ok
}

// TypesPresent collects the set of boundary types present in the data.
func TypesPresent(boundaries []Boundary) map[string]bool {
	types := make(map[string]bool, len(boundaries))
	for _, b := range boundaries {
		if b.LayerType != "" {
			types[b.LayerType] = true
		}
	}
	return types
}

func layerColor(sections []Section, layerID string) string {
	for _, s := range sections {
		for _, l := range s.Layers {
			if l.ID == layerID {
				return l.Color
			}
		}
	}
	return ""
}
