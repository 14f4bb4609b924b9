package boundary

import "math"

// Relevant reduces a full boundary list to the subset relevant to the
// search coordinate.
//
// First every boundary whose outer ring (first ring, at least 3 points)
// contains the coordinate is collected; containment is evaluated against
// the outer ring only, holes are not subtracted. If any boundary contains
// the coordinate, exactly that set is returned in input order.
//
// Otherwise, for a non-empty input, the single boundary whose outer-ring
// centroid (unweighted arithmetic mean, distance in raw degrees) is
// closest to the coordinate is returned; ties keep the earliest input.
// Boundaries without a usable ring are excluded from the fallback, and if
// none has one the result is empty.
//
// The function is pure: fixed inputs always produce the same result.
func Relevant(boundaries []Boundary, at Coordinate) []Boundary {
	pt := LatLng{Lat: at.Latitude, Lng: at.Longitude}

	var containing []Boundary
	for _, b := range boundaries {
		ring := outerRing(b.Geometry)
		if len(ring) >= 3 && PointInRing(pt, ring) {
			containing = append(containing, b)
		}
	}
	if len(containing) > 0 {
		return containing
	}
	if len(boundaries) == 0 {
		return nil
	}

	// Nearest-centroid fallback. Strict less-than keeps the earliest
	// boundary on ties and never selects a NaN distance.
	nearest := -1
	nearestDist := math.Inf(1)
	for i, b := range boundaries {
		ring := outerRing(b.Geometry)
		if len(ring) == 0 {
			continue
		}
		d := distance(centroid(ring), pt)
		if d < nearestDist {
			nearest = i
			nearestDist = d
		}
	}
	if nearest < 0 {
		return nil
	}
	return []Boundary{boundaries[nearest]}
}

// centroid is the unweighted arithmetic mean of the ring's points. It is
// not an area-weighted centroid; for the small search radii this engine
// serves, the approximation is accepted.
func centroid(ring []LatLng) LatLng {
	var sumLat, sumLng float64
	for _, p := range ring {
		sumLat += p.Lat
		sumLng += p.Lng
	}
	n := float64(len(ring))
	return LatLng{Lat: sumLat / n, Lng: sumLng / n}
}

// distance is Euclidean distance in raw degree units, with no projection
// correction.
func distance(a, b LatLng) float64 {
	return math.Hypot(a.Lat-b.Lat, a.Lng-b.Lng)
}
