package boundary

// PointInRing reports whether pt lies inside the polygon ring using the
// even-odd ray-casting rule. The ring is treated as closed whether or not
// the first point is repeated at the end. A point exactly on an edge may
// report either way; callers must not rely on edge behavior.
//
// Rings with fewer than 3 points are the caller's responsibility to reject;
// this function stays total and simply reports false for them.
func PointInRing(pt LatLng, ring []LatLng) bool {
	inside := false
	n := len(ring)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		xi, yi := ring[i].Lng, ring[i].Lat
		xj, yj := ring[j].Lng, ring[j].Lat

		// The crossing guard guarantees yi != yj, so the division is safe.
		crosses := (yi > pt.Lat) != (yj > pt.Lat)
		if crosses && pt.Lng < (xj-xi)*(pt.Lat-yi)/(yj-yi)+xi {
			inside = !inside
		}
	}
	return inside
}
