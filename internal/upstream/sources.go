// Package upstream queries the public Esri map services that hold South
// African cadastral and environmental data.
package upstream

import (
	"fmt"
	"math"
	"time"

	"github.com/stirlingbridge/landdev/internal/boundary"
)

// Layer is one queryable layer on an upstream map service.
type Layer struct {
	// Key identifies the layer in logs and error strings.
	Key string
	// ID is the Esri layer id on the service.
	ID int
	// TypeName is the boundary type tag put on fetched features.
	TypeName string
	// UseQuery selects the per-layer query endpoint instead of identify.
	// Contour layers need it: identify misses features at low tolerances.
	UseQuery bool
	// Distance is the query search radius in meters (query mode only).
	Distance int
	// OutFields limits the attributes returned (query mode only).
	OutFields string
	// Name derives the feature's layer name from its attributes.
	Name func(attrs map[string]any) string
	// Keep filters fetched features; nil keeps everything.
	Keep func(g *boundary.Geometry, lat, lng float64) bool
}

// Source is one Esri map service plus the layers queried on it.
type Source struct {
	Name string
	// BaseURL is the MapServer root, without a trailing slash.
	BaseURL string
	// API is the source_api tag on fetched boundaries.
	API string
	// Extent is the half-width of the identify mapExtent in degrees.
	Extent float64
	// TTL bounds how long responses are served from cache.
	TTL time.Duration
	Layers []Layer
}

// DefaultSources returns the production upstream configuration: the Chief
// Surveyor General cadastral service and the SANBI BGIS environmental
// services.
func DefaultSources() []Source {
	return []Source{
		{
			Name:    "CSG",
			BaseURL: "https://dffeportal.environment.gov.za/hosting/rest/services/CSG_Cadaster/CSG_Cadastral_Data/MapServer",
			API:     "CSG",
			Extent:  0.01,
			TTL:     10 * time.Minute,
			Layers: []Layer{
				{Key: "farm_portions", ID: 1, TypeName: "Farm Portions", Name: objectIDName("Farm Portions")},
				{Key: "erven", ID: 2, TypeName: "Erven", Name: objectIDName("Erven")},
				{Key: "holdings", ID: 3, TypeName: "Holdings", Name: objectIDName("Holdings")},
				{Key: "public_places", ID: 4, TypeName: "Public Places", Name: objectIDName("Public Places")},
			},
		},
		{
			Name:    "SANBI",
			BaseURL: "https://bgismaps.sanbi.org/server/rest/services/BGIS_Projects/Basedata_rivers_contours/MapServer",
			API:     "SANBI_BGIS",
			Extent:  0.005,
			TTL:     15 * time.Minute,
			Layers: []Layer{
				{Key: "contours_north", ID: 6, TypeName: "Contours", UseQuery: true,
					Distance: 500, OutFields: "HEIGHT,OBJECTID", Name: contourName},
				{Key: "contours_south", ID: 7, TypeName: "Contours", UseQuery: true,
					Distance: 500, OutFields: "HEIGHT,OBJECTID", Name: contourName},
				{Key: "rivers", ID: 4, TypeName: "Water Bodies",
					Name: objectIDName("River"), Keep: keepLocalWaterBody},
			},
		},
		{
			Name:    "SANBI-Gauteng",
			BaseURL: "https://bgismaps.sanbi.org/server/rest/services/2024_Gauteng_CBA_Map/MapServer",
			API:     "SANBI_BGIS_Gauteng",
			Extent:  0.005,
			TTL:     15 * time.Minute,
			Layers: []Layer{
				{Key: "protected_areas", ID: 0, TypeName: "Environmental Constraints", Name: conservationName},
			},
		},
	}
}

// objectIDName names features "<prefix>_<OBJECTID>".
func objectIDName(prefix string) func(attrs map[string]any) string {
	return func(attrs map[string]any) string {
		return fmt.Sprintf("%s_%s", prefix, attrString(attrs, "OBJECTID"))
	}
}

// contourName names contour features by elevation, e.g. "Contour 1520m".
func contourName(attrs map[string]any) string {
	return fmt.Sprintf("Contour %sm", attrString(attrs, "HEIGHT"))
}

// conservationName names protected-area features by their CBA category.
func conservationName(attrs map[string]any) string {
	protection := attrString(attrs, "CBA_ESA")
	if protection == "unknown" {
		protection = attrString(attrs, "CBACat")
	}
	if protection == "unknown" {
		protection = "Conservation Area"
	}
	return fmt.Sprintf("Conservation_%s_%s", protection, attrString(attrs, "OBJECTID"))
}

func attrString(attrs map[string]any, key string) string {
	v, ok := attrs[key]
	if !ok || v == nil {
		return "unknown"
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%v", t)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Size limits for river/water-body features, in degrees. The rivers layer
// sometimes returns entire catchments; anything bigger than a local water
// body, or centered far from the query point, gets dropped.
const (
	maxWaterBodySpan   = 0.045 // ~5 km
	maxWaterBodyOffset = 0.018 // ~2 km from the query point
	maxRiverLength     = 0.18  // ~20 km of polyline
)

func keepLocalWaterBody(g *boundary.Geometry, lat, lng float64) bool {
	if g == nil {
		return false
	}

	if len(g.Rings) > 0 {
		minLng, minLat := math.Inf(1), math.Inf(1)
		maxLng, maxLat := math.Inf(-1), math.Inf(-1)
		for _, ring := range g.Rings {
			for _, pt := range ring {
				if len(pt) < 2 {
					continue
				}
				minLng = math.Min(minLng, pt[0])
				maxLng = math.Max(maxLng, pt[0])
				minLat = math.Min(minLat, pt[1])
				maxLat = math.Max(maxLat, pt[1])
			}
		}
		if math.IsInf(minLng, 1) {
			return false
		}
		if maxLng-minLng > maxWaterBodySpan || maxLat-minLat > maxWaterBodySpan {
			return false
		}
		if math.Abs((minLng+maxLng)/2-lng) > maxWaterBodyOffset ||
			math.Abs((minLat+maxLat)/2-lat) > maxWaterBodyOffset {
			return false
		}
		return true
	}

	if len(g.Paths) > 0 {
		var length float64
		for _, path := range g.Paths {
			for i := 0; i+1 < len(path); i++ {
				if len(path[i]) < 2 || len(path[i+1]) < 2 {
					continue
				}
				length += math.Hypot(path[i+1][0]-path[i][0], path[i+1][1]-path[i][1])
			}
		}
		return length <= maxRiverLength
	}

	return false
}
