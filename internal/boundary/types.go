// Package boundary implements the boundary-relevance and layer-mapping
// engine: given the raw boundary features returned by the upstream
// cadastral services and a single search coordinate, it decides which
// boundaries are geographically relevant, which map layer each boundary
// belongs to, which layer toggles should be enabled by default, and how
// complete each configured section of layers is.
//
// Every function in this package is pure: inputs are read-only, there is
// no I/O and no shared state, and malformed geometry degrades to empty
// results instead of errors.
package boundary

// Coordinate is a WGS 84 geographic coordinate.
type Coordinate struct {
	Latitude  float64 `json:"latitude" required:"true" minimum:"-90" maximum:"90" doc:"Latitude in decimal degrees" example:"-26.205"`
	Longitude float64 `json:"longitude" required:"true" minimum:"-180" maximum:"180" doc:"Longitude in decimal degrees" example:"28.045"`
}

// LatLng is a single point in (latitude, longitude) order, the order map
// renderers and the containment test work in.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Geometry is Esri-style feature geometry: closed rings for polygons or
// open paths for polylines. Coordinates are [longitude, latitude] pairs as
// returned by the upstream services.
type Geometry struct {
	Rings [][][]float64 `json:"rings,omitempty" doc:"Polygon rings, first ring is the outer boundary"`
	Paths [][][]float64 `json:"paths,omitempty" doc:"Polyline paths"`
}

// Boundary is a single geographic feature returned by an upstream data
// service. Boundaries are read-only inputs; the engine never mutates them.
type Boundary struct {
	LayerName  string         `json:"layer_name" doc:"Feature name" example:"Farm Portions_12345"`
	LayerType  string         `json:"layer_type" doc:"Semantic boundary type" example:"Farm Portions"`
	Geometry   *Geometry      `json:"geometry,omitempty" doc:"Esri ring/path geometry"`
	Properties map[string]any `json:"properties,omitempty" doc:"Upstream attributes, opaque to the engine"`
	SourceAPI  string         `json:"source_api" doc:"Upstream service that produced the feature" example:"CSG"`
}

// LayerDefinition is one toggleable map overlay.
type LayerDefinition struct {
	ID           string `json:"id" yaml:"id" doc:"Unique layer identifier" example:"property_boundaries"`
	Name         string `json:"name" yaml:"name" doc:"Display name" example:"Property Boundaries"`
	Type         string `json:"type" yaml:"type" doc:"Boundary type this layer draws" example:"Farm Portions"`
	Color        string `json:"color" yaml:"color" doc:"Render color (CSS)" example:"#00FF00"`
	Stage        string `json:"stage,omitempty" yaml:"stage,omitempty" doc:"Project stage this layer belongs to"`
	Generateable bool   `json:"generateable,omitempty" yaml:"generateable,omitempty" doc:"Whether the layer can be generated on demand"`
}

// Section is a named group of layers shown together in the dashboard
// sidebar. Sections partition the configured layers; a layer belongs to
// exactly one section.
type Section struct {
	Name   string            `json:"name" yaml:"name" doc:"Section name" example:"Base Information"`
	Color  string            `json:"color" yaml:"color" doc:"Section accent color (CSS)"`
	Layers []LayerDefinition `json:"layers" yaml:"layers" doc:"Layers in this section, in display order"`
}

// LayerStateMap maps every configured layer id to its enabled flag. After
// EnabledLayers the domain always equals the full configured id set.
type LayerStateMap map[string]bool

// SectionStatus is the completion summary for one section.
type SectionStatus struct {
	Name            string  `json:"name" doc:"Section name"`
	Percentage      int     `json:"percentage" minimum:"0" maximum:"100" doc:"Completion percentage"`
	AvailableLayers float64 `json:"availableLayers" doc:"Credited layer count, including partial credit"`
	TotalLayers     int     `json:"totalLayers" doc:"Configured layer count for the section"`
}
