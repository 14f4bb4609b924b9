package boundary

// Mapping is the resolved set of layer ids for a boundary type. A boundary
// whose type matches nothing is explicitly Unmapped rather than silently
// carrying an empty id; unmapped boundaries stay in the relevant set but
// contribute to no layer toggle.
type Mapping struct {
	LayerIDs []string
}

// Unmapped reports whether the type resolved to no configured layer.
func (m Mapping) Unmapped() bool { return len(m.LayerIDs) == 0 }

// First returns the primary layer id, or "" when unmapped. Most consumers
// only use the first id.
func (m Mapping) First() string {
	if len(m.LayerIDs) == 0 {
		return ""
	}
	return m.LayerIDs[0]
}

// staticLayerIDs maps the high-traffic boundary types straight to their
// layer ids. Types absent here fall back to a scan of the configured
// sections.
var staticLayerIDs = map[string][]string{
	"Farm Portions":             {"property_boundaries"},
	"Erven":                     {"property_boundaries"},
	"Holdings":                  {"property_boundaries"},
	"Public Places":             {"property_boundaries"},
	"Roads":                     {"roads_existing"},
	"Water Bodies":              {"water_bodies"},
	"Generated Contours":        {"generated_contours"},
	"Environmental Constraints": {"environmental_constraints"},
}

// MapLayerType resolves a boundary type to layer ids: first via the static
// table, then by scanning the configured sections for a layer whose Type
// matches (first match in section/layer order). Unknown types yield an
// Unmapped result, never an error.
func MapLayerType(layerType string, sections []Section) Mapping {
	if ids, ok := staticLayerIDs[layerType]; ok {
		return Mapping{LayerIDs: ids}
	}
	for _, s := range sections {
		for _, l := range s.Layers {
			if l.Type == layerType {
				return Mapping{LayerIDs: []string{l.ID}}
			}
		}
	}
	return Mapping{}
}
