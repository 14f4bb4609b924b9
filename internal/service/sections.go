package service

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/stirlingbridge/landdev/internal/boundary"
)

// SectionService holds the layer/section catalog. The catalog is loaded
// once at startup and is immutable for the process lifetime; the engine
// receives it as plain arguments.
type SectionService struct {
	sections []boundary.Section
	allIDs   []string
}

// sectionsFile is the on-disk catalog shape.
type sectionsFile struct {
	Sections []boundary.Section `yaml:"sections"`
}

// NewSectionService loads the section catalog from a YAML file. A missing
// or unreadable file falls back to the built-in default catalog; path ""
// skips the file entirely.
func NewSectionService(path string) (*SectionService, error) {
	sections := defaultSections()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("reading sections file: %w", err)
			}
		} else {
			var f sectionsFile
			if err := yaml.Unmarshal(data, &f); err != nil {
				return nil, fmt.Errorf("parsing sections file %s: %w", path, err)
			}
			if len(f.Sections) > 0 {
				sections = f.Sections
			}
		}
	}

	var ids []string
	for _, s := range sections {
		for _, l := range s.Layers {
			ids = append(ids, l.ID)
		}
	}

	return &SectionService{sections: sections, allIDs: ids}, nil
}

// Sections returns the configured sections in display order. Callers treat
// the result as read-only.
func (s *SectionService) Sections() []boundary.Section {
	return s.sections
}

// AllLayerIDs returns every configured layer id, in section/layer order.
func (s *SectionService) AllLayerIDs() []string {
	return s.allIDs
}

// BoundaryTypes returns the boundary type catalog for the legend UI.
func (s *SectionService) BoundaryTypes() []BoundaryType {
	types := make([]BoundaryType, 0, len(typeCatalog))
	for _, t := range typeCatalog {
		t.Enabled = true
		types = append(types, t)
	}
	return types
}

// typeCatalog mirrors the upstream services' boundary types with their
// render colors and weights, in legend order.
var typeCatalog = []BoundaryType{
	{Type: "Farm Portions", Color: "#00FF00", Weight: 0.6},
	{Type: "Erven", Color: "#0000FF", Weight: 0.4},
	{Type: "Holdings", Color: "#FFFF00", Weight: 0.5},
	{Type: "Public Places", Color: "#FF00FF", Weight: 0.3},
	{Type: "Contours", Color: "#8B4513", Weight: 0.2},
	{Type: "Water Bodies", Color: "#00BFFF", Weight: 0.8},
	{Type: "Environmental Constraints", Color: "#228B22", Weight: 0.7},
	{Type: "Roads", Color: "#FF6347", Weight: 0.9},
	{Type: "Administrative Boundaries", Color: "#800080", Weight: 0.5},
	{Type: "Infrastructure", Color: "#FFA500", Weight: 0.6},
	{Type: "Demographics", Color: "#808080", Weight: 0.4},
}

// defaultSections is the built-in catalog used when no sections file is
// configured.
func defaultSections() []boundary.Section {
	return []boundary.Section{
		{
			Name:  "Base Information",
			Color: "#00FF00",
			Layers: []boundary.LayerDefinition{
				{ID: "property_boundaries", Name: "Property Boundaries", Type: "Farm Portions", Color: "#00FF00"},
				{ID: "admin_boundaries", Name: "Administrative Boundaries", Type: "Administrative Boundaries", Color: "#800080"},
				{ID: "contours_existing", Name: "Existing Contours", Type: "Contours", Color: "#8B4513"},
			},
		},
		{
			Name:  "Environmental",
			Color: "#228B22",
			Layers: []boundary.LayerDefinition{
				{ID: "water_bodies", Name: "Water Bodies", Type: "Water Bodies", Color: "#00BFFF"},
				{ID: "environmental_constraints", Name: "Environmental Constraints", Type: "Environmental Constraints", Color: "#228B22"},
			},
		},
		{
			Name:  "Civil Services",
			Color: "#FF6347",
			Layers: []boundary.LayerDefinition{
				{ID: "roads_existing", Name: "Existing Roads", Type: "Roads", Color: "#FF6347", Stage: "stage_1"},
				{ID: "generated_contours", Name: "Generated Contours", Type: "Generated Contours", Color: "#A0522D", Stage: "stage_1", Generateable: true},
			},
		},
		{
			Name:  "Planning",
			Color: "#FFA500",
			Layers: []boundary.LayerDefinition{
				{ID: "urban_areas", Name: "Urban Areas", Type: "Urban Planning", Color: "#FFA500"},
				{ID: "demographics", Name: "Demographics", Type: "Demographics", Color: "#808080"},
			},
		},
	}
}
