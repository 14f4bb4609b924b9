// Package service contains business logic for the landdev platform.
package service

import (
	"github.com/stirlingbridge/landdev/internal/boundary"
)

// Project statuses.
const (
	StatusCompleted   = "completed"
	StatusProcessing  = "processing"
	StatusNoDataFound = "no_data_found"
)

// Project is a land-development project anchored at a coordinate, together
// with the boundary data fetched for it.
type Project struct {
	ID           string              `json:"id,omitempty" doc:"Unique project identifier"`
	Name         string              `json:"name" required:"true" minLength:"1" maxLength:"200" doc:"Project name" example:"Riverside Estate"`
	Coordinate   boundary.Coordinate `json:"coordinates" doc:"Anchor coordinate"`
	Created      string              `json:"created" doc:"Creation timestamp (RFC 3339)"`
	LastModified string              `json:"lastModified" doc:"Last modification timestamp (RFC 3339)"`
	Status       string              `json:"status" enum:"completed,processing,no_data_found" doc:"Data-fetch status"`
	Boundaries   []boundary.Boundary `json:"boundaries,omitempty" doc:"Boundary features fetched for the project"`
	Errors       []string            `json:"errors,omitempty" doc:"Upstream errors collected during the fetch"`
}

// LandData is the full result of identifying land at a coordinate: the
// stored project plus everything the map and sidebar need.
type LandData struct {
	Project         Project                  `json:"project" doc:"Stored project"`
	Relevant        []boundary.Boundary      `json:"relevant" doc:"Boundaries relevant to the project coordinate"`
	LayerStates     boundary.LayerStateMap   `json:"layerStates" doc:"Default enabled flag per configured layer id"`
	Progress        []boundary.SectionStatus `json:"progress" doc:"Completion percentage per section"`
	TotalBoundaries int                      `json:"totalBoundaries" doc:"Total boundary count fetched"`
}

// BoundaryType describes one boundary type for the legend/toggle UI.
type BoundaryType struct {
	Type    string  `json:"type" doc:"Boundary type tag" example:"Farm Portions"`
	Color   string  `json:"color" doc:"Render color (CSS)" example:"#00FF00"`
	Weight  float64 `json:"weight" doc:"Render weight, 0-1"`
	Enabled bool    `json:"enabled" doc:"Whether the type is available"`
}

// ProjectStats summarizes the stored projects.
type ProjectStats struct {
	TotalProjects   int            `json:"totalProjects" doc:"Number of stored projects"`
	TotalBoundaries int            `json:"totalBoundaries" doc:"Boundary features across all projects"`
	ByStatus        map[string]int `json:"byStatus" doc:"Project count per status"`
}
