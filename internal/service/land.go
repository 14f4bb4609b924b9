package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb/geojson"

	"github.com/stirlingbridge/landdev/internal/boundary"
)

// BoundaryFetcher queries the upstream cadastral/environmental services
// for boundary features at a coordinate. Per-layer upstream failures come
// back as error strings alongside whatever features were fetched.
type BoundaryFetcher interface {
	FetchBoundaries(ctx context.Context, lat, lng float64) ([]boundary.Boundary, []string)
}

// LandService orchestrates land identification: fetch boundaries, run the
// relevance/layer engine, persist the project, notify subscribers.
type LandService struct {
	fetcher  BoundaryFetcher
	store    ProjectStore
	sections *SectionService
	bus      *EventBus
}

// NewLandService creates a new land service.
func NewLandService(fetcher BoundaryFetcher, store ProjectStore, sections *SectionService, bus *EventBus) *LandService {
	return &LandService{fetcher: fetcher, store: store, sections: sections, bus: bus}
}

// IdentifyLand fetches boundary data for the coordinate, derives the
// relevant set, layer states and section progress, and stores the result
// as a new project.
func (s *LandService) IdentifyLand(ctx context.Context, name string, at boundary.Coordinate) (LandData, error) {
	if err := ValidateLatLng(at.Latitude, at.Longitude); err != nil {
		return LandData{}, fmt.Errorf("invalid coordinate: %w", err)
	}
	if !InSouthAfrica(at.Latitude, at.Longitude) {
		slog.Warn("coordinates outside South Africa bounds",
			"lat", at.Latitude, "lng", at.Longitude)
	}

	name = SanitizeProjectName(name)
	boundaries, fetchErrs := s.fetcher.FetchBoundaries(ctx, at.Latitude, at.Longitude)

	status := StatusCompleted
	switch {
	case len(boundaries) == 0:
		status = StatusNoDataFound
	case len(fetchErrs) > 0:
		status = StatusProcessing
	}

	now := time.Now().UTC().Format(time.RFC3339)
	project := Project{
		ID:           uuid.NewString(),
		Name:         name,
		Coordinate:   at,
		Created:      now,
		LastModified: now,
		Status:       status,
		Boundaries:   boundaries,
		Errors:       fetchErrs,
	}

	if err := s.store.Create(ctx, project); err != nil {
		// The identification itself succeeded; surface the data anyway and
		// let the caller see the persistence failure in the log.
		slog.Error("failed to persist project", "project", project.ID, "err", err)
	} else if s.bus != nil {
		s.bus.Publish(Event{Resource: "projects", Action: "created", ID: project.ID})
	}

	slog.Info("land identification complete",
		"project", project.ID, "boundaries", len(boundaries), "status", status)

	return s.derive(project), nil
}

// Describe recomputes the engine outputs for a stored project.
func (s *LandService) Describe(ctx context.Context, projectID string) (LandData, error) {
	p, ok, err := s.store.Get(ctx, projectID)
	if err != nil {
		return LandData{}, err
	}
	if !ok {
		return LandData{}, fmt.Errorf("project %q: %w", projectID, ErrNotFound)
	}
	return s.derive(p), nil
}

// GeoJSON renders the project's relevant boundary set as a GeoJSON feature
// collection for the map renderer.
func (s *LandService) GeoJSON(ctx context.Context, projectID string) (*geojson.FeatureCollection, error) {
	p, ok, err := s.store.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("project %q: %w", projectID, ErrNotFound)
	}
	relevant := boundary.Relevant(p.Boundaries, p.Coordinate)
	return boundary.FeatureCollection(relevant, s.sections.Sections()), nil
}

// derive runs the pure engine over a project's stored boundary data.
func (s *LandService) derive(p Project) LandData {
	sections := s.sections.Sections()
	relevant := boundary.Relevant(p.Boundaries, p.Coordinate)
	return LandData{
		Project:         p,
		Relevant:        relevant,
		LayerStates:     boundary.EnabledLayers(relevant, s.sections.AllLayerIDs(), sections),
		Progress:        boundary.SectionProgress(boundary.TypesPresent(p.Boundaries), sections),
		TotalBoundaries: len(p.Boundaries),
	}
}
