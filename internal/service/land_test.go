package service_test

import (
	"context"
	"testing"

	"github.com/stirlingbridge/landdev/internal/boundary"
	"github.com/stirlingbridge/landdev/internal/service"
)

// --- Mock fetcher and store ---

type mockFetcher struct {
	fetchFn func(ctx context.Context, lat, lng float64) ([]boundary.Boundary, []string)
}

func (m *mockFetcher) FetchBoundaries(ctx context.Context, lat, lng float64) ([]boundary.Boundary, []string) {
	if m.fetchFn != nil {
		return m.fetchFn(ctx, lat, lng)
	}
	return nil, nil
}

type memStore struct {
	projects map[string]service.Project
}

func newMemStore() *memStore {
	return &memStore{projects: make(map[string]service.Project)}
}

func (m *memStore) Create(ctx context.Context, p service.Project) error {
	m.projects[p.ID] = p
	return nil
}

func (m *memStore) Get(ctx context.Context, id string) (service.Project, bool, error) {
	p, ok := m.projects[id]
	return p, ok, nil
}

func (m *memStore) List(ctx context.Context, limit, offset int, search string) ([]service.Project, int, error) {
	var out []service.Project
	for _, p := range m.projects {
		out = append(out, p)
	}
	return out, len(out), nil
}

func (m *memStore) Delete(ctx context.Context, id string) error {
	delete(m.projects, id)
	return nil
}

func (m *memStore) Stats(ctx context.Context) (service.ProjectStats, error) {
	return service.ProjectStats{TotalProjects: len(m.projects)}, nil
}

// farmPortion is a polygon around Johannesburg containing (-26.205, 28.045).
func farmPortion() boundary.Boundary {
	return boundary.Boundary{
		LayerName: "Farm Portions_101",
		LayerType: "Farm Portions",
		SourceAPI: "CSG",
		Geometry: &boundary.Geometry{
			Rings: [][][]float64{{
				{28.0, -26.3}, {28.1, -26.3}, {28.1, -26.1}, {28.0, -26.1}, {28.0, -26.3},
			}},
		},
	}
}

// distantRoad is a polyline that never contains any point.
func distantRoad() boundary.Boundary {
	return boundary.Boundary{
		LayerName: "Roads_7",
		LayerType: "Roads",
		SourceAPI: "SANBI_BGIS",
		Geometry: &boundary.Geometry{
			Paths: [][][]float64{{{29.0, -25.0}, {29.5, -25.5}}},
		},
	}
}

func newLandService(t *testing.T, fetcher *mockFetcher, store service.ProjectStore) *service.LandService {
	t.Helper()
	sections, err := service.NewSectionService("")
	if err != nil {
		t.Fatal(err)
	}
	return service.NewLandService(fetcher, store, sections, service.NewEventBus())
}

// --- Tests ---

func TestIdentifyLand_EndToEnd(t *testing.T) {
	fetcher := &mockFetcher{
		fetchFn: func(ctx context.Context, lat, lng float64) ([]boundary.Boundary, []string) {
			return []boundary.Boundary{farmPortion(), distantRoad()}, nil
		},
	}
	store := newMemStore()
	svc := newLandService(t, fetcher, store)

	data, err := svc.IdentifyLand(context.Background(), "Riverside Estate",
		boundary.Coordinate{Latitude: -26.205, Longitude: 28.045})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if data.Project.Status != service.StatusCompleted {
		t.Errorf("status = %q, want completed", data.Project.Status)
	}
	if data.TotalBoundaries != 2 {
		t.Errorf("totalBoundaries = %d, want 2", data.TotalBoundaries)
	}

	// Only the containing Farm Portions polygon is relevant.
	if len(data.Relevant) != 1 || data.Relevant[0].LayerType != "Farm Portions" {
		t.Fatalf("relevant = %v, want only the Farm Portions boundary", data.Relevant)
	}

	// The farm enables property_boundaries; everything else stays off.
	if !data.LayerStates["property_boundaries"] {
		t.Error("property_boundaries not enabled")
	}
	if data.LayerStates["roads_existing"] {
		t.Error("roads_existing enabled by a non-relevant boundary")
	}

	// State map covers every configured layer.
	if len(data.LayerStates) != 9 {
		t.Errorf("layer state map has %d entries, want 9", len(data.LayerStates))
	}

	if len(store.projects) != 1 {
		t.Fatalf("stored %d projects, want 1", len(store.projects))
	}
}

func TestIdentifyLand_InvalidCoordinate(t *testing.T) {
	svc := newLandService(t, &mockFetcher{}, newMemStore())

	_, err := svc.IdentifyLand(context.Background(), "Bad",
		boundary.Coordinate{Latitude: 91, Longitude: 28})
	if err == nil {
		t.Fatal("expected error for latitude out of range")
	}
}

func TestIdentifyLand_NoData(t *testing.T) {
	svc := newLandService(t, &mockFetcher{}, newMemStore())

	data, err := svc.IdentifyLand(context.Background(), "Nowhere",
		boundary.Coordinate{Latitude: -26.2, Longitude: 28.0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if data.Project.Status != service.StatusNoDataFound {
		t.Errorf("status = %q, want no_data_found", data.Project.Status)
	}
	if len(data.Relevant) != 0 {
		t.Errorf("relevant = %v, want empty", data.Relevant)
	}
	for id, enabled := range data.LayerStates {
		if enabled {
			t.Errorf("layer %q enabled with no data", id)
		}
	}
}

func TestIdentifyLand_PartialErrors(t *testing.T) {
	fetcher := &mockFetcher{
		fetchFn: func(ctx context.Context, lat, lng float64) ([]boundary.Boundary, []string) {
			return []boundary.Boundary{farmPortion()}, []string{"SANBI/contours_north: timeout"}
		},
	}
	svc := newLandService(t, fetcher, newMemStore())

	data, err := svc.IdentifyLand(context.Background(), "Partial",
		boundary.Coordinate{Latitude: -26.205, Longitude: 28.045})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if data.Project.Status != service.StatusProcessing {
		t.Errorf("status = %q, want processing for partial upstream failure", data.Project.Status)
	}
	if len(data.Project.Errors) != 1 {
		t.Errorf("errors = %v, want the upstream error recorded", data.Project.Errors)
	}
}

func TestIdentifyLand_PublishesEvent(t *testing.T) {
	fetcher := &mockFetcher{
		fetchFn: func(ctx context.Context, lat, lng float64) ([]boundary.Boundary, []string) {
			return []boundary.Boundary{farmPortion()}, nil
		},
	}
	sections, err := service.NewSectionService("")
	if err != nil {
		t.Fatal(err)
	}
	bus := service.NewEventBus()
	ch := bus.Subscribe()
	defer bus.Unsubscribe(ch)

	svc := service.NewLandService(fetcher, newMemStore(), sections, bus)
	data, err := svc.IdentifyLand(context.Background(), "Evented",
		boundary.Coordinate{Latitude: -26.205, Longitude: 28.045})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	select {
	case ev := <-ch:
		if ev.Resource != "projects" || ev.Action != "created" || ev.ID != data.Project.ID {
			t.Errorf("event = %+v, want projects/created/%s", ev, data.Project.ID)
		}
	default:
		t.Fatal("no event published for created project")
	}
}

func TestDescribe_RoundTrip(t *testing.T) {
	fetcher := &mockFetcher{
		fetchFn: func(ctx context.Context, lat, lng float64) ([]boundary.Boundary, []string) {
			return []boundary.Boundary{farmPortion(), distantRoad()}, nil
		},
	}
	store := newMemStore()
	svc := newLandService(t, fetcher, store)

	created, err := svc.IdentifyLand(context.Background(), "Round Trip",
		boundary.Coordinate{Latitude: -26.205, Longitude: 28.045})
	if err != nil {
		t.Fatal(err)
	}

	described, err := svc.Describe(context.Background(), created.Project.ID)
	if err != nil {
		t.Fatalf("describe: %v", err)
	}
	if len(described.Relevant) != len(created.Relevant) {
		t.Errorf("describe relevant = %d boundaries, identify had %d",
			len(described.Relevant), len(created.Relevant))
	}
}

func TestGeoJSON(t *testing.T) {
	fetcher := &mockFetcher{
		fetchFn: func(ctx context.Context, lat, lng float64) ([]boundary.Boundary, []string) {
			return []boundary.Boundary{farmPortion(), distantRoad()}, nil
		},
	}
	store := newMemStore()
	svc := newLandService(t, fetcher, store)

	created, err := svc.IdentifyLand(context.Background(), "GeoJSON",
		boundary.Coordinate{Latitude: -26.205, Longitude: 28.045})
	if err != nil {
		t.Fatal(err)
	}

	fc, err := svc.GeoJSON(context.Background(), created.Project.ID)
	if err != nil {
		t.Fatalf("geojson: %v", err)
	}
	if len(fc.Features) != 1 {
		t.Fatalf("feature collection has %d features, want 1 relevant boundary", len(fc.Features))
	}
	if got := fc.Features[0].Properties["layer_id"]; got != "property_boundaries" {
		t.Errorf("layer_id = %v, want property_boundaries", got)
	}
}
