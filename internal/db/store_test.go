//go:build integration

package db_test

import (
	"context"
	"testing"

	"github.com/stirlingbridge/landdev/internal/boundary"
	"github.com/stirlingbridge/landdev/internal/db"
	"github.com/stirlingbridge/landdev/internal/service"
)

// Run with: go test -tags integration ./internal/db/

func newTestStore(t *testing.T) *db.Store {
	t.Helper()
	conn, err := db.Open(db.Config{DataDir: t.TempDir(), DBName: "landdev_test"})
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	store := db.NewStore(conn)
	t.Cleanup(func() { store.Close() })
	return store
}

func testProject(id, name, created string) service.Project {
	return service.Project{
		ID:           id,
		Name:         name,
		Coordinate:   boundary.Coordinate{Latitude: -26.2, Longitude: 28.0},
		Created:      created,
		LastModified: created,
		Status:       service.StatusCompleted,
		Boundaries: []boundary.Boundary{{
			LayerName: "Farm Portions_101",
			LayerType: "Farm Portions",
			SourceAPI: "CSG",
			Geometry: &boundary.Geometry{
				Rings: [][][]float64{{{28.0, -26.3}, {28.1, -26.3}, {28.1, -26.1}, {28.0, -26.3}}},
			},
		}},
	}
}

func TestStore_CreateGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	want := testProject("p1", "Riverside", "2026-01-01T00:00:00Z")
	if err := store.Create(ctx, want); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, ok, err := store.Get(ctx, "p1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok {
		t.Fatal("created project not found")
	}
	if got.Name != want.Name || got.Status != want.Status {
		t.Errorf("got %+v, want %+v", got, want)
	}
	if len(got.Boundaries) != 1 || got.Boundaries[0].LayerType != "Farm Portions" {
		t.Errorf("boundaries not round-tripped: %+v", got.Boundaries)
	}

	if _, ok, err := store.Get(ctx, "absent"); err != nil || ok {
		t.Errorf("Get(absent) = ok %v, err %v; want not found", ok, err)
	}
}

func TestStore_ListOrderAndSearch(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, p := range []service.Project{
		testProject("p1", "Alpha Farm", "2026-01-01T00:00:00Z"),
		testProject("p2", "Beta Estate", "2026-01-02T00:00:00Z"),
		testProject("p3", "Alpha Estate", "2026-01-03T00:00:00Z"),
	} {
		if err := store.Create(ctx, p); err != nil {
			t.Fatalf("create %s: %v", p.ID, err)
		}
	}

	projects, total, err := store.List(ctx, 10, 0, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 3 || len(projects) != 3 {
		t.Fatalf("list returned %d/%d, want 3/3", len(projects), total)
	}
	if projects[0].ID != "p3" {
		t.Errorf("first project = %s, want newest (p3)", projects[0].ID)
	}

	projects, total, err = store.List(ctx, 10, 0, "alpha")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if total != 2 {
		t.Errorf("search total = %d, want 2 case-insensitive matches", total)
	}
	for _, p := range projects {
		if p.Name != "Alpha Farm" && p.Name != "Alpha Estate" {
			t.Errorf("search matched %q", p.Name)
		}
	}

	projects, total, err = store.List(ctx, 1, 1, "")
	if err != nil {
		t.Fatalf("paged list: %v", err)
	}
	if total != 3 || len(projects) != 1 || projects[0].ID != "p2" {
		t.Errorf("page 2 of size 1 = %+v (total %d), want [p2] total 3", projects, total)
	}
}

func TestStore_Delete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Create(ctx, testProject("p1", "Doomed", "2026-01-01T00:00:00Z")); err != nil {
		t.Fatal(err)
	}
	if err := store.Delete(ctx, "p1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := store.Get(ctx, "p1"); ok {
		t.Error("project still present after delete")
	}
	if err := store.Delete(ctx, "p1"); err == nil {
		t.Error("deleting a missing project did not error")
	}
}

func TestStore_Stats(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	a := testProject("p1", "One", "2026-01-01T00:00:00Z")
	b := testProject("p2", "Two", "2026-01-02T00:00:00Z")
	b.Status = service.StatusNoDataFound
	b.Boundaries = nil
	for _, p := range []service.Project{a, b} {
		if err := store.Create(ctx, p); err != nil {
			t.Fatal(err)
		}
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalProjects != 2 {
		t.Errorf("total projects = %d, want 2", stats.TotalProjects)
	}
	if stats.ByStatus[service.StatusCompleted] != 1 || stats.ByStatus[service.StatusNoDataFound] != 1 {
		t.Errorf("by status = %v", stats.ByStatus)
	}
	if stats.TotalBoundaries != 1 {
		t.Errorf("total boundaries = %d, want 1", stats.TotalBoundaries)
	}
}
