package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrNotFound reports a lookup for a project that does not exist.
var ErrNotFound = errors.New("project not found")

// ErrInvalidID reports a project id that is not a UUID.
var ErrInvalidID = errors.New("invalid project id")

// ProjectStore persists projects.
type ProjectStore interface {
	Create(ctx context.Context, p Project) error
	Get(ctx context.Context, id string) (Project, bool, error)
	List(ctx context.Context, limit, offset int, search string) ([]Project, int, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (ProjectStats, error)
}

// ProjectService manages stored projects.
type ProjectService struct {
	store ProjectStore
}

// NewProjectService creates a new project service.
func NewProjectService(store ProjectStore) *ProjectService {
	return &ProjectService{store: store}
}

// Get returns a project by ID.
func (s *ProjectService) Get(ctx context.Context, id string) (Project, error) {
	if _, err := uuid.Parse(id); err != nil {
		return Project{}, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	p, ok, err := s.store.Get(ctx, id)
	if err != nil {
		return Project{}, err
	}
	if !ok {
		return Project{}, fmt.Errorf("project %q: %w", id, ErrNotFound)
	}
	return p, nil
}

// List returns projects ordered newest first, with optional name search.
// limit is clamped to [1, 1000], offset to >= 0.
func (s *ProjectService) List(ctx context.Context, limit, offset int, search string) ([]Project, int, error) {
	if limit < 1 {
		limit = 100
	}
	if limit > 1000 {
		limit = 1000
	}
	if offset < 0 {
		offset = 0
	}
	return s.store.List(ctx, limit, offset, search)
}

// Delete removes a project by ID.
func (s *ProjectService) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return s.store.Delete(ctx, id)
}

// Stats returns summary statistics over the stored projects.
func (s *ProjectService) Stats(ctx context.Context) (ProjectStats, error) {
	return s.store.Stats(ctx)
}
