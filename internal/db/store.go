package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/stirlingbridge/landdev/internal/boundary"
	"github.com/stirlingbridge/landdev/internal/service"
)

// projectData is the JSON blob stored alongside the project row: the raw
// boundary features and any upstream fetch errors.
type projectData struct {
	Boundaries []boundary.Boundary `json:"boundaries"`
	Errors     []string            `json:"errors,omitempty"`
}

// Store implements service.ProjectStore on DuckDB.
type Store struct {
	conn *sql.DB
}

// NewStore creates a project store over an open DuckDB connection.
func NewStore(conn *sql.DB) *Store {
	return &Store{conn: conn}
}

// Close closes the underlying connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

// Create inserts a new project.
func (s *Store) Create(ctx context.Context, p service.Project) error {
	data, err := json.Marshal(projectData{Boundaries: p.Boundaries, Errors: p.Errors})
	if err != nil {
		return fmt.Errorf("encoding project data: %w", err)
	}

	_, err = s.conn.ExecContext(ctx, `
		INSERT INTO projects (id, name, latitude, longitude, created, last_modified, status, data)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Coordinate.Latitude, p.Coordinate.Longitude,
		p.Created, p.LastModified, p.Status, string(data))
	if err != nil {
		return fmt.Errorf("inserting project %q: %w", p.ID, err)
	}
	return nil
}

// Get returns a project by id; ok is false when it does not exist.
func (s *Store) Get(ctx context.Context, id string) (service.Project, bool, error) {
	row := s.conn.QueryRowContext(ctx, `
		SELECT id, name, latitude, longitude, created, last_modified, status, data
		FROM projects WHERE id = ?`, id)

	p, err := scanProject(row)
	if err == sql.ErrNoRows {
		return service.Project{}, false, nil
	}
	if err != nil {
		return service.Project{}, false, err
	}
	return p, true, nil
}

// List returns projects newest first, with an optional case-insensitive
// name search, plus the total matching count.
func (s *Store) List(ctx context.Context, limit, offset int, search string) ([]service.Project, int, error) {
	where := ""
	args := []any{}
	if search != "" {
		where = " WHERE name ILIKE '%' || ? || '%'"
		args = append(args, search)
	}

	var total int
	if err := s.conn.QueryRowContext(ctx, "SELECT count(*) FROM projects"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting projects: %w", err)
	}

	query := `
		SELECT id, name, latitude, longitude, created, last_modified, status, data
		FROM projects` + where + ` ORDER BY created DESC LIMIT ? OFFSET ?`
	rows, err := s.conn.QueryContext(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var projects []service.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, 0, err
		}
		projects = append(projects, p)
	}
	return projects, total, rows.Err()
}

// Delete removes a project by id.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.conn.ExecContext(ctx, "DELETE FROM projects WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting project %q: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("project %q: %w", id, service.ErrNotFound)
	}
	return nil
}

// Stats returns summary statistics over the stored projects.
func (s *Store) Stats(ctx context.Context) (service.ProjectStats, error) {
	stats := service.ProjectStats{ByStatus: map[string]int{}}

	rows, err := s.conn.QueryContext(ctx, "SELECT status, count(*) FROM projects GROUP BY status")
	if err != nil {
		return stats, fmt.Errorf("project stats: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return stats, err
		}
		stats.ByStatus[status] = n
		stats.TotalProjects += n
	}
	if err := rows.Err(); err != nil {
		return stats, err
	}

	// Boundary counts live inside the JSON blob.
	err = s.conn.QueryRowContext(ctx, `
		SELECT coalesce(sum(json_array_length(json_extract(data, '$.boundaries'))), 0)
		FROM projects`).Scan(&stats.TotalBoundaries)
	if err != nil {
		return stats, fmt.Errorf("boundary stats: %w", err)
	}
	return stats, nil
}

// scanner covers *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanProject(row scanner) (service.Project, error) {
	var p service.Project
	var data string
	err := row.Scan(&p.ID, &p.Name, &p.Coordinate.Latitude, &p.Coordinate.Longitude,
		&p.Created, &p.LastModified, &p.Status, &data)
	if err != nil {
		return service.Project{}, err
	}
	if data != "" {
		var pd projectData
		if err := json.Unmarshal([]byte(data), &pd); err != nil {
			return service.Project{}, fmt.Errorf("decoding project %q data: %w", p.ID, err)
		}
		p.Boundaries = pd.Boundaries
		p.Errors = pd.Errors
	}
	return p, nil
}
