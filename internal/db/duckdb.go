// Package db provides the DuckDB-backed project store.
package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/marcboeker/go-duckdb"
)

// Config holds database configuration.
type Config struct {
	DataDir string
	DBName  string
}

// Open opens (or creates) the DuckDB database file under the data
// directory and bootstraps the schema.
func Open(cfg Config) (*sql.DB, error) {
	duckdbDir := filepath.Join(cfg.DataDir, "duckdb")
	if err := os.MkdirAll(duckdbDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create duckdb directory: %w", err)
	}

	dbPath := filepath.Join(duckdbDir, cfg.DBName+".duckdb")
	conn, err := sql.Open("duckdb", dbPath)
	if err != nil {
		return nil, err
	}

	if err := migrate(conn); err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}

func migrate(conn *sql.DB) error {
	_, err := conn.Exec(`
		CREATE TABLE IF NOT EXISTS projects (
			id            VARCHAR PRIMARY KEY,
			name          VARCHAR NOT NULL,
			latitude      DOUBLE NOT NULL,
			longitude     DOUBLE NOT NULL,
			created       VARCHAR NOT NULL,
			last_modified VARCHAR NOT NULL,
			status        VARCHAR NOT NULL,
			data          VARCHAR
		)`)
	if err != nil {
		return fmt.Errorf("creating projects table: %w", err)
	}
	return nil
}
