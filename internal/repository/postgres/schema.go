package postgres

import (
	"context"
	"database/sql"
)

// EnsureSchema creates the songs table if it does not exist yet. It is
// the bootstrap routine run at startup, outside the catalog manager.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS songs (
			id SERIAL PRIMARY KEY,
			file_name VARCHAR(255) NOT NULL UNIQUE,
			artist VARCHAR(255) NOT NULL,
			song_name VARCHAR(255) NOT NULL,
			release_date DATE,
			tags TEXT[]
		)
	`)
	return err
}
