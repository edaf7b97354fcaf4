package storage

import (
	"database/sql"
	"fmt"

	"github.com/conorfennell/flashdeck/internal/domain"
	"github.com/go-playground/validator/v10"
	_ "modernc.org/sqlite" // Registers the sqlite driver
)

// DB represents a wrapper around the SQL database connection. It is
// the single owner of the persistent state; callers get plain domain
// records back. One instance is constructed at startup and passed to
// whatever needs it.
type DB struct {
	conn *sql.DB
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Open creates a new database connection and ensures the schema is up to date.
func Open(dsn string) (*DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Execute the schema to create tables if they don't exist.
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &DB{conn: db}, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Reset drops all four tables and recreates them empty. Irreversible;
// only reachable from an explicit user action.
func (db *DB) Reset() error {
	if _, err := db.conn.Exec(dropTables); err != nil {
		return fmt.Errorf("failed to drop tables: %w", err)
	}
	if _, err := db.conn.Exec(schema); err != nil {
		return fmt.Errorf("failed to recreate schema: %w", err)
	}
	return nil
}

// checkValid runs struct validation and folds failures into the
// shared validation sentinel so callers can errors.Is on it.
func checkValid(v any) error {
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return nil
}

// categoryExists reports whether a category row with the given id is present.
func (db *DB) categoryExists(id int64) (bool, error) {
	var one int
	err := db.conn.QueryRow(`SELECT 1 FROM categories WHERE id = ?`, id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check category %d: %w", id, err)
	}
	return true, nil
}
