package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/conorfennell/flashdeck/internal/domain"
)

// NewCategory holds the caller-supplied fields for a category create.
type NewCategory struct {
	Name        string `validate:"required"`
	Description string
}

// InsertCategory creates a new category and returns the stored record.
func (db *DB) InsertCategory(nc NewCategory) (*domain.Category, error) {
	nc.Name = strings.TrimSpace(nc.Name)
	if err := checkValid(nc); err != nil {
		return nil, err
	}

	createdAt := time.Now()
	res, err := db.conn.Exec(`
		INSERT INTO categories (name, description, createdAt)
		VALUES (?, ?, ?)
	`, nc.Name, nc.Description, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert category %s: %w", nc.Name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert ID for category %s: %w", nc.Name, err)
	}

	return &domain.Category{
		ID:          id,
		Name:        nc.Name,
		Description: nc.Description,
		CreatedAt:   createdAt,
	}, nil
}

// FindCategoryByID retrieves a category with its subcategories and
// cards populated. Returns nil, nil when no category matches.
func (db *DB) FindCategoryByID(id int64) (*domain.Category, error) {
	var c domain.Category
	row := db.conn.QueryRow(`
		SELECT id, name, description, createdAt
		FROM categories WHERE id = ?
	`, id)

	if err := row.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Category not found
		}
		return nil, fmt.Errorf("failed to find category %d: %w", id, err)
	}

	if err := db.loadCategoryChildren(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// GetAllCategories retrieves every category in creation order, each
// with its subcategories and cards populated.
func (db *DB) GetAllCategories() ([]domain.Category, error) {
	rows, err := db.conn.Query(`
		SELECT id, name, description, createdAt
		FROM categories ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get all categories: %w", err)
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate category rows: %w", err)
	}

	for i := range categories {
		if err := db.loadCategoryChildren(&categories[i]); err != nil {
			return nil, err
		}
	}
	return categories, nil
}

// UpdateCategory changes a category's name and description. Updating
// a nonexistent id is a no-op.
func (db *DB) UpdateCategory(id int64, name, description string) error {
	name = strings.TrimSpace(name)
	if err := checkValid(NewCategory{Name: name, Description: description}); err != nil {
		return err
	}
	_, err := db.conn.Exec(`
		UPDATE categories SET name = ?, description = ? WHERE id = ?
	`, name, description, id)
	if err != nil {
		return fmt.Errorf("failed to update category %d: %w", id, err)
	}
	return nil
}

// DeleteCategory removes a category and cascades to everything that
// references it: its subcategories, its cards (direct and via
// subcategories) and its review sessions. Idempotent.
func (db *DB) DeleteCategory(id int64) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin delete of category %d: %w", id, err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		`DELETE FROM review_sessions WHERE categoryId = ?`,
		`DELETE FROM cards WHERE categoryId = ?`,
		`DELETE FROM subcategories WHERE categoryId = ?`,
		`DELETE FROM categories WHERE id = ?`,
	} {
		if _, err := tx.Exec(stmt, id); err != nil {
			return fmt.Errorf("failed to cascade delete category %d: %w", id, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit delete of category %d: %w", id, err)
	}
	return nil
}

// loadCategoryChildren fills in the computed subcategory and card
// views on a category record.
func (db *DB) loadCategoryChildren(c *domain.Category) error {
	subs, err := db.GetSubcategoriesByCategory(c.ID)
	if err != nil {
		return err
	}
	cards, err := db.GetCardsByCategory(c.ID)
	if err != nil {
		return err
	}
	c.Subcategories = subs
	c.Cards = cards
	return nil
}
