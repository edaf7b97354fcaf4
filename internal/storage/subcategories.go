package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/conorfennell/flashdeck/internal/domain"
)

// NewSubcategory holds the caller-supplied fields for a subcategory create.
type NewSubcategory struct {
	CategoryID  int64  `validate:"required"`
	Name        string `validate:"required"`
	Description string
}

// InsertSubcategory creates a new subcategory under an existing
// category and returns the stored record.
func (db *DB) InsertSubcategory(ns NewSubcategory) (*domain.Subcategory, error) {
	ns.Name = strings.TrimSpace(ns.Name)
	if err := checkValid(ns); err != nil {
		return nil, err
	}
	ok, err := db.categoryExists(ns.CategoryID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: category %d does not exist", domain.ErrValidation, ns.CategoryID)
	}

	createdAt := time.Now()
	res, err := db.conn.Exec(`
		INSERT INTO subcategories (name, description, categoryId, createdAt)
		VALUES (?, ?, ?, ?)
	`, ns.Name, ns.Description, ns.CategoryID, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert subcategory %s: %w", ns.Name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert ID for subcategory %s: %w", ns.Name, err)
	}

	return &domain.Subcategory{
		ID:          id,
		Name:        ns.Name,
		Description: ns.Description,
		CategoryID:  ns.CategoryID,
		CreatedAt:   createdAt,
	}, nil
}

// FindSubcategoryByID retrieves a subcategory with its cards
// populated. Returns nil, nil when no subcategory matches.
func (db *DB) FindSubcategoryByID(id int64) (*domain.Subcategory, error) {
	var s domain.Subcategory
	row := db.conn.QueryRow(`
		SELECT id, name, description, categoryId, createdAt
		FROM subcategories WHERE id = ?
	`, id)

	if err := row.Scan(&s.ID, &s.Name, &s.Description, &s.CategoryID, &s.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Subcategory not found
		}
		return nil, fmt.Errorf("failed to find subcategory %d: %w", id, err)
	}

	cards, err := db.GetCardsBySubcategory(s.ID)
	if err != nil {
		return nil, err
	}
	s.Cards = cards
	return &s, nil
}

// GetSubcategoriesByCategory retrieves the subcategories of one
// category in creation order, each with its cards populated.
func (db *DB) GetSubcategoriesByCategory(categoryID int64) ([]domain.Subcategory, error) {
	rows, err := db.conn.Query(`
		SELECT id, name, description, categoryId, createdAt
		FROM subcategories WHERE categoryId = ? ORDER BY id
	`, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to get subcategories for category %d: %w", categoryID, err)
	}
	defer rows.Close()

	var subs []domain.Subcategory
	for rows.Next() {
		var s domain.Subcategory
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.CategoryID, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan subcategory row: %w", err)
		}
		subs = append(subs, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate subcategory rows: %w", err)
	}

	for i := range subs {
		cards, err := db.GetCardsBySubcategory(subs[i].ID)
		if err != nil {
			return nil, err
		}
		subs[i].Cards = cards
	}
	return subs, nil
}

// UpdateSubcategory changes a subcategory's name and description.
// Updating a nonexistent id is a no-op.
func (db *DB) UpdateSubcategory(id int64, name, description string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	_, err := db.conn.Exec(`
		UPDATE subcategories SET name = ?, description = ? WHERE id = ?
	`, name, description, id)
	if err != nil {
		return fmt.Errorf("failed to update subcategory %d: %w", id, err)
	}
	return nil
}

// DeleteSubcategory removes a subcategory. Its cards are detached,
// not deleted: subcategoryId is cleared and the cards stay attached
// to the parent category. Idempotent.
func (db *DB) DeleteSubcategory(id int64) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin delete of subcategory %d: %w", id, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`UPDATE cards SET subcategoryId = NULL WHERE subcategoryId = ?`, id); err != nil {
		return fmt.Errorf("failed to detach cards from subcategory %d: %w", id, err)
	}
	if _, err := tx.Exec(`DELETE FROM subcategories WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete subcategory %d: %w", id, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit delete of subcategory %d: %w", id, err)
	}
	return nil
}

// subcategoryCategory returns the owning category id of a
// subcategory, or nil, nil-style absence as (0, false).
func (db *DB) subcategoryCategory(id int64) (int64, bool, error) {
	var categoryID int64
	err := db.conn.QueryRow(`SELECT categoryId FROM subcategories WHERE id = ?`, id).Scan(&categoryID)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to check subcategory %d: %w", id, err)
	}
	return categoryID, true, nil
}
