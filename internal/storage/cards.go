package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/conorfennell/flashdeck/internal/domain"
)

// NewCard holds the caller-supplied fields for a card create.
type NewCard struct {
	CategoryID    int64 `validate:"required"`
	SubcategoryID *int64
	Title         string `validate:"required"`
	Definition    string `validate:"required"`
	Clue          string
}

// CardUpdate holds the editable content fields of a card. The review
// counters are deliberately absent: they only move through
// ApplyReview, which keeps them monotone.
type CardUpdate struct {
	Title         string `validate:"required"`
	Definition    string `validate:"required"`
	Clue          string
	SubcategoryID *int64
}

// InsertCard creates a new card and returns the stored record. The
// category must exist; a subcategory, when given, must exist and
// belong to the same category.
func (db *DB) InsertCard(nc NewCard) (*domain.Card, error) {
	nc.Title = strings.TrimSpace(nc.Title)
	nc.Definition = strings.TrimSpace(nc.Definition)
	if err := checkValid(nc); err != nil {
		return nil, err
	}
	ok, err := db.categoryExists(nc.CategoryID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: category %d does not exist", domain.ErrValidation, nc.CategoryID)
	}
	if err := db.checkSubcategoryOwner(nc.SubcategoryID, nc.CategoryID); err != nil {
		return nil, err
	}

	createdAt := time.Now()
	res, err := db.conn.Exec(`
		INSERT INTO cards (title, definition, clue, numCorrect, numIncorrect, categoryId, subcategoryId, createdAt)
		VALUES (?, ?, ?, 0, 0, ?, ?, ?)
	`, nc.Title, nc.Definition, nc.Clue, nc.CategoryID, nullableID(nc.SubcategoryID), createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert card %s: %w", nc.Title, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert ID for card %s: %w", nc.Title, err)
	}

	return &domain.Card{
		ID:            id,
		CategoryID:    nc.CategoryID,
		SubcategoryID: nc.SubcategoryID,
		Title:         nc.Title,
		Definition:    nc.Definition,
		Clue:          nc.Clue,
		CreatedAt:     createdAt,
	}, nil
}

const cardColumns = `id, title, definition, lastReviewed, numCorrect, numIncorrect, clue, categoryId, subcategoryId, createdAt`

// FindCardByID retrieves a single card. Returns nil, nil when no card matches.
func (db *DB) FindCardByID(id int64) (*domain.Card, error) {
	row := db.conn.QueryRow(`SELECT `+cardColumns+` FROM cards WHERE id = ?`, id)
	card, err := scanCard(row)
	if err == sql.ErrNoRows {
		return nil, nil // Card not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find card %d: %w", id, err)
	}
	return card, nil
}

// GetAllCards retrieves every card in creation order.
func (db *DB) GetAllCards() ([]domain.Card, error) {
	return db.queryCards(`SELECT `+cardColumns+` FROM cards ORDER BY id`)
}

// GetCardsByCategory retrieves all cards of a category, including
// cards attached through its subcategories.
func (db *DB) GetCardsByCategory(categoryID int64) ([]domain.Card, error) {
	return db.queryCards(`SELECT `+cardColumns+` FROM cards WHERE categoryId = ? ORDER BY id`, categoryID)
}

// GetCardsBySubcategory retrieves the cards attached to one subcategory.
func (db *DB) GetCardsBySubcategory(subcategoryID int64) ([]domain.Card, error) {
	return db.queryCards(`SELECT `+cardColumns+` FROM cards WHERE subcategoryId = ? ORDER BY id`, subcategoryID)
}

// GetIncorrectCards retrieves the cards of a category that have been
// answered incorrectly at least once, regardless of subcategory.
func (db *DB) GetIncorrectCards(categoryID int64) ([]domain.Card, error) {
	return db.queryCards(`SELECT `+cardColumns+` FROM cards WHERE categoryId = ? AND numIncorrect > 0 ORDER BY id`, categoryID)
}

// UpdateCard changes a card's content fields. The counters,
// lastReviewed and the owning category are untouched. Updating a
// nonexistent id is a no-op.
func (db *DB) UpdateCard(id int64, cu CardUpdate) error {
	cu.Title = strings.TrimSpace(cu.Title)
	cu.Definition = strings.TrimSpace(cu.Definition)
	if err := checkValid(cu); err != nil {
		return err
	}
	if cu.SubcategoryID != nil {
		card, err := db.FindCardByID(id)
		if err != nil {
			return err
		}
		if card != nil {
			if err := db.checkSubcategoryOwner(cu.SubcategoryID, card.CategoryID); err != nil {
				return err
			}
		}
	}

	_, err := db.conn.Exec(`
		UPDATE cards SET title = ?, definition = ?, clue = ?, subcategoryId = ? WHERE id = ?
	`, cu.Title, cu.Definition, cu.Clue, nullableID(cu.SubcategoryID), id)
	if err != nil {
		return fmt.Errorf("failed to update card %d: %w", id, err)
	}
	return nil
}

// ApplyReview records one review event on a card: exactly one of the
// counters grows by one and lastReviewed is set. The increment runs
// inside the database so the counters can never move backwards.
func (db *DB) ApplyReview(id int64, correct bool) error {
	column := "numIncorrect"
	if correct {
		column = "numCorrect"
	}
	_, err := db.conn.Exec(
		`UPDATE cards SET `+column+` = `+column+` + 1, lastReviewed = ? WHERE id = ?`,
		time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to apply review to card %d: %w", id, err)
	}
	return nil
}

// DeleteCard removes a card. Historical review sessions that mention
// the card keep their id lists untouched; readers treat dangling ids
// as cards that are no longer available. Idempotent.
func (db *DB) DeleteCard(id int64) error {
	if _, err := db.conn.Exec(`DELETE FROM cards WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete card %d: %w", id, err)
	}
	return nil
}

// checkSubcategoryOwner rejects a subcategory reference that is
// missing or owned by a different category than the card's.
func (db *DB) checkSubcategoryOwner(subcategoryID *int64, categoryID int64) error {
	if subcategoryID == nil {
		return nil
	}
	owner, found, err := db.subcategoryCategory(*subcategoryID)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%w: subcategory %d does not exist", domain.ErrValidation, *subcategoryID)
	}
	if owner != categoryID {
		return fmt.Errorf("%w: subcategory %d belongs to category %d, not %d",
			domain.ErrValidation, *subcategoryID, owner, categoryID)
	}
	return nil
}

func (db *DB) queryCards(query string, args ...any) ([]domain.Card, error) {
	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query cards: %w", err)
	}
	defer rows.Close()

	var cards []domain.Card
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan card row: %w", err)
		}
		cards = append(cards, *card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate card rows: %w", err)
	}
	return cards, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCard(row rowScanner) (*domain.Card, error) {
	var (
		c             domain.Card
		lastReviewed  sql.NullTime
		clue          sql.NullString
		subcategoryID sql.NullInt64
	)
	err := row.Scan(
		&c.ID,
		&c.Title,
		&c.Definition,
		&lastReviewed,
		&c.NumCorrect,
		&c.NumIncorrect,
		&clue,
		&c.CategoryID,
		&subcategoryID,
		&c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if lastReviewed.Valid {
		t := lastReviewed.Time
		c.LastReviewed = &t
	}
	if clue.Valid {
		c.Clue = clue.String
	}
	if subcategoryID.Valid {
		id := subcategoryID.Int64
		c.SubcategoryID = &id
	}
	return &c, nil
}

// nullableID converts an optional id into a driver-friendly value.
func nullableID(id *int64) any {
	if id == nil {
		return nil
	}
	return *id
}
