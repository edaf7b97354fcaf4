package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/conorfennell/flashdeck/internal/domain"
)

// NewReviewSession holds the fields of a completed review pass. Wrong
// and Right are ordered card-id sequences, one entry per review event.
type NewReviewSession struct {
	CategoryID    *int64
	SubcategoryID *int64
	ReviewType    domain.ReviewType `validate:"required"`
	Wrong         []int64
	Right         []int64
	ReviewedAt    *time.Time
}

// InsertReviewSession persists the record of one review pass and
// returns it. Session records are immutable once created; the only
// later operation is deletion.
func (db *DB) InsertReviewSession(ns NewReviewSession) (*domain.ReviewSession, error) {
	if err := checkValid(ns); err != nil {
		return nil, err
	}
	if !ns.ReviewType.Valid() {
		return nil, fmt.Errorf("%w: unknown review type %q", domain.ErrValidation, ns.ReviewType)
	}
	if ns.CategoryID != nil {
		ok, err := db.categoryExists(*ns.CategoryID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("%w: category %d does not exist", domain.ErrValidation, *ns.CategoryID)
		}
	}

	wrong, err := marshalIDs(ns.Wrong)
	if err != nil {
		return nil, err
	}
	right, err := marshalIDs(ns.Right)
	if err != nil {
		return nil, err
	}

	createdAt := time.Now()
	res, err := db.conn.Exec(`
		INSERT INTO review_sessions (categoryId, subcategoryId, reviewType, wrong, right, reviewedAt, createdAt)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, nullableID(ns.CategoryID), nullableID(ns.SubcategoryID), string(ns.ReviewType), wrong, right, nullableTime(ns.ReviewedAt), createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert review session: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert ID for review session: %w", err)
	}

	return &domain.ReviewSession{
		ID:            id,
		CategoryID:    ns.CategoryID,
		SubcategoryID: ns.SubcategoryID,
		ReviewType:    ns.ReviewType,
		Wrong:         append([]int64(nil), ns.Wrong...),
		Right:         append([]int64(nil), ns.Right...),
		ReviewedAt:    ns.ReviewedAt,
		CreatedAt:     createdAt,
	}, nil
}

const sessionColumns = `id, categoryId, subcategoryId, reviewType, wrong, right, reviewedAt, createdAt`

// FindReviewSessionByID retrieves one session record. Returns nil,
// nil when no session matches.
func (db *DB) FindReviewSessionByID(id int64) (*domain.ReviewSession, error) {
	row := db.conn.QueryRow(`SELECT `+sessionColumns+` FROM review_sessions WHERE id = ?`, id)
	session, err := scanSession(row)
	if err == sql.ErrNoRows {
		return nil, nil // Session not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find review session %d: %w", id, err)
	}
	return session, nil
}

// GetAllReviewSessions retrieves every session record, newest first.
func (db *DB) GetAllReviewSessions() ([]domain.ReviewSession, error) {
	return db.querySessions(`SELECT ` + sessionColumns + ` FROM review_sessions ORDER BY reviewedAt DESC, id DESC`)
}

// GetLatestReviewSession retrieves the most recently reviewed
// session, or nil, nil when none exist.
func (db *DB) GetLatestReviewSession() (*domain.ReviewSession, error) {
	row := db.conn.QueryRow(`SELECT ` + sessionColumns + ` FROM review_sessions ORDER BY reviewedAt DESC, id DESC LIMIT 1`)
	session, err := scanSession(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find latest review session: %w", err)
	}
	return session, nil
}

// GetReviewSessionsByCategory retrieves a category's sessions, newest first.
func (db *DB) GetReviewSessionsByCategory(categoryID int64) ([]domain.ReviewSession, error) {
	return db.querySessions(`SELECT `+sessionColumns+` FROM review_sessions WHERE categoryId = ? ORDER BY reviewedAt DESC, id DESC`, categoryID)
}

// GetReviewSessionsBySubcategory retrieves a subcategory's sessions, newest first.
func (db *DB) GetReviewSessionsBySubcategory(subcategoryID int64) ([]domain.ReviewSession, error) {
	return db.querySessions(`SELECT `+sessionColumns+` FROM review_sessions WHERE subcategoryId = ? ORDER BY reviewedAt DESC, id DESC`, subcategoryID)
}

// DeleteReviewSession removes one session record. Idempotent.
func (db *DB) DeleteReviewSession(id int64) error {
	if _, err := db.conn.Exec(`DELETE FROM review_sessions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete review session %d: %w", id, err)
	}
	return nil
}

func (db *DB) querySessions(query string, args ...any) ([]domain.ReviewSession, error) {
	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query review sessions: %w", err)
	}
	defer rows.Close()

	var sessions []domain.ReviewSession
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review session row: %w", err)
		}
		sessions = append(sessions, *session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate review session rows: %w", err)
	}
	return sessions, nil
}

func scanSession(row rowScanner) (*domain.ReviewSession, error) {
	var (
		s             domain.ReviewSession
		categoryID    sql.NullInt64
		subcategoryID sql.NullInt64
		reviewType    string
		wrong         sql.NullString
		right         sql.NullString
		reviewedAt    sql.NullTime
	)
	err := row.Scan(&s.ID, &categoryID, &subcategoryID, &reviewType, &wrong, &right, &reviewedAt, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	s.ReviewType = domain.ReviewType(reviewType)
	if categoryID.Valid {
		id := categoryID.Int64
		s.CategoryID = &id
	}
	if subcategoryID.Valid {
		id := subcategoryID.Int64
		s.SubcategoryID = &id
	}
	if reviewedAt.Valid {
		t := reviewedAt.Time
		s.ReviewedAt = &t
	}
	if s.Wrong, err = unmarshalIDs(wrong); err != nil {
		return nil, err
	}
	if s.Right, err = unmarshalIDs(right); err != nil {
		return nil, err
	}
	return &s, nil
}

func marshalIDs(ids []int64) (string, error) {
	if ids == nil {
		ids = []int64{}
	}
	b, err := json.Marshal(ids)
	if err != nil {
		return "", fmt.Errorf("failed to serialize card id list: %w", err)
	}
	return string(b), nil
}

func unmarshalIDs(s sql.NullString) ([]int64, error) {
	if !s.Valid || s.String == "" {
		return []int64{}, nil
	}
	var ids []int64
	if err := json.Unmarshal([]byte(s.String), &ids); err != nil {
		return nil, fmt.Errorf("failed to parse card id list: %w", err)
	}
	return ids, nil
}

// nullableTime converts an optional timestamp into a driver-friendly value.
func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}
