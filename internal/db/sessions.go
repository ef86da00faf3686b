package db

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/teledrop/teledrop/internal/errors"
	"github.com/teledrop/teledrop/internal/record"
)

// PutSession creates or replaces the capture session for an admin.
func PutSession(db *sql.DB, adminID int64, items []record.SourceRef) error {
	if items == nil {
		items = []record.SourceRef{}
	}
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return errors.NewInternal(err)
	}

	query := `
		INSERT INTO capture_sessions (admin_id, items_json, started_at)
		VALUES (?, ?, ?)
		ON CONFLICT(admin_id) DO UPDATE SET items_json = excluded.items_json
	`

	if _, err := db.Exec(query, adminID, string(itemsJSON), time.Now().Unix()); err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// GetSession returns the pending items for an admin's capture session.
// The second return is false when no session exists.
func GetSession(db *sql.DB, adminID int64) ([]record.SourceRef, bool, error) {
	var itemsJSON string
	err := db.QueryRow(
		"SELECT items_json FROM capture_sessions WHERE admin_id = ?", adminID,
	).Scan(&itemsJSON)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.NewInternal(err)
	}

	var items []record.SourceRef
	if err := json.Unmarshal([]byte(itemsJSON), &items); err != nil {
		return nil, false, errors.NewInternal(err)
	}
	if items == nil {
		items = []record.SourceRef{}
	}

	return items, true, nil
}

// CommitSessionRecord inserts a record and deletes the admin's capture
// session in one transaction, so a concurrent reader observes either
// the pending session or the committed batch, never both. A token
// collision surfaces as ErrUniqueConstraint and leaves the session
// untouched.
func CommitSessionRecord(db *sql.DB, r *record.Record, adminID int64) error {
	refsJSON, err := json.Marshal(r.Refs)
	if err != nil {
		return errors.NewInternal(err)
	}

	tx, err := db.Begin()
	if err != nil {
		return errors.NewInternal(err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO records (token, kind, refs_json, created_at)
		VALUES (?, ?, ?, ?)
	`
	if _, err := tx.Exec(query, r.Token, string(r.Kind), string(refsJSON), r.CreatedAt); err != nil {
		if isUniqueConstraintError(err) {
			return ErrUniqueConstraint
		}
		return errors.NewInternal(err)
	}

	if _, err := tx.Exec("DELETE FROM capture_sessions WHERE admin_id = ?", adminID); err != nil {
		return errors.NewInternal(err)
	}

	if err := tx.Commit(); err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// DeleteSession removes an admin's capture session if present.
// Returns whether a session existed.
func DeleteSession(db *sql.DB, adminID int64) (bool, error) {
	result, err := db.Exec("DELETE FROM capture_sessions WHERE admin_id = ?", adminID)
	if err != nil {
		return false, errors.NewInternal(err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, errors.NewInternal(err)
	}
	return rowsAffected > 0, nil
}
