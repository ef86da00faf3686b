package db

import (
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/teledrop/teledrop/internal/errors"
	"github.com/teledrop/teledrop/internal/record"
)

// ErrUniqueConstraint is returned when an insert violates a UNIQUE constraint.
var ErrUniqueConstraint = &errors.DropError{
	Code:    "UNIQUE_CONSTRAINT",
	Message: "unique constraint violation",
}

// InsertRecord stores a new content record. A token collision surfaces
// as ErrUniqueConstraint so the caller can mint a fresh token and retry
// instead of overwriting the existing record.
func InsertRecord(db *sql.DB, r *record.Record) error {
	refsJSON, err := json.Marshal(r.Refs)
	if err != nil {
		return errors.NewInternal(err)
	}

	query := `
		INSERT INTO records (token, kind, refs_json, created_at)
		VALUES (?, ?, ?, ?)
	`

	_, err = db.Exec(query, r.Token, string(r.Kind), string(refsJSON), r.CreatedAt)
	if err != nil {
		if isUniqueConstraintError(err) {
			return ErrUniqueConstraint
		}
		return errors.NewInternal(err)
	}

	return nil
}

// isUniqueConstraintError checks if the error is a SQLite UNIQUE constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	// SQLite returns "UNIQUE constraint failed: ..." for unique violations
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// GetRecord retrieves a record by token.
func GetRecord(db *sql.DB, token string) (*record.Record, error) {
	query := `
		SELECT token, kind, refs_json, created_at
		FROM records
		WHERE token = ?
	`

	var (
		r        record.Record
		kind     string
		refsJSON string
	)
	err := db.QueryRow(query, token).Scan(&r.Token, &kind, &refsJSON, &r.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFound(token)
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	r.Kind = record.Kind(kind)
	if err := json.Unmarshal([]byte(refsJSON), &r.Refs); err != nil {
		return nil, errors.NewInternal(err)
	}

	return &r, nil
}

// ListRecords returns summaries of every record in insertion order.
func ListRecords(db *sql.DB) ([]record.Summary, error) {
	query := `
		SELECT token, kind, refs_json, created_at
		FROM records
		ORDER BY rowid
	`

	rows, err := db.Query(query)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	var summaries []record.Summary
	for rows.Next() {
		var (
			s        record.Summary
			kind     string
			refsJSON string
		)
		if err := rows.Scan(&s.Token, &kind, &refsJSON, &s.CreatedAt); err != nil {
			return nil, errors.NewInternal(err)
		}
		s.Kind = record.Kind(kind)

		var refs []record.SourceRef
		if err := json.Unmarshal([]byte(refsJSON), &refs); err != nil {
			return nil, errors.NewInternal(err)
		}
		s.Items = len(refs)

		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}

	return summaries, nil
}

// DeleteRecord removes a record by token.
func DeleteRecord(db *sql.DB, token string) error {
	result, err := db.Exec("DELETE FROM records WHERE token = ?", token)
	if err != nil {
		return errors.NewInternal(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.NewInternal(err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFound(token)
	}

	return nil
}

// PurgeRecords removes every record and every capture session in one
// transaction, so a concurrent reader observes either the full state
// or the empty one.
func PurgeRecords(db *sql.DB) (records int, sessions int, err error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, 0, errors.NewInternal(err)
	}
	defer tx.Rollback()

	res, err := tx.Exec("DELETE FROM records")
	if err != nil {
		return 0, 0, errors.NewInternal(err)
	}
	r, _ := res.RowsAffected()

	res, err = tx.Exec("DELETE FROM capture_sessions")
	if err != nil {
		return 0, 0, errors.NewInternal(err)
	}
	s, _ := res.RowsAffected()

	if err := tx.Commit(); err != nil {
		return 0, 0, errors.NewInternal(err)
	}

	return int(r), int(s), nil
}
