package ops

import (
	"database/sql"

	"github.com/teledrop/teledrop/internal/db"
	"github.com/teledrop/teledrop/internal/errors"
	"github.com/teledrop/teledrop/internal/record"
)

// StartSession opens a capture session for an admin, resetting any
// prior session for the same admin.
func StartSession(database *sql.DB, adminID int64) error {
	return db.PutSession(database, adminID, nil)
}

// SessionActive reports whether an admin has a capture session open.
func SessionActive(database *sql.DB, adminID int64) (bool, error) {
	_, exists, err := db.GetSession(database, adminID)
	return exists, err
}

// AppendToSession adds one source reference to the admin's open
// session, preserving capture order.
func AppendToSession(database *sql.DB, adminID int64, ref record.SourceRef) error {
	items, exists, err := db.GetSession(database, adminID)
	if err != nil {
		return err
	}
	if !exists {
		return errors.NewInvalidRequest("no capture session in progress")
	}
	return db.PutSession(database, adminID, append(items, ref))
}

// CommitSession turns the admin's pending items into a batch record
// and clears the session, both in one transaction: no reader ever
// observes the batch alongside a still-pending session. An empty
// session fails validation and stays open; a missing session fails
// validation.
func CommitSession(database *sql.DB, adminID int64) (*CreateOutput, error) {
	items, exists, err := db.GetSession(database, adminID)
	if err != nil {
		return nil, err
	}
	if !exists || len(items) == 0 {
		return nil, errors.NewInvalidRequest("no inputs in batch")
	}

	token, err := insertWithFreshToken(record.KindBatch, items, func(r *record.Record) error {
		return db.CommitSessionRecord(database, r, adminID)
	})
	if err != nil {
		return nil, err
	}
	return &CreateOutput{Token: token}, nil
}

// CancelSession discards the admin's pending items without touching
// the registry. Returns whether a session existed.
func CancelSession(database *sql.DB, adminID int64) (bool, error) {
	return db.DeleteSession(database, adminID)
}
