package ops

import (
	"database/sql"

	"github.com/teledrop/teledrop/internal/db"
	"github.com/teledrop/teledrop/internal/errors"
	"github.com/teledrop/teledrop/internal/record"
)

// CreateOutput contains the result of a create operation.
type CreateOutput struct {
	Token string `json:"token"`
}

// CreateSingle wraps one source reference as a single record and
// returns its token.
func CreateSingle(database *sql.DB, ref record.SourceRef) (*CreateOutput, error) {
	token, err := insertWithFreshToken(record.KindSingle, []record.SourceRef{ref}, func(r *record.Record) error {
		return db.InsertRecord(database, r)
	})
	if err != nil {
		return nil, err
	}
	return &CreateOutput{Token: token}, nil
}

// CreateBatch wraps an ordered sequence of source references as a
// batch record and returns its token.
func CreateBatch(database *sql.DB, refs []record.SourceRef) (*CreateOutput, error) {
	if len(refs) == 0 {
		return nil, errors.NewInvalidRequest("no inputs in batch")
	}
	token, err := insertWithFreshToken(record.KindBatch, refs, func(r *record.Record) error {
		return db.InsertRecord(database, r)
	})
	if err != nil {
		return nil, err
	}
	return &CreateOutput{Token: token}, nil
}
