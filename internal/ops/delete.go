package ops

import (
	"database/sql"

	"github.com/teledrop/teledrop/internal/db"
)

// DeleteOutput contains the result of the Delete operation.
type DeleteOutput struct {
	Token   string `json:"token"`
	Deleted bool   `json:"deleted"`
}

// Delete removes one record by token.
func Delete(database *sql.DB, token string) (*DeleteOutput, error) {
	if err := db.DeleteRecord(database, token); err != nil {
		return nil, err
	}
	return &DeleteOutput{Token: token, Deleted: true}, nil
}
