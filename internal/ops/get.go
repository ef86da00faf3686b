package ops

import (
	"database/sql"

	"github.com/teledrop/teledrop/internal/db"
	"github.com/teledrop/teledrop/internal/record"
)

// Get resolves a token to its record.
func Get(database *sql.DB, token string) (*record.Record, error) {
	return db.GetRecord(database, token)
}
