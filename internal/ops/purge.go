package ops

import (
	"database/sql"
	"fmt"

	"github.com/teledrop/teledrop/internal/db"
)

// PurgeOutput contains the result of the Purge operation.
type PurgeOutput struct {
	Records  int    `json:"records"`
	Sessions int    `json:"sessions"`
	Message  string `json:"message"`
}

// Purge removes every record unconditionally. In-progress capture
// sessions go with them: they are not-yet-committed content of the
// same kind.
func Purge(database *sql.DB) (*PurgeOutput, error) {
	records, sessions, err := db.PurgeRecords(database)
	if err != nil {
		return nil, err
	}

	return &PurgeOutput{
		Records:  records,
		Sessions: sessions,
		Message:  formatPurgeMessage(records, sessions),
	}, nil
}

// formatPurgeMessage creates a human-readable message for the purge result.
func formatPurgeMessage(records, sessions int) string {
	if records == 0 && sessions == 0 {
		return "Nothing to purge"
	}

	linkWord := "links"
	if records == 1 {
		linkWord = "link"
	}
	msg := fmt.Sprintf("Deleted %d %s", records, linkWord)

	if sessions > 0 {
		sessionWord := "sessions"
		if sessions == 1 {
			sessionWord = "session"
		}
		msg += fmt.Sprintf(" and %d pending capture %s", sessions, sessionWord)
	}

	return msg
}
