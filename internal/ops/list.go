package ops

import (
	"database/sql"

	"github.com/teledrop/teledrop/internal/db"
	"github.com/teledrop/teledrop/internal/record"
)

// ListOutput contains the result of the List operation.
type ListOutput struct {
	Items []record.Summary `json:"items"`
	Total int              `json:"total"`
}

// List returns every record in insertion order.
func List(database *sql.DB) (*ListOutput, error) {
	summaries, err := db.ListRecords(database)
	if err != nil {
		return nil, err
	}

	// Ensure we return an empty array rather than nil
	if summaries == nil {
		summaries = []record.Summary{}
	}

	return &ListOutput{
		Items: summaries,
		Total: len(summaries),
	}, nil
}
