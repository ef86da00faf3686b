package db

import (
	"database/sql"

	"github.com/teledrop/teledrop/internal/errors"
	"github.com/teledrop/teledrop/internal/record"
)

// ReplaceChannels swaps the whole required-channel set in one
// transaction. The set is never merged incrementally.
func ReplaceChannels(db *sql.DB, channels []record.Channel) error {
	tx, err := db.Begin()
	if err != nil {
		return errors.NewInternal(err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM channels"); err != nil {
		return errors.NewInternal(err)
	}

	for i, ch := range channels {
		_, err := tx.Exec(
			"INSERT INTO channels (position, chat_id, label) VALUES (?, ?, ?)",
			i, ch.ChatID, ch.Label,
		)
		if err != nil {
			return errors.NewInternal(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// ListChannels returns the required-channel set in position order.
func ListChannels(db *sql.DB) ([]record.Channel, error) {
	rows, err := db.Query("SELECT chat_id, label FROM channels ORDER BY position")
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	var channels []record.Channel
	for rows.Next() {
		var ch record.Channel
		if err := rows.Scan(&ch.ChatID, &ch.Label); err != nil {
			return nil, errors.NewInternal(err)
		}
		channels = append(channels, ch)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}

	return channels, nil
}

// ClearChannels removes every required channel. Returns the count removed.
func ClearChannels(db *sql.DB) (int, error) {
	result, err := db.Exec("DELETE FROM channels")
	if err != nil {
		return 0, errors.NewInternal(err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, errors.NewInternal(err)
	}
	return int(rowsAffected), nil
}
