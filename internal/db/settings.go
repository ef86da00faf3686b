package db

import (
	"database/sql"
	"strconv"

	"github.com/teledrop/teledrop/internal/errors"
	"github.com/teledrop/teledrop/internal/record"
)

// Settings keys.
const (
	KeyButtonText   = "button_text"
	KeyButtonURL    = "button_url"
	KeyJoinText     = "join_text"
	KeyPromoText    = "promo_text"
	KeyRetentionTTL = "retention_ttl"
)

// SetSetting overwrites one settings key.
func SetSetting(db *sql.DB, key, value string) error {
	query := `
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`
	if _, err := db.Exec(query, key, value); err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// SetSettings overwrites several keys in one transaction. Used by the
// two-step button flow so label and URL commit atomically.
func SetSettings(db *sql.DB, kv map[string]string) error {
	tx, err := db.Begin()
	if err != nil {
		return errors.NewInternal(err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`
	for key, value := range kv {
		if _, err := tx.Exec(query, key, value); err != nil {
			return errors.NewInternal(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// GetSettings loads every settings key, filling defaults for unset ones.
func GetSettings(db *sql.DB) (record.Settings, error) {
	s := record.DefaultSettings()

	rows, err := db.Query("SELECT key, value FROM settings")
	if err != nil {
		return s, errors.NewInternal(err)
	}
	defer rows.Close()

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return s, errors.NewInternal(err)
		}
		switch key {
		case KeyButtonText:
			s.ButtonText = value
		case KeyButtonURL:
			s.ButtonURL = value
		case KeyJoinText:
			s.JoinText = value
		case KeyPromoText:
			s.PromoText = value
		case KeyRetentionTTL:
			if n, err := strconv.Atoi(value); err == nil {
				s.RetentionTTL = n
			}
		}
	}
	if err := rows.Err(); err != nil {
		return s, errors.NewInternal(err)
	}

	return s, nil
}
