package ops

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/teledrop/teledrop/internal/db"
	"github.com/teledrop/teledrop/internal/errors"
	"github.com/teledrop/teledrop/internal/platform"
	"github.com/teledrop/teledrop/internal/record"
)

// GetSettings loads the operator settings with defaults applied.
func GetSettings(database *sql.DB) (record.Settings, error) {
	return db.GetSettings(database)
}

// SetButton commits the footer button's label and URL atomically.
func SetButton(database *sql.DB, text, url string) error {
	text = strings.TrimSpace(text)
	url = strings.TrimSpace(url)
	if text == "" {
		return errors.NewInvalidRequest("button text must not be empty")
	}
	if url == "" {
		return errors.NewInvalidRequest("button url must not be empty")
	}
	return db.SetSettings(database, map[string]string{
		db.KeyButtonText: text,
		db.KeyButtonURL:  url,
	})
}

// SetPromo overwrites the promo/caption text.
func SetPromo(database *sql.DB, text string) error {
	return db.SetSetting(database, db.KeyPromoText, text)
}

// ClearPromo resets the promo text to empty.
func ClearPromo(database *sql.DB) error {
	return db.SetSetting(database, db.KeyPromoText, "")
}

// SetJoinText overwrites the join-prompt text.
func SetJoinText(database *sql.DB, text string) error {
	return db.SetSetting(database, db.KeyJoinText, text)
}

// SetTTL overwrites the retention TTL. Values outside the closed range
// [30, 86400] fail validation and leave the prior TTL unchanged.
func SetTTL(database *sql.DB, seconds int) error {
	if !record.ValidTTL(seconds) {
		return errors.NewInvalidRequest(fmt.Sprintf(
			"ttl must be between %d and %d seconds, got %d",
			record.MinRetentionTTL, record.MaxRetentionTTL, seconds,
		))
	}
	return db.SetSetting(database, db.KeyRetentionTTL, strconv.Itoa(seconds))
}

// ReplaceChannels parses one channel identifier per line, resolves
// every one through the platform, and replaces the required-channel
// set wholesale. Any unresolvable line fails the whole operation and
// leaves the existing set untouched.
func ReplaceChannels(ctx context.Context, database *sql.DB, api platform.API, input string) ([]record.Channel, error) {
	var channels []record.Channel
	for _, line := range strings.Split(input, "\n") {
		identifier := strings.TrimSpace(line)
		if identifier == "" {
			continue
		}

		chatID, err := api.ResolveChannel(ctx, identifier)
		if err != nil {
			return nil, errors.NewInvalidRequest(fmt.Sprintf("could not resolve channel %q: %v", identifier, err))
		}

		channels = append(channels, record.Channel{ChatID: chatID, Label: identifier})
	}

	if len(channels) == 0 {
		return nil, errors.NewInvalidRequest("no channel identifiers provided")
	}

	if err := db.ReplaceChannels(database, channels); err != nil {
		return nil, err
	}
	return channels, nil
}

// ClearChannels empties the required-channel set. Returns the count removed.
func ClearChannels(database *sql.DB) (int, error) {
	return db.ClearChannels(database)
}

// ListChannels returns the required-channel set in order.
func ListChannels(database *sql.DB) ([]record.Channel, error) {
	return db.ListChannels(database)
}
