// Package gate evaluates whether a requester satisfies every required
// channel membership before content is released.
package gate

import (
	"context"
	"database/sql"

	"github.com/teledrop/teledrop/internal/db"
	"github.com/teledrop/teledrop/internal/platform"
	"github.com/teledrop/teledrop/internal/record"
)

// Gate checks required-channel memberships. It has no side effects.
type Gate struct {
	db  *sql.DB
	api platform.API
}

// New returns a gate over the stored channel set.
func New(database *sql.DB, api platform.API) *Gate {
	return &Gate{db: database, api: api}
}

// Channels returns the current required-channel set in order.
func (g *Gate) Channels() ([]record.Channel, error) {
	return db.ListChannels(g.db)
}

// IsSatisfied reports whether userID holds standing in every required
// channel. Fail-closed: a query error or any status outside
// member/administrator/owner returns false immediately without
// checking the remaining channels. An empty set is trivially satisfied.
func (g *Gate) IsSatisfied(ctx context.Context, userID int64) (bool, error) {
	channels, err := db.ListChannels(g.db)
	if err != nil {
		return false, err
	}

	for _, ch := range channels {
		status, err := g.api.GetMembershipStatus(ctx, ch.ChatID, userID)
		if err != nil {
			return false, nil
		}
		if !status.Satisfies() {
			return false, nil
		}
	}

	return true, nil
}
