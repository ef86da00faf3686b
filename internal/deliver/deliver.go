// Package deliver resolves a token through the membership gate and the
// registry, replays the content to the requester, and hands everything
// it produced to the retraction scheduler.
package deliver

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/teledrop/teledrop/internal/db"
	"github.com/teledrop/teledrop/internal/gate"
	"github.com/teledrop/teledrop/internal/platform"
	"github.com/teledrop/teledrop/internal/record"
	"github.com/teledrop/teledrop/internal/retract"
)

// footerText is the body of the footer message carrying the button.
const footerText = "👇"

// Result is the outcome of one delivery attempt.
type Result struct {
	// Blocked is true when the membership gate rejected the requester.
	// Channels then holds the required set so the caller can surface
	// join links plus a retry action. Nothing was sent or mutated.
	Blocked  bool
	Channels []record.Channel

	// ChatID and MessageIDs list everything this delivery produced, in
	// send order: replays, then promo (if configured), then footer.
	ChatID     int64
	MessageIDs []int

	// Failed counts batch items whose source no longer existed.
	// Remaining items are still delivered.
	Failed int

	// DeliveryID identifies the scheduled retraction; TTL is the
	// retention window sampled at delivery time.
	DeliveryID int64
	TTL        time.Duration
}

// Engine orchestrates deliveries. Each invocation is independent:
// re-delivering the same token produces a fresh, separately retracted
// copy and never consumes or mutates the record.
type Engine struct {
	db        *sql.DB
	api       platform.API
	gate      *gate.Gate
	scheduler *retract.Scheduler
	log       *slog.Logger
}

// New returns a delivery engine.
func New(database *sql.DB, api platform.API, g *gate.Gate, s *retract.Scheduler, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	return &Engine{db: database, api: api, gate: g, scheduler: s, log: log}
}

// Deliver replays the content behind token into chatID for userID.
func (e *Engine) Deliver(ctx context.Context, token string, userID, chatID int64) (*Result, error) {
	rec, err := db.GetRecord(e.db, token)
	if err != nil {
		return nil, err
	}

	ok, err := e.gate.IsSatisfied(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		channels, err := e.gate.Channels()
		if err != nil {
			return nil, err
		}
		e.log.Info("delivery blocked by gate", "token", token, "user", userID)
		return &Result{Blocked: true, Channels: channels, ChatID: chatID}, nil
	}

	settings, err := db.GetSettings(e.db)
	if err != nil {
		return nil, err
	}

	result := &Result{ChatID: chatID}

	// Replay in stored order; a vanished source does not abort the rest
	for _, ref := range rec.Refs {
		msgID, err := e.api.CopyMessage(ctx, chatID, ref)
		if err != nil {
			result.Failed++
			e.log.Warn("replay failed", "token", token, "source", ref.MessageID, "err", err)
			continue
		}
		result.MessageIDs = append(result.MessageIDs, msgID)
	}

	if settings.PromoText != "" {
		msgID, err := e.api.SendMessage(ctx, chatID, settings.PromoText, nil)
		if err != nil {
			e.log.Warn("promo send failed", "token", token, "chat", chatID, "err", err)
		} else {
			result.MessageIDs = append(result.MessageIDs, msgID)
		}
	}

	footer := [][]platform.Button{{{Text: settings.ButtonText, URL: settings.ButtonURL}}}
	msgID, err := e.api.SendMessage(ctx, chatID, footerText, footer)
	if err != nil {
		e.log.Warn("footer send failed", "token", token, "chat", chatID, "err", err)
	} else {
		result.MessageIDs = append(result.MessageIDs, msgID)
	}

	result.TTL = time.Duration(settings.RetentionTTL) * time.Second
	result.DeliveryID = e.scheduler.Schedule(chatID, result.MessageIDs, result.TTL)

	e.log.Info("delivered",
		"token", token, "user", userID, "chat", chatID,
		"messages", len(result.MessageIDs), "failed", result.Failed)

	return result, nil
}
