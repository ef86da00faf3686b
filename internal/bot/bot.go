// Package bot routes incoming chat events onto the core operations.
// The transport layer delivers well-formed, already-authenticated
// updates; this package decides what they mean.
package bot

import (
	"database/sql"
	"log/slog"

	"github.com/teledrop/teledrop/internal/config"
	"github.com/teledrop/teledrop/internal/deliver"
	"github.com/teledrop/teledrop/internal/gate"
	"github.com/teledrop/teledrop/internal/platform"
	"github.com/teledrop/teledrop/internal/prompt"
	"github.com/teledrop/teledrop/internal/retract"
)

// Message is one incoming chat message.
type Message struct {
	ChatID    int64
	MessageID int
	From      int64
	Text      string
}

// Callback is one inline-button press.
type Callback struct {
	ChatID int64
	From   int64
	Data   string
}

// Update is one event from the transport. Exactly one field is set.
type Update struct {
	Message  *Message
	Callback *Callback
}

// Router dispatches updates to the core.
type Router struct {
	db      *sql.DB
	api     platform.API
	cfg     *config.Config
	prompts *prompt.Machine
	engine  *deliver.Engine
	log     *slog.Logger
}

// New wires a router over a database and platform connection.
func New(database *sql.DB, api platform.API, cfg *config.Config, scheduler *retract.Scheduler, log *slog.Logger) *Router {
	if log == nil {
		log = slog.Default()
	}
	g := gate.New(database, api)
	return &Router{
		db:      database,
		api:     api,
		cfg:     cfg,
		prompts: prompt.New(),
		engine:  deliver.New(database, api, g, scheduler, log),
		log:     log,
	}
}

// isAdmin reports whether userID may run admin-only commands.
func (r *Router) isAdmin(userID int64) bool {
	return userID == r.cfg.AdminID
}
