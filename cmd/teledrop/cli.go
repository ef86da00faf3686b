package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/teledrop/teledrop/internal/bot"
	"github.com/teledrop/teledrop/internal/config"
	"github.com/teledrop/teledrop/internal/errors"
	"github.com/teledrop/teledrop/internal/ops"
	"github.com/teledrop/teledrop/internal/retract"
	"github.com/teledrop/teledrop/internal/telegram"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(db *sql.DB, cfg *config.Config) *cli.App {
	app := &cli.App{
		Name:    "teledrop",
		Usage:   "Token-gated content drops over Telegram",
		Version: Version,
		Commands: []*cli.Command{
			serveCmd(db, cfg),
			linksCmd(db),
			configCmd(db),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// serveCmd runs the bot against the live platform until interrupted.
func serveCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the bot (long polling)",
		Action: func(c *cli.Context) error {
			if cfg.BotToken == "" {
				return outputError(errors.NewInvalidRequest("bot token is not set (TELEDROP_BOT_TOKEN)"))
			}
			if cfg.AdminID == 0 {
				return outputError(errors.NewInvalidRequest("admin id is not set (TELEDROP_ADMIN_ID)"))
			}

			client, err := telegram.New(cfg.BotToken)
			if err != nil {
				return outputError(err)
			}
			if cfg.BotUsername == "" {
				cfg.BotUsername = client.Username()
			}

			log := slog.New(slog.NewTextHandler(os.Stderr, nil))
			scheduler := retract.New(client, log)
			router := bot.New(db, client, cfg, scheduler, log)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			log.Info("teledrop serving", "bot", cfg.BotUsername, "version", Version)
			client.Poll(ctx, router)
			log.Info("shutting down", "pending_retractions", scheduler.Pending())
			return nil
		},
	}
}

// linksCmd groups offline registry operations.
func linksCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "links",
		Usage: "Inspect and delete generated links",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List every link in insertion order",
				Action: func(c *cli.Context) error {
					output, err := ops.List(db)
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
			{
				Name:      "delete",
				Usage:     "Delete one link by token",
				ArgsUsage: "<token>",
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return outputError(errors.NewInvalidRequest("expected exactly one token argument"))
					}
					output, err := ops.Delete(db, c.Args().First())
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
			{
				Name:  "purge",
				Usage: "Delete every link and pending capture session",
				Action: func(c *cli.Context) error {
					output, err := ops.Purge(db)
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
		},
	}
}

// configCmd groups operator settings maintenance.
func configCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Inspect and adjust delivery settings",
		Subcommands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Print the effective settings",
				Action: func(c *cli.Context) error {
					settings, err := ops.GetSettings(db)
					if err != nil {
						return outputError(err)
					}
					return outputJSON(settings)
				},
			},
			{
				Name:      "set-ttl",
				Usage:     "Set the retention TTL in seconds (30..86400)",
				ArgsUsage: "<seconds>",
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return outputError(errors.NewInvalidRequest("expected exactly one seconds argument"))
					}
					seconds, err := strconv.Atoi(c.Args().First())
					if err != nil {
						return outputError(errors.NewInvalidRequest("seconds must be an integer"))
					}
					if err := ops.SetTTL(db, seconds); err != nil {
						return outputError(err)
					}
					settings, err := ops.GetSettings(db)
					if err != nil {
						return outputError(err)
					}
					return outputJSON(settings)
				},
			},
		},
	}
}

// Helper functions

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if dropErr, ok := err.(*errors.DropError); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", dropErr.Code, dropErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}
