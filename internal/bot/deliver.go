package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/teledrop/teledrop/internal/db"
	"github.com/teledrop/teledrop/internal/errors"
	"github.com/teledrop/teledrop/internal/platform"
)

// deliverTo runs one delivery attempt and surfaces the outcome: the
// join prompt with a retry button when the gate blocks, a notice on an
// unknown token, the content otherwise.
func (r *Router) deliverTo(ctx context.Context, token string, userID, chatID int64) {
	result, err := r.engine.Deliver(ctx, token, userID, chatID)
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			r.reply(ctx, chatID, "❌ Invalid or expired link.")
			return
		}
		r.replyErr(ctx, chatID, err)
		return
	}

	if result.Blocked {
		settings, err := db.GetSettings(r.db)
		if err != nil {
			r.replyErr(ctx, chatID, err)
			return
		}

		var rows [][]platform.Button
		for _, ch := range result.Channels {
			rows = append(rows, []platform.Button{{
				Text: ch.Label,
				URL:  joinURL(ch.Label),
			}})
		}
		rows = append(rows, []platform.Button{{
			Text:         "✅ Try Again",
			CallbackData: callbackRetryPrefix + token,
		}})

		if _, err := r.api.SendMessage(ctx, chatID, settings.JoinText, rows); err != nil {
			r.log.Warn("join prompt send failed", "chat", chatID, "err", err)
		}
		return
	}

	if result.Failed > 0 {
		r.reply(ctx, chatID, fmt.Sprintf("⚠️ %d item(s) could not be delivered.", result.Failed))
	}
}

// joinURL builds a join link for a channel label like "@news".
func joinURL(label string) string {
	return "https://t.me/" + strings.TrimPrefix(label, "@")
}

// link builds the distributable link embedding a token.
func (r *Router) link(token string) string {
	return fmt.Sprintf("https://t.me/%s?start=%s", r.cfg.BotUsername, token)
}

// reply sends a plain notice, logging (not propagating) send failures.
func (r *Router) reply(ctx context.Context, chatID int64, text string) {
	if _, err := r.api.SendMessage(ctx, chatID, text, nil); err != nil {
		r.log.Warn("reply send failed", "chat", chatID, "err", err)
	}
}

// replyErr turns a core error into a user-visible notice.
func (r *Router) replyErr(ctx context.Context, chatID int64, err error) {
	if dErr, ok := err.(*errors.DropError); ok {
		switch dErr.Code {
		case errors.ErrUnauthorized:
			r.reply(ctx, chatID, "❌ You are not authorized to use this command.")
			return
		case errors.ErrInvalidRequest:
			r.reply(ctx, chatID, "❌ "+dErr.Message)
			return
		case errors.ErrNotFound:
			r.reply(ctx, chatID, "❌ "+dErr.Message)
			return
		}
	}
	r.log.Error("operation failed", "err", err)
	r.reply(ctx, chatID, "⚠️ Something went wrong. Try again later.")
}

// splitCommand separates "/cmd@bot arg1 arg2" into "/cmd" and "arg1 arg2".
func splitCommand(text string) (cmd, args string) {
	cmd = text
	if i := strings.IndexByte(text, ' '); i >= 0 {
		cmd, args = text[:i], strings.TrimSpace(text[i+1:])
	}
	if i := strings.IndexByte(cmd, '@'); i >= 0 {
		cmd = cmd[:i]
	}
	return strings.ToLower(cmd), args
}

// allCommandsText lists the admin command set.
const allCommandsText = `📖 Commands:
/batch - Start batch mode
/generatebatch - Generate batch link
/batchoff - Cancel batch
/setchannels - Set required channels
/cancelsetchannels - Cancel channel setup
/clearsetchannels - Clear all required channels
/viewchannels - View current required channels
/setbutton - Set button text and link
/cancelsetbutton - Cancel button setup
/promotext - Set or clear promo message
/setttl - Set self-destruct delay in seconds
/listlinks - List generated links
/deletelink - Delete one link
/deletealllinks - Delete every link
/allcommands - Show all commands`
