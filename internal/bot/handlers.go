package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/teledrop/teledrop/internal/errors"
	"github.com/teledrop/teledrop/internal/ops"
	"github.com/teledrop/teledrop/internal/prompt"
	"github.com/teledrop/teledrop/internal/record"
)

// callbackRetryPrefix tags the retry button's callback data.
const callbackRetryPrefix = "tryagain|"

// Handle dispatches one update. Errors end up as user-visible notices;
// nothing propagates to the transport.
func (r *Router) Handle(ctx context.Context, u Update) {
	switch {
	case u.Callback != nil:
		r.handleCallback(ctx, u.Callback)
	case u.Message != nil:
		r.handleMessage(ctx, u.Message)
	}
}

func (r *Router) handleCallback(ctx context.Context, cb *Callback) {
	if token, ok := strings.CutPrefix(cb.Data, callbackRetryPrefix); ok {
		r.deliverTo(ctx, token, cb.From, cb.ChatID)
	}
}

func (r *Router) handleMessage(ctx context.Context, msg *Message) {
	if strings.HasPrefix(msg.Text, "/") {
		r.handleCommand(ctx, msg)
		return
	}
	r.handlePlain(ctx, msg)
}

func (r *Router) handleCommand(ctx context.Context, msg *Message) {
	cmd, args := splitCommand(msg.Text)

	if cmd == "/start" {
		if args == "" {
			r.reply(ctx, msg.ChatID, "👋 Send me a link token to receive content.")
			return
		}
		r.deliverTo(ctx, args, msg.From, msg.ChatID)
		return
	}

	if !r.isAdmin(msg.From) {
		r.replyErr(ctx, msg.ChatID, errors.NewUnauthorized())
		return
	}

	switch cmd {
	case "/batch":
		if err := ops.StartSession(r.db, msg.From); err != nil {
			r.replyErr(ctx, msg.ChatID, err)
			return
		}
		r.reply(ctx, msg.ChatID, "📦 Batch mode ON. Send your messages.")

	case "/batchoff":
		existed, err := ops.CancelSession(r.db, msg.From)
		if err != nil {
			r.replyErr(ctx, msg.ChatID, err)
			return
		}
		if existed {
			r.reply(ctx, msg.ChatID, "❌ Batch mode cancelled.")
		} else {
			r.reply(ctx, msg.ChatID, "ℹ️ No batch in progress.")
		}

	case "/generatebatch":
		out, err := ops.CommitSession(r.db, msg.From)
		if err != nil {
			r.replyErr(ctx, msg.ChatID, err)
			return
		}
		r.reply(ctx, msg.ChatID, "✅ Batch link generated: "+r.link(out.Token))

	case "/setchannels":
		r.prompts.EnterChannels(msg.From)
		r.reply(ctx, msg.ChatID, "📥 Send @channel usernames (one per line):")

	case "/cancelsetchannels":
		if r.prompts.State(msg.From) == prompt.AwaitingChannels && r.prompts.Cancel(msg.From) {
			r.reply(ctx, msg.ChatID, "❌ Channel setup cancelled.")
		} else {
			r.reply(ctx, msg.ChatID, "ℹ️ No channel setup in progress.")
		}

	case "/clearsetchannels":
		if _, err := ops.ClearChannels(r.db); err != nil {
			r.replyErr(ctx, msg.ChatID, err)
			return
		}
		r.reply(ctx, msg.ChatID, "✅ All required channels have been cleared.")

	case "/viewchannels":
		channels, err := ops.ListChannels(r.db)
		if err != nil {
			r.replyErr(ctx, msg.ChatID, err)
			return
		}
		if len(channels) == 0 {
			r.reply(ctx, msg.ChatID, "ℹ️ No required channels are currently set.")
			return
		}
		var b strings.Builder
		b.WriteString("📋 Required channels:")
		for _, ch := range channels {
			b.WriteString("\n• " + ch.Label)
		}
		r.reply(ctx, msg.ChatID, b.String())

	case "/setbutton":
		r.prompts.EnterButton(msg.From)
		r.reply(ctx, msg.ChatID, "📝 Send the new button text:")

	case "/cancelsetbutton":
		state := r.prompts.State(msg.From)
		if (state == prompt.AwaitingButtonText || state == prompt.AwaitingButtonURL) && r.prompts.Cancel(msg.From) {
			r.reply(ctx, msg.ChatID, "❌ Button setup cancelled.")
		} else {
			r.reply(ctx, msg.ChatID, "ℹ️ No button setup in progress.")
		}

	case "/promotext":
		if args == "" {
			r.reply(ctx, msg.ChatID, "❌ Usage: /promotext <your promo text> or /promotext clear")
			return
		}
		if strings.EqualFold(args, "clear") {
			if err := ops.ClearPromo(r.db); err != nil {
				r.replyErr(ctx, msg.ChatID, err)
				return
			}
			r.reply(ctx, msg.ChatID, "✅ Promo text cleared.")
			return
		}
		if err := ops.SetPromo(r.db, args); err != nil {
			r.replyErr(ctx, msg.ChatID, err)
			return
		}
		r.reply(ctx, msg.ChatID, "✅ Promo text set to:\n\n"+args)

	case "/setttl":
		seconds, err := strconv.Atoi(args)
		if err != nil {
			r.reply(ctx, msg.ChatID, "❌ Usage: /setttl <seconds>")
			return
		}
		if err := ops.SetTTL(r.db, seconds); err != nil {
			r.replyErr(ctx, msg.ChatID, err)
			return
		}
		r.reply(ctx, msg.ChatID, fmt.Sprintf("✅ Content now self-destructs %d seconds after delivery.", seconds))

	case "/listlinks":
		out, err := ops.List(r.db)
		if err != nil {
			r.replyErr(ctx, msg.ChatID, err)
			return
		}
		if out.Total == 0 {
			r.reply(ctx, msg.ChatID, "ℹ️ No links generated yet.")
			return
		}
		var b strings.Builder
		b.WriteString(fmt.Sprintf("🔗 %d links:", out.Total))
		for _, item := range out.Items {
			b.WriteString(fmt.Sprintf("\n• %s (%s, %d items)", item.Token, item.Kind, item.Items))
		}
		r.reply(ctx, msg.ChatID, b.String())

	case "/deletelink":
		if args == "" {
			r.reply(ctx, msg.ChatID, "❌ Usage: /deletelink <token>")
			return
		}
		if _, err := ops.Delete(r.db, args); err != nil {
			r.replyErr(ctx, msg.ChatID, err)
			return
		}
		r.reply(ctx, msg.ChatID, "✅ Link deleted.")

	case "/deletealllinks":
		out, err := ops.Purge(r.db)
		if err != nil {
			r.replyErr(ctx, msg.ChatID, err)
			return
		}
		r.reply(ctx, msg.ChatID, "✅ "+out.Message)

	case "/allcommands":
		r.reply(ctx, msg.ChatID, allCommandsText)

	default:
		r.reply(ctx, msg.ChatID, "❓ Unknown command. Use /allcommands to see available commands.")
	}
}

// handlePlain routes a non-command message. For the admin it feeds the
// prompt machine first, then the capture session, then falls back to
// minting a single link.
func (r *Router) handlePlain(ctx context.Context, msg *Message) {
	if !r.isAdmin(msg.From) {
		return
	}

	result := r.prompts.Advance(msg.From, msg.Text)
	switch result.Outcome {
	case prompt.OutcomeReplaceChannels:
		channels, err := ops.ReplaceChannels(ctx, r.db, r.api, result.Channels)
		if err != nil {
			r.replyErr(ctx, msg.ChatID, err)
			return
		}
		r.reply(ctx, msg.ChatID, fmt.Sprintf("✅ Required channels updated (%d).", len(channels)))
		return

	case prompt.OutcomeAwaitURL:
		r.reply(ctx, msg.ChatID, "🔗 Now send the button URL:")
		return

	case prompt.OutcomeCommitButton:
		if err := ops.SetButton(r.db, result.ButtonText, result.ButtonURL); err != nil {
			r.replyErr(ctx, msg.ChatID, err)
			return
		}
		r.reply(ctx, msg.ChatID, fmt.Sprintf("✅ Button set: %s → %s", result.ButtonText, result.ButtonURL))
		return
	}

	ref := record.SourceRef{ChatID: msg.ChatID, MessageID: msg.MessageID}

	active, err := ops.SessionActive(r.db, msg.From)
	if err != nil {
		r.replyErr(ctx, msg.ChatID, err)
		return
	}
	if active {
		if err := ops.AppendToSession(r.db, msg.From, ref); err != nil {
			r.replyErr(ctx, msg.ChatID, err)
			return
		}
		r.reply(ctx, msg.ChatID, "➕ Added to batch.")
		return
	}

	out, err := ops.CreateSingle(r.db, ref)
	if err != nil {
		r.replyErr(ctx, msg.ChatID, err)
		return
	}
	r.reply(ctx, msg.ChatID, "✅ Link generated: "+r.link(out.Token))
}
