package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/teledrop/teledrop/internal/bot"
)

// Poll runs a long-polling loop, translating wire updates into router
// events until ctx is cancelled.
func (c *Client) Poll(ctx context.Context, router *bot.Router) {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = 30

	updates := c.bot.GetUpdatesChan(cfg)
	defer c.bot.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if u := translate(update); u != nil {
				router.Handle(ctx, *u)
			}
			if update.CallbackQuery != nil {
				// Stop the client-side spinner; the answer body is unused
				_, _ = c.bot.Request(tgbotapi.NewCallback(update.CallbackQuery.ID, ""))
			}
		}
	}
}

// translate converts a wire update into a router event, dropping
// shapes the router has no use for (edits, channel posts, joins).
func translate(update tgbotapi.Update) *bot.Update {
	if cq := update.CallbackQuery; cq != nil && cq.Message != nil {
		return &bot.Update{Callback: &bot.Callback{
			ChatID: cq.Message.Chat.ID,
			From:   cq.From.ID,
			Data:   cq.Data,
		}}
	}

	if msg := update.Message; msg != nil && msg.From != nil {
		text := msg.Text
		if text == "" {
			// Media messages carry their caption as the routable text
			text = msg.Caption
		}
		return &bot.Update{Message: &bot.Message{
			ChatID:    msg.Chat.ID,
			MessageID: msg.MessageID,
			From:      msg.From.ID,
			Text:      text,
		}}
	}

	return nil
}
