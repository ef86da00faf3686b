// Package telegram adapts the Telegram Bot API onto the platform
// contract the core consumes.
package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/teledrop/teledrop/internal/errors"
	"github.com/teledrop/teledrop/internal/platform"
	"github.com/teledrop/teledrop/internal/record"
)

// Client wraps a bot connection. The underlying library has no context
// support on calls, so the ctx arguments gate nothing here.
type Client struct {
	bot *tgbotapi.BotAPI
}

var _ platform.API = (*Client)(nil)

// New authenticates against the Bot API.
func New(token string) (*Client, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram auth failed: %w", err)
	}
	return &Client{bot: bot}, nil
}

// Username returns the bot's own username, used for building links.
func (c *Client) Username() string {
	return c.bot.Self.UserName
}

func (c *Client) SendMessage(_ context.Context, chatID int64, text string, buttons [][]platform.Button) (int, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	if len(buttons) > 0 {
		msg.ReplyMarkup = keyboard(buttons)
	}

	sent, err := c.bot.Send(msg)
	if err != nil {
		return 0, errors.NewUpstream("send_message", err)
	}
	return sent.MessageID, nil
}

func (c *Client) CopyMessage(_ context.Context, destChatID int64, ref record.SourceRef) (int, error) {
	copied, err := c.bot.CopyMessage(tgbotapi.NewCopyMessage(destChatID, ref.ChatID, ref.MessageID))
	if err != nil {
		return 0, errors.NewUpstream("copy_message", err)
	}
	return copied.MessageID, nil
}

func (c *Client) DeleteMessage(_ context.Context, chatID int64, messageID int) error {
	if _, err := c.bot.Request(tgbotapi.NewDeleteMessage(chatID, messageID)); err != nil {
		return errors.NewUpstream("delete_message", err)
	}
	return nil
}

func (c *Client) GetMembershipStatus(_ context.Context, channelID, userID int64) (platform.MemberStatus, error) {
	member, err := c.bot.GetChatMember(tgbotapi.GetChatMemberConfig{
		ChatConfigWithUser: tgbotapi.ChatConfigWithUser{
			ChatID: channelID,
			UserID: userID,
		},
	})
	if err != nil {
		return "", errors.NewUpstream("get_chat_member", err)
	}

	switch member.Status {
	case "creator":
		return platform.StatusOwner, nil
	case "administrator":
		return platform.StatusAdministrator, nil
	case "member":
		return platform.StatusMember, nil
	case "restricted":
		return platform.StatusRestricted, nil
	case "kicked":
		return platform.StatusBanned, nil
	}
	return platform.StatusLeft, nil
}

func (c *Client) ResolveChannel(_ context.Context, identifier string) (int64, error) {
	chat, err := c.bot.GetChat(tgbotapi.ChatInfoConfig{
		ChatConfig: tgbotapi.ChatConfig{SuperGroupUsername: identifier},
	})
	if err != nil {
		return 0, errors.NewUpstream("get_chat", err)
	}
	return chat.ID, nil
}

// keyboard converts button rows to the wire format.
func keyboard(rows [][]platform.Button) tgbotapi.InlineKeyboardMarkup {
	var wire [][]tgbotapi.InlineKeyboardButton
	for _, row := range rows {
		var wireRow []tgbotapi.InlineKeyboardButton
		for _, b := range row {
			if b.CallbackData != "" {
				wireRow = append(wireRow, tgbotapi.NewInlineKeyboardButtonData(b.Text, b.CallbackData))
			} else {
				wireRow = append(wireRow, tgbotapi.NewInlineKeyboardButtonURL(b.Text, b.URL))
			}
		}
		wire = append(wire, wireRow)
	}
	return tgbotapi.NewInlineKeyboardMarkup(wire...)
}
