// Package platform defines the contract the core expects from the chat
// platform. The transport layer (long polling, webhooks) lives outside
// this module's core and adapts the real wire API onto this interface.
package platform

import (
	"context"

	"github.com/teledrop/teledrop/internal/record"
)

// MemberStatus is a requester's standing in a channel.
type MemberStatus string

const (
	StatusMember        MemberStatus = "member"
	StatusAdministrator MemberStatus = "administrator"
	StatusOwner         MemberStatus = "owner" // the wire API calls this "creator"
	StatusLeft          MemberStatus = "left"
	StatusBanned        MemberStatus = "banned"
	StatusRestricted    MemberStatus = "restricted"
)

// Satisfies reports whether the status grants access through the gate.
func (s MemberStatus) Satisfies() bool {
	switch s {
	case StatusMember, StatusAdministrator, StatusOwner:
		return true
	}
	return false
}

// Button is one inline action attached to a message.
type Button struct {
	// Text is the visible label
	Text string

	// URL opens a link when pressed. Mutually exclusive with CallbackData.
	URL string

	// CallbackData is delivered back to the router when pressed
	CallbackData string
}

// API is the set of platform operations the core consumes.
type API interface {
	// SendMessage sends text (with optional button rows) to a chat and
	// returns the new message id.
	SendMessage(ctx context.Context, chatID int64, text string, buttons [][]Button) (int, error)

	// CopyMessage replays a source reference into a destination chat,
	// returning the id of the new copy.
	CopyMessage(ctx context.Context, destChatID int64, ref record.SourceRef) (int, error)

	// DeleteMessage removes a message. Failure is non-fatal to callers.
	DeleteMessage(ctx context.Context, chatID int64, messageID int) error

	// GetMembershipStatus queries a requester's standing in a channel.
	GetMembershipStatus(ctx context.Context, channelID, userID int64) (MemberStatus, error)

	// ResolveChannel turns an identifier like "@news" into a chat id.
	// Used only while the operator is replacing the required-channel set.
	ResolveChannel(ctx context.Context, identifier string) (int64, error)
}
