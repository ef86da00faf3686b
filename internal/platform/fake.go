package platform

import (
	"context"
	"fmt"
	"sync"

	"github.com/teledrop/teledrop/internal/record"
)

// SentMessage is one message the fake has produced.
type SentMessage struct {
	ID      int
	ChatID  int64
	Text    string
	Buttons [][]Button
	// CopiedFrom is set when the message came from CopyMessage
	CopiedFrom *record.SourceRef
	Deleted    bool
}

// Fake is an in-memory API implementation for tests. All methods are
// safe for concurrent use.
type Fake struct {
	mu     sync.Mutex
	nextID int

	// Messages holds everything sent or copied, in order
	Messages []SentMessage

	// Memberships maps channelID -> userID -> status. Missing entries
	// report StatusLeft.
	Memberships map[int64]map[int64]MemberStatus

	// Channels maps identifier -> chat id for ResolveChannel
	Channels map[string]int64

	// FailCopies marks source message ids whose copy must fail
	FailCopies map[int]bool

	// FailSends marks message texts whose send must fail
	FailSends map[string]bool

	// FailDeletes marks message ids whose deletion must fail
	FailDeletes map[int]bool

	// MembershipErr, when set, fails every GetMembershipStatus call
	MembershipErr error
}

var _ API = (*Fake)(nil)

// NewFake returns an empty fake platform.
func NewFake() *Fake {
	return &Fake{
		Memberships: make(map[int64]map[int64]MemberStatus),
		Channels:    make(map[string]int64),
		FailCopies:  make(map[int]bool),
		FailSends:   make(map[string]bool),
		FailDeletes: make(map[int]bool),
	}
}

// SetMembership records a user's standing in a channel.
func (f *Fake) SetMembership(channelID, userID int64, status MemberStatus) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Memberships[channelID] == nil {
		f.Memberships[channelID] = make(map[int64]MemberStatus)
	}
	f.Memberships[channelID][userID] = status
}

func (f *Fake) SendMessage(_ context.Context, chatID int64, text string, buttons [][]Button) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailSends[text] {
		return 0, fmt.Errorf("message send rejected")
	}
	f.nextID++
	f.Messages = append(f.Messages, SentMessage{
		ID:      f.nextID,
		ChatID:  chatID,
		Text:    text,
		Buttons: buttons,
	})
	return f.nextID, nil
}

func (f *Fake) CopyMessage(_ context.Context, destChatID int64, ref record.SourceRef) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailCopies[ref.MessageID] {
		return 0, fmt.Errorf("message to copy not found")
	}
	f.nextID++
	r := ref
	f.Messages = append(f.Messages, SentMessage{
		ID:         f.nextID,
		ChatID:     destChatID,
		CopiedFrom: &r,
	})
	return f.nextID, nil
}

func (f *Fake) DeleteMessage(_ context.Context, chatID int64, messageID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailDeletes[messageID] {
		return fmt.Errorf("message can't be deleted")
	}
	for i := range f.Messages {
		if f.Messages[i].ID == messageID && f.Messages[i].ChatID == chatID {
			f.Messages[i].Deleted = true
			return nil
		}
	}
	return fmt.Errorf("message to delete not found")
}

func (f *Fake) GetMembershipStatus(_ context.Context, channelID, userID int64) (MemberStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.MembershipErr != nil {
		return "", f.MembershipErr
	}
	if users, ok := f.Memberships[channelID]; ok {
		if status, ok := users[userID]; ok {
			return status, nil
		}
	}
	return StatusLeft, nil
}

func (f *Fake) ResolveChannel(_ context.Context, identifier string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if chatID, ok := f.Channels[identifier]; ok {
		return chatID, nil
	}
	return 0, fmt.Errorf("chat not found: %s", identifier)
}

// Delivered returns the ids of non-deleted messages in a chat, in send order.
func (f *Fake) Delivered(chatID int64) []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	var ids []int
	for _, m := range f.Messages {
		if m.ChatID == chatID && !m.Deleted {
			ids = append(ids, m.ID)
		}
	}
	return ids
}

// Message returns a sent message by id.
func (f *Fake) Message(id int) (SentMessage, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.Messages {
		if m.ID == id {
			return m, true
		}
	}
	return SentMessage{}, false
}
