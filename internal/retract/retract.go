// Package retract deletes every message a delivery produced once the
// retention window elapses. Retractions are one-shot, best-effort, and
// cannot be cancelled: once scheduled they fire exactly once, and a
// per-message deletion failure never blocks the remaining ids.
package retract

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/teledrop/teledrop/internal/platform"
)

type pending struct {
	chatID     int64
	messageIDs []int
}

// Scheduler is a deferred-task registry keyed by delivery id. Each
// delivery gets its own independent retraction; there is no global
// sweep and no coalescing.
type Scheduler struct {
	api   platform.API
	clock Clock
	log   *slog.Logger

	mu     sync.Mutex
	nextID int64
	tasks  map[int64]pending
}

// New returns a scheduler on the system clock.
func New(api platform.API, log *slog.Logger) *Scheduler {
	return NewWithClock(api, log, SystemClock{})
}

// NewWithClock returns a scheduler on an injected clock.
func NewWithClock(api platform.API, log *slog.Logger, clock Clock) *Scheduler {
	if log == nil {
		log = slog.Default()
	}
	return &Scheduler{
		api:   api,
		clock: clock,
		log:   log,
		tasks: make(map[int64]pending),
	}
}

// Schedule arranges deletion of messageIDs from chatID after ttl.
// Returns the delivery id of the scheduled retraction. The id list is
// copied; callers may reuse the slice.
func (s *Scheduler) Schedule(chatID int64, messageIDs []int, ttl time.Duration) int64 {
	ids := make([]int, len(messageIDs))
	copy(ids, messageIDs)

	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.tasks[id] = pending{chatID: chatID, messageIDs: ids}
	s.mu.Unlock()

	s.clock.AfterFunc(ttl, func() { s.fire(id) })

	s.log.Debug("retraction scheduled",
		"delivery", id, "chat", chatID, "messages", len(ids), "ttl", ttl)
	return id
}

// fire deletes each message in order. Failures (already gone, no
// permission) are swallowed: not retried, not reported.
func (s *Scheduler) fire(id int64) {
	s.mu.Lock()
	task, ok := s.tasks[id]
	delete(s.tasks, id)
	s.mu.Unlock()
	if !ok {
		return
	}

	failed := 0
	for _, msgID := range task.messageIDs {
		if err := s.api.DeleteMessage(context.Background(), task.chatID, msgID); err != nil {
			failed++
		}
	}

	s.log.Info("retraction fired",
		"delivery", id, "chat", task.chatID,
		"messages", len(task.messageIDs), "failed", failed)
}

// Pending reports how many retractions have not fired yet.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}
