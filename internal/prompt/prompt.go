// Package prompt tracks per-admin multi-turn input capture for the
// operator settings that need a follow-up message. State is one
// explicit tag per admin; every transition is covered, so there are no
// reachable-but-unhandled flag combinations.
package prompt

import "sync"

// State is the per-admin prompt position.
type State int

const (
	Idle State = iota
	AwaitingChannels
	AwaitingButtonText
	AwaitingButtonURL
)

// String implements fmt.Stringer for log output.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case AwaitingChannels:
		return "awaiting_channels"
	case AwaitingButtonText:
		return "awaiting_button_text"
	case AwaitingButtonURL:
		return "awaiting_button_url"
	}
	return "unknown"
}

// Outcome tells the caller what an advanced message means.
type Outcome int

const (
	// OutcomeNone: the machine was idle, the message is not prompt input
	OutcomeNone Outcome = iota

	// OutcomeReplaceChannels: Channels holds the raw identifier lines
	OutcomeReplaceChannels

	// OutcomeAwaitURL: label stored, the next message is the URL
	OutcomeAwaitURL

	// OutcomeCommitButton: ButtonText and ButtonURL are both ready
	OutcomeCommitButton
)

// Result carries the values collected by Advance.
type Result struct {
	Outcome    Outcome
	Channels   string
	ButtonText string
	ButtonURL  string
}

type entry struct {
	state       State
	pendingText string
}

// Machine holds the prompt state for every admin. Transient: it is not
// part of the durable snapshot.
type Machine struct {
	mu      sync.Mutex
	entries map[int64]entry
}

// New returns an empty machine; every admin starts Idle.
func New() *Machine {
	return &Machine{entries: make(map[int64]entry)}
}

// State returns the admin's current position.
func (m *Machine) State(adminID int64) State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.entries[adminID].state
}

// EnterChannels arms the channel-list prompt, discarding any other
// prompt in progress for this admin.
func (m *Machine) EnterChannels(adminID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[adminID] = entry{state: AwaitingChannels}
}

// EnterButton arms the two-step button prompt.
func (m *Machine) EnterButton(adminID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[adminID] = entry{state: AwaitingButtonText}
}

// Advance consumes the admin's next plain message. The machine returns
// to Idle on every terminal outcome; partial values never leak.
func (m *Machine) Advance(adminID int64, text string) Result {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := m.entries[adminID]
	switch e.state {
	case AwaitingChannels:
		delete(m.entries, adminID)
		return Result{Outcome: OutcomeReplaceChannels, Channels: text}

	case AwaitingButtonText:
		m.entries[adminID] = entry{state: AwaitingButtonURL, pendingText: text}
		return Result{Outcome: OutcomeAwaitURL, ButtonText: text}

	case AwaitingButtonURL:
		delete(m.entries, adminID)
		return Result{Outcome: OutcomeCommitButton, ButtonText: e.pendingText, ButtonURL: text}
	}

	return Result{Outcome: OutcomeNone}
}

// Cancel returns the admin to Idle, discarding any partially entered
// value. Reports whether a prompt was in progress.
func (m *Machine) Cancel(adminID int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[adminID]
	if !ok || e.state == Idle {
		return false
	}
	delete(m.entries, adminID)
	return true
}
