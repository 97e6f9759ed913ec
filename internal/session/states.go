// Package session holds the client-side state behind one running view: the
// board snapshot for an open event, the per-option interaction state attached
// to it, and the paginated event-list state. Interaction state is keyed by
// option ID and deliberately decoupled from the snapshot's lifecycle:
// replacing the board never resets a toggle or an in-progress draft.
package session

import (
	"sync"

	"github.com/rnakano/betboard/internal/models"
)

// OptionState is the interaction state attached to one option: the two UI
// toggles, the pending bet draft, and the lazily fetched bet list.
type OptionState struct {
	FormOpen    bool
	DetailsOpen bool
	Draft       models.Draft
	Bets        []models.Bet
	BetsLoaded  bool // cache filled at least once; guards the fetch-once rule
}

// DraftPatch is a shallow merge into a draft: nil fields are left untouched.
type DraftPatch struct {
	Amount   *float64
	Username *string
}

// OptionStates is a thread-safe option_id → OptionState table. Entries are
// created lazily on first touch and live until the owning session is dropped.
type OptionStates struct {
	mu     sync.RWMutex
	states map[string]*OptionState
}

// NewOptionStates creates an empty state table.
func NewOptionStates() *OptionStates {
	return &OptionStates{
		states: make(map[string]*OptionState),
	}
}

// state returns the entry for optionID, creating it if needed. Callers must
// hold the write lock.
func (s *OptionStates) state(optionID string) *OptionState {
	st, ok := s.states[optionID]
	if !ok {
		st = &OptionState{}
		s.states[optionID] = st
	}
	return st
}

// Get returns a copy of the state for optionID. A never-touched option yields
// the zero state.
func (s *OptionStates) Get(optionID string) OptionState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.states[optionID]
	if !ok {
		return OptionState{}
	}
	return *st
}

// ToggleForm flips the bet form for an option and returns the new value.
// No network effect; the draft is kept either way.
func (s *OptionStates) ToggleForm(optionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state(optionID)
	st.FormOpen = !st.FormOpen
	return st.FormOpen
}

// toggleDetails flips the detail panel and reports whether a bet-list fetch
// is due: only on a close→open transition with no cache entry yet.
func (s *OptionStates) toggleDetails(optionID string) (open, needFetch bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state(optionID)
	st.DetailsOpen = !st.DetailsOpen
	return st.DetailsOpen, st.DetailsOpen && !st.BetsLoaded
}

// DetailsOpen reports whether the detail panel for optionID is open.
func (s *OptionStates) DetailsOpen(optionID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.states[optionID]
	return ok && st.DetailsOpen
}

// UpdateDraft shallow-merges patch into the option's draft. No validation
// happens here; the submit gate runs at submission time.
func (s *OptionStates) UpdateDraft(optionID string, patch DraftPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state(optionID)
	if patch.Amount != nil {
		v := *patch.Amount
		st.Draft.Amount = &v
	}
	if patch.Username != nil {
		st.Draft.Username = *patch.Username
	}
}

// ResetDraft clears the option's draft back to empty. The form toggle is
// untouched.
func (s *OptionStates) ResetDraft(optionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state(optionID)
	st.Draft = models.Draft{}
}

// SetBets replaces the cached bet list for an option and marks the cache
// populated. Failed fetches never reach here, so a failed first load leaves
// the fetch-once rule armed for the next open.
func (s *OptionStates) SetBets(optionID string, bets []models.Bet) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state(optionID)
	st.Bets = bets
	st.BetsLoaded = true
}
