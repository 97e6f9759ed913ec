package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rnakano/betboard/internal/models"
)

// BoardAPI is the slice of the API client a board session needs.
// Implemented by *boardapi.Client.
type BoardAPI interface {
	FetchBoard(ctx context.Context, eventID string) (*models.Board, error)
	FetchOptionBets(ctx context.Context, optionID string) ([]models.Bet, error)
	PlaceBet(ctx context.Context, optionID string, amount float64, username string) error
}

// ErrInvalidDraft is returned by PlaceBet when the draft fails the submit
// gate (amount > 0, non-blank username). No request is issued in that case;
// the view uses the same gate to keep the submit action disabled.
var ErrInvalidDraft = errors.New("bet draft requires amount > 0 and a username")

// Session is the state of one open event-detail view: the latest board
// snapshot plus the per-option interaction state that must survive snapshot
// replacement. The snapshot may be written from a polling goroutine, so it
// sits behind its own lock.
type Session struct {
	api     BoardAPI
	eventID string
	Options *OptionStates

	mu    sync.RWMutex
	board *models.Board
}

// New creates a session for one event. The board is nil until the first
// fetch lands.
func New(api BoardAPI, eventID string) *Session {
	return &Session{
		api:     api,
		eventID: eventID,
		Options: NewOptionStates(),
	}
}

// EventID returns the event this session is bound to.
func (s *Session) EventID() string {
	return s.eventID
}

// Board returns the current snapshot, or nil before the first fetch.
func (s *Session) Board() *models.Board {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.board
}

// SetBoard replaces the snapshot wholesale. Per-option interaction state is
// untouched: it is keyed by option ID, not by board identity.
func (s *Session) SetBoard(board *models.Board) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.board = board
}

// Reload fetches a fresh snapshot and replaces the current one.
func (s *Session) Reload(ctx context.Context) error {
	board, err := s.api.FetchBoard(ctx, s.eventID)
	if err != nil {
		return err
	}
	s.SetBoard(board)
	return nil
}

// ToggleForm flips the bet form for an option.
func (s *Session) ToggleForm(optionID string) bool {
	return s.Options.ToggleForm(optionID)
}

// ToggleDetails flips the bet-detail panel for an option. The first open for
// an option fetches its bet list exactly once; later opens reuse the cache
// until a bet submission for that option invalidates it. A failed fetch
// leaves the panel open and the cache unpopulated.
func (s *Session) ToggleDetails(ctx context.Context, optionID string) (bool, error) {
	open, needFetch := s.Options.toggleDetails(optionID)
	if !needFetch {
		return open, nil
	}

	bets, err := s.api.FetchOptionBets(ctx, optionID)
	if err != nil {
		return open, fmt.Errorf("failed to load bets for option %s: %w", optionID, err)
	}
	s.Options.SetBets(optionID, bets)
	return open, nil
}

// UpdateDraft shallow-merges patch into an option's draft.
func (s *Session) UpdateDraft(optionID string, patch DraftPatch) {
	s.Options.UpdateDraft(optionID, patch)
}

// PlaceBet runs the submission flow for an option's current draft:
//
//  1. place the bet
//  2. reset the draft (the form stays open)
//  3. refetch the board, for read-your-write pool totals and odds
//  4. if the option's detail panel is open, force-refetch its bet list so
//     the new bet is visible without a manual refresh
//
// Steps run strictly in order; each awaits the previous. On failure the
// error is returned to the caller and the draft is left populated so the
// user can retry.
func (s *Session) PlaceBet(ctx context.Context, optionID string) error {
	st := s.Options.Get(optionID)
	if !st.Draft.Valid() {
		return ErrInvalidDraft
	}
	amount := *st.Draft.Amount
	username := strings.TrimSpace(st.Draft.Username)

	if err := s.api.PlaceBet(ctx, optionID, amount, username); err != nil {
		return err
	}

	s.Options.ResetDraft(optionID)

	if err := s.Reload(ctx); err != nil {
		return err
	}

	if s.Options.DetailsOpen(optionID) {
		bets, err := s.api.FetchOptionBets(ctx, optionID)
		if err != nil {
			return fmt.Errorf("failed to refresh bets for option %s: %w", optionID, err)
		}
		s.Options.SetBets(optionID, bets)
	}
	return nil
}
