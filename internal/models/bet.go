package models

import (
	"errors"
	"strings"
	"time"
)

// Bet is a single stake placed on an option. Immutable once created; the
// client's view of an option's bets is append-only and only grows by
// refetching.
type Bet struct {
	ID        string    `json:"id"`
	Option    string    `json:"option"`
	Username  string    `json:"username"`
	Amount    string    `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

// Validate checks that all bet fields are valid.
func (b *Bet) Validate() error {
	if b.ID == "" {
		return errors.New("bet ID must not be empty")
	}
	if b.Option == "" {
		return errors.New("bet option ID must not be empty")
	}
	if b.Username == "" {
		return errors.New("bet username must not be empty")
	}
	if b.Amount == "" {
		return errors.New("bet amount must not be empty")
	}
	return nil
}

// Draft is the client-held, unsaved bet input for one option. Amount is a
// pointer so "not yet entered" stays distinguishable from an entered zero.
// A draft is never sent to the server until submit.
type Draft struct {
	Amount   *float64
	Username string
}

// Valid reports whether the draft passes the submit gate: amount > 0 and a
// non-blank username. The same check disables the submit action in the view.
func (d Draft) Valid() bool {
	return d.Amount != nil && *d.Amount > 0 && strings.TrimSpace(d.Username) != ""
}
