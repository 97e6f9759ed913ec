package models

import (
	"errors"
	"fmt"
)

// Option is one outcome row on a board. TotalAmount is a decimal carried as a
// string; the server computes it and the client never does arithmetic on it.
// Odds is nil until the server has enough data to compute it.
type Option struct {
	OptionID    string   `json:"option_id"`
	Name        string   `json:"name"`
	TotalAmount string   `json:"total_amount"`
	Odds        *float64 `json:"odds"`
}

// Board is the server-computed read model for one event. The client only ever
// holds it as a snapshot: every poll or read-after-write replaces it
// wholesale, never merges into it.
type Board struct {
	EventID   string   `json:"event_id"`
	Title     string   `json:"title"`
	TotalPool string   `json:"total_pool"`
	Options   []Option `json:"options"`
}

// Validate checks that all board fields are valid.
func (b *Board) Validate() error {
	if b.EventID == "" {
		return errors.New("board event ID must not be empty")
	}
	for i := range b.Options {
		if b.Options[i].OptionID == "" {
			return fmt.Errorf("option %d: ID must not be empty", i)
		}
	}
	return nil
}

// Option returns the option with the given ID, if present on this snapshot.
func (b *Board) Option(optionID string) (*Option, bool) {
	for i := range b.Options {
		if b.Options[i].OptionID == optionID {
			return &b.Options[i], true
		}
	}
	return nil, false
}
