// Package models defines the core domain entities for the betboard client.
// All of them are transient copies of server-owned state: the board API owns
// events, options, pooled stakes, odds, and bets, and the client only renders
// snapshots of them.
//
// Terminology (matching the board API's own naming):
//   - Event: a bettable occasion with a title, under which options exist.
//   - Option: one outcome of an Event that can receive stakes.
//   - Board: the aggregated read-view of an Event's options, pool total, and odds.
//   - Bet: a single stake placed by a user on an Option.
package models

import "errors"

// Event is a bettable occasion. Created via explicit user action; never
// mutated or deleted from this client.
type Event struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Validate checks that all event fields are valid.
func (e *Event) Validate() error {
	if e.ID == "" {
		return errors.New("event ID must not be empty")
	}
	if e.Title == "" {
		return errors.New("event title must not be empty")
	}
	return nil
}

// EventPage is one page of the paginated event list. Count is the total number
// of matching events, not the number of rows in Results.
type EventPage struct {
	Results []Event `json:"results"`
	Count   int     `json:"count"`
}
