// Package notify pushes board-movement alerts to Telegram while a board is
// being watched. It is optional and off by default; the polling loop's
// replacement semantics do not depend on it.
package notify

import "github.com/rnakano/betboard/internal/models"

// OptionChange records movement on one board option between two snapshots.
type OptionChange struct {
	OptionID  string
	Name      string
	OldAmount string
	NewAmount string
	OldOdds   *float64
	NewOdds   *float64
}

// DiffBoards compares consecutive snapshots of the same board and returns the
// options whose stake total or odds moved, in next-snapshot order. An option
// appearing for the first time counts as a change. A nil prev yields no
// changes: the first snapshot is a baseline, not a move.
func DiffBoards(prev, next *models.Board) []OptionChange {
	if prev == nil || next == nil {
		return nil
	}

	old := make(map[string]models.Option, len(prev.Options))
	for _, opt := range prev.Options {
		old[opt.OptionID] = opt
	}

	var changes []OptionChange
	for _, opt := range next.Options {
		before, existed := old[opt.OptionID]
		if existed && before.TotalAmount == opt.TotalAmount && oddsEqual(before.Odds, opt.Odds) {
			continue
		}
		changes = append(changes, OptionChange{
			OptionID:  opt.OptionID,
			Name:      opt.Name,
			OldAmount: before.TotalAmount,
			NewAmount: opt.TotalAmount,
			OldOdds:   before.Odds,
			NewOdds:   opt.Odds,
		})
	}
	return changes
}

func oddsEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
