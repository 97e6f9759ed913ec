// Package view renders client state as text. It is deliberately dumb:
// formatting only, no fetching and no state mutation.
package view

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/rnakano/betboard/internal/models"
	"github.com/rnakano/betboard/internal/session"
)

// FormatOdds renders server-computed odds. nil means the server cannot
// compute them yet and renders as "-".
func FormatOdds(odds *float64) string {
	if odds == nil {
		return "-"
	}
	return strconv.FormatFloat(*odds, 'f', 2, 64)
}

// FormatTime renders a bet timestamp in local time.
func FormatTime(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04:05")
}

// FormatAmount renders a server-side decimal string, with "-" for absent.
func FormatAmount(amount string) string {
	if amount == "" {
		return "-"
	}
	return amount
}

// RenderEventList writes the current page of the event list as a table,
// followed by the pagination line. Prev/next hints appear only when that
// direction is navigable.
func RenderEventList(w io.Writer, list *session.EventList) {
	fmt.Fprintln(w, "Event List")
	if list.Search() != "" {
		fmt.Fprintf(w, "search: %q\n", list.Search())
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE")
	for _, ev := range list.Events() {
		fmt.Fprintf(tw, "%s\t%s\n", ev.ID, ev.Title)
	}
	tw.Flush()

	nav := ""
	if list.HasPrev() {
		nav += "  [prev]"
	}
	if list.HasNext() {
		nav += "  [next]"
	}
	fmt.Fprintf(w, "Page %d / %d%s\n", list.Page(), list.TotalPages(), nav)
}

// RenderBoard writes the board table for an open session, then a section for
// every option whose form or detail panel is open. A nil snapshot renders a
// loading line; the first fetch has not landed yet.
func RenderBoard(w io.Writer, s *session.Session) {
	board := s.Board()
	if board == nil {
		fmt.Fprintln(w, "Loading...")
		return
	}

	fmt.Fprintf(w, "%s (event %s)\n", board.Title, board.EventID)
	fmt.Fprintf(w, "total pool: %s\n", FormatAmount(board.TotalPool))

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "OPTION\tNAME\tSTAKE\tODDS")
	for _, opt := range board.Options {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			opt.OptionID, opt.Name, FormatAmount(opt.TotalAmount), FormatOdds(opt.Odds))
	}
	tw.Flush()

	for _, opt := range board.Options {
		st := s.Options.Get(opt.OptionID)
		if st.FormOpen {
			renderForm(w, opt, st.Draft)
		}
		if st.DetailsOpen {
			fmt.Fprintf(w, "bets on %s:\n", opt.Name)
			RenderBets(w, st.Bets)
		}
	}
}

// renderForm shows the pending draft for one option and whether the submit
// gate would pass.
func renderForm(w io.Writer, opt models.Option, draft models.Draft) {
	amount := "-"
	if draft.Amount != nil {
		amount = strconv.FormatFloat(*draft.Amount, 'f', -1, 64)
	}
	username := draft.Username
	if username == "" {
		username = "-"
	}

	gate := ""
	if !draft.Valid() {
		gate = "  (submit disabled: need amount > 0 and a username)"
	}
	fmt.Fprintf(w, "bet form %s: amount=%s user=%s%s\n", opt.Name, amount, username, gate)
}

// RenderBets writes an option's bet list as a table, or a placeholder when
// empty.
func RenderBets(w io.Writer, bets []models.Bet) {
	if len(bets) == 0 {
		fmt.Fprintln(w, "  no bets yet")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "  USER\tAMOUNT\tDATE")
	for _, b := range bets {
		fmt.Fprintf(tw, "  %s\t%s\t%s\n", b.Username, b.Amount, FormatTime(b.CreatedAt))
	}
	tw.Flush()
}
