package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jonboulle/clockwork"
	"github.com/rnakano/betboard/internal/boardapi"
	"github.com/rnakano/betboard/internal/config"
	"github.com/rnakano/betboard/internal/logger"
	"github.com/rnakano/betboard/internal/models"
	"github.com/rnakano/betboard/internal/notify"
	"github.com/rnakano/betboard/internal/poller"
	"github.com/rnakano/betboard/internal/session"
	"github.com/rnakano/betboard/internal/view"
)

var errQuit = errors.New("quit")

// app is the terminal view layer. It owns the event-list state and, while an
// event is open, a board session plus its polling loop. All state mutation
// happens on the REPL goroutine except board replacement, which the session
// guards internally.
type app struct {
	cfg      *config.Config
	client   *boardapi.Client
	notifier *notify.Client
	in       io.Reader
	out      io.Writer

	list *session.EventList
	sess *session.Session
	poll *poller.Poller
}

func (a *app) run(ctx context.Context) error {
	a.list = session.NewEventList(a.client, a.cfg.API.PageSize)
	if err := a.list.Load(ctx); err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
	} else {
		view.RenderEventList(a.out, a.list)
	}
	a.printHelp()

	scanner := bufio.NewScanner(a.in)
	for {
		fmt.Fprint(a.out, "> ")
		if !scanner.Scan() {
			break
		}
		if ctx.Err() != nil {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		err := a.dispatch(ctx, line)
		if errors.Is(err, errQuit) {
			break
		}
		if err != nil {
			// Mutation and fetch errors surface here as inline messages;
			// background poll errors only reach the log.
			fmt.Fprintf(a.out, "error: %v\n", err)
		}
	}

	a.closeBoard()
	return scanner.Err()
}

func (a *app) dispatch(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "help":
		a.printHelp()
	case "quit", "exit":
		return errQuit
	case "show":
		a.render()
	case "list", "back":
		a.closeBoard()
		view.RenderEventList(a.out, a.list)
	case "search":
		if err := a.list.SetSearch(ctx, strings.Join(args, " ")); err != nil {
			return err
		}
		view.RenderEventList(a.out, a.list)
	case "next":
		if !a.list.HasNext() {
			fmt.Fprintln(a.out, "already on the last page")
			return nil
		}
		if err := a.list.NextPage(ctx); err != nil {
			return err
		}
		view.RenderEventList(a.out, a.list)
	case "prev":
		if !a.list.HasPrev() {
			fmt.Fprintln(a.out, "already on the first page")
			return nil
		}
		if err := a.list.PrevPage(ctx); err != nil {
			return err
		}
		view.RenderEventList(a.out, a.list)
	case "page":
		if len(args) != 1 {
			return fmt.Errorf("usage: page <n>")
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid page number %q", args[0])
		}
		if err := a.list.SetPage(ctx, n); err != nil {
			return err
		}
		view.RenderEventList(a.out, a.list)
	case "open":
		if len(args) != 1 {
			return fmt.Errorf("usage: open <event-id>")
		}
		return a.openBoard(ctx, args[0])
	case "form":
		if len(args) != 1 {
			return fmt.Errorf("usage: form <option-id>")
		}
		if a.sess == nil {
			return errors.New("open an event first")
		}
		a.sess.ToggleForm(args[0])
		view.RenderBoard(a.out, a.sess)
	case "details":
		if len(args) != 1 {
			return fmt.Errorf("usage: details <option-id>")
		}
		if a.sess == nil {
			return errors.New("open an event first")
		}
		if _, err := a.sess.ToggleDetails(ctx, args[0]); err != nil {
			return err
		}
		view.RenderBoard(a.out, a.sess)
	case "amount":
		if len(args) != 2 {
			return fmt.Errorf("usage: amount <option-id> <n>")
		}
		if a.sess == nil {
			return errors.New("open an event first")
		}
		v, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid amount %q", args[1])
		}
		a.sess.UpdateDraft(args[0], session.DraftPatch{Amount: &v})
	case "user":
		if len(args) < 2 {
			return fmt.Errorf("usage: user <option-id> <name>")
		}
		if a.sess == nil {
			return errors.New("open an event first")
		}
		name := strings.Join(args[1:], " ")
		a.sess.UpdateDraft(args[0], session.DraftPatch{Username: &name})
	case "bet":
		if len(args) != 1 {
			return fmt.Errorf("usage: bet <option-id>")
		}
		if a.sess == nil {
			return errors.New("open an event first")
		}
		if err := a.sess.PlaceBet(ctx, args[0]); err != nil {
			return err
		}
		view.RenderBoard(a.out, a.sess)
	case "add-option":
		if len(args) < 1 {
			return fmt.Errorf("usage: add-option <name>")
		}
		return a.addOption(ctx, strings.Join(args, " "))
	case "new-event":
		if len(args) < 1 {
			return fmt.Errorf("usage: new-event <title>")
		}
		return a.createEvent(ctx, strings.Join(args, " "))
	default:
		return fmt.Errorf("unknown command %q (try help)", cmd)
	}
	return nil
}

// openBoard closes any current board and mounts a session plus its polling
// loop on the selected event. The initial snapshot is loaded synchronously;
// the poller takes over from the next interval.
func (a *app) openBoard(ctx context.Context, eventID string) error {
	a.closeBoard()

	sess := session.New(a.client, eventID)
	if err := sess.Reload(ctx); err != nil {
		return err
	}

	a.sess = sess
	a.poll = poller.New(a.client, a.cfg.Board.PollInterval, clockwork.NewRealClock())
	a.poll.Start(ctx, eventID, func(board *models.Board) {
		prev := sess.Board()
		sess.SetBoard(board)
		a.notifyChanges(prev, board)
	})

	view.RenderBoard(a.out, a.sess)
	fmt.Fprintf(a.out, "(board refreshes every %v in the background; `show` re-renders)\n",
		a.cfg.Board.PollInterval)
	return nil
}

// notifyChanges runs on the polling goroutine.
func (a *app) notifyChanges(prev, next *models.Board) {
	if a.notifier == nil {
		return
	}
	changes := notify.DiffBoards(prev, next)
	if len(changes) == 0 {
		return
	}
	if err := a.notifier.SendBoardChanges(next.Title, changes); err != nil {
		logger.Warn("Failed to send board change notification: %v", err)
	}
}

func (a *app) closeBoard() {
	if a.poll != nil {
		a.poll.Stop()
		a.poll = nil
	}
	a.sess = nil
}

func (a *app) addOption(ctx context.Context, name string) error {
	if a.sess == nil {
		return errors.New("open an event first")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}

	result, err := a.client.AddOption(ctx, a.sess.EventID(), name)
	if err != nil {
		return fmt.Errorf("failed to add option: %w", err)
	}
	if result.Status == boardapi.AddOptionRejected {
		return fmt.Errorf("option rejected by server: %s", result.Detail)
	}

	if err := a.sess.Reload(ctx); err != nil {
		return err
	}
	view.RenderBoard(a.out, a.sess)
	return nil
}

func (a *app) createEvent(ctx context.Context, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil
	}

	if err := a.client.CreateEvent(ctx, title); err != nil {
		return err
	}

	// Back to a fresh list, as the web client navigates home after creation.
	a.closeBoard()
	if err := a.list.SetSearch(ctx, ""); err != nil {
		return err
	}
	view.RenderEventList(a.out, a.list)
	return nil
}

func (a *app) render() {
	if a.sess != nil {
		view.RenderBoard(a.out, a.sess)
		return
	}
	view.RenderEventList(a.out, a.list)
}

func (a *app) printHelp() {
	fmt.Fprint(a.out, `commands:
  list | back                 show the event list / leave the open board
  search <text>               filter events (resets to page 1)
  next | prev | page <n>      paginate the event list
  open <event-id>             open an event board (starts background refresh)
  show                        re-render the current view
  form <option-id>            toggle the bet form for an option
  details <option-id>         toggle the bet list for an option
  amount <option-id> <n>      set the draft amount
  user <option-id> <name>     set the draft username
  bet <option-id>             submit the draft bet
  add-option <name>           add an option to the open event
  new-event <title>           create a new event
  quit
`)
}
