// Package poller implements the board synchronization loop: a fixed-cadence
// refetch that replaces the board snapshot for as long as a detail view is
// open. The loop never diffs old and new snapshots; replacement is
// unconditional. Stop tears the loop down and discards any in-flight result,
// so a closed view is never mutated after the fact.
package poller

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rnakano/betboard/internal/logger"
	"github.com/rnakano/betboard/internal/models"
)

// BoardFetcher fetches one board snapshot. Implemented by *boardapi.Client.
type BoardFetcher interface {
	FetchBoard(ctx context.Context, eventID string) (*models.Board, error)
}

// Poller refetches one event's board on a fixed interval. A Poller is
// single-use: Start once, Stop once.
//
// The clock is injectable for tests. In production, use
// clockwork.NewRealClock(); in tests, a FakeClock.
type Poller struct {
	fetcher  BoardFetcher
	interval time.Duration
	clock    clockwork.Clock

	mu      sync.Mutex
	stopped bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// New creates a poller. A nil clock means the real clock.
func New(fetcher BoardFetcher, interval time.Duration, clock clockwork.Clock) *Poller {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Poller{
		fetcher:  fetcher,
		interval: interval,
		clock:    clock,
	}
}

// Start begins polling eventID, invoking apply with each fetched snapshot.
// The first fetch fires after one full interval; the mounting view performs
// its own initial load. apply runs on the polling goroutine.
func (p *Poller) Start(ctx context.Context, eventID string, apply func(*models.Board)) {
	ctx, cancel := context.WithCancel(ctx)

	p.mu.Lock()
	p.cancel = cancel
	p.done = make(chan struct{})
	p.mu.Unlock()

	go p.run(ctx, eventID, apply)
}

func (p *Poller) run(ctx context.Context, eventID string, apply func(*models.Board)) {
	defer close(p.done)

	ticker := p.clock.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			p.poll(ctx, eventID, apply)
		}
	}
}

// poll fetches once and commits the result only if the poller is still live.
// A fetch error keeps the last good snapshot; the next tick tries again.
func (p *Poller) poll(ctx context.Context, eventID string, apply func(*models.Board)) {
	board, err := p.fetcher.FetchBoard(ctx, eventID)
	if err != nil {
		logger.Warn("Board poll for event %s failed: %v", eventID, err)
		return
	}

	p.mu.Lock()
	stopped := p.stopped
	p.mu.Unlock()
	if stopped || ctx.Err() != nil {
		// The view was torn down while this fetch was in flight.
		logger.Debug("Discarding board poll result for event %s after stop", eventID)
		return
	}

	apply(board)
}

// Stop ends the loop and marks any in-flight result as dead, then waits for
// the polling goroutine to exit. Safe to call more than once.
func (p *Poller) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	cancel := p.cancel
	done := p.done
	p.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}
