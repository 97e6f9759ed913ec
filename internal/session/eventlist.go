package session

import (
	"context"

	"github.com/rnakano/betboard/internal/models"
)

const defaultPageSize = 30

// EventLister is the list slice of the API client. Implemented by
// *boardapi.Client.
type EventLister interface {
	ListEvents(ctx context.Context, page int, search string) (*models.EventPage, error)
}

// EventList drives the paginated, searchable event list. Every page or
// search change issues exactly one list request and replaces the rows
// wholesale. It is mutated only from the view loop and carries no lock.
type EventList struct {
	api      EventLister
	pageSize int

	page   int
	search string
	events []models.Event
	count  int
}

// NewEventList creates a list positioned on page 1 with no search filter.
// Nothing is fetched until Load.
func NewEventList(api EventLister, pageSize int) *EventList {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return &EventList{
		api:      api,
		pageSize: pageSize,
		page:     1,
	}
}

// Load fetches the current (page, search) pair and replaces the rows.
func (l *EventList) Load(ctx context.Context) error {
	result, err := l.api.ListEvents(ctx, l.page, l.search)
	if err != nil {
		return err
	}
	l.events = result.Results
	l.count = result.Count
	return nil
}

// SetPage moves to the given 1-based page and reloads.
func (l *EventList) SetPage(ctx context.Context, page int) error {
	if page < 1 {
		page = 1
	}
	l.page = page
	return l.Load(ctx)
}

// NextPage advances one page. At the last page it is a no-op: bounds are
// enforced by disabling navigation, not by asking the server.
func (l *EventList) NextPage(ctx context.Context) error {
	if !l.HasNext() {
		return nil
	}
	return l.SetPage(ctx, l.page+1)
}

// PrevPage goes back one page. A no-op on page 1.
func (l *EventList) PrevPage(ctx context.Context) error {
	if !l.HasPrev() {
		return nil
	}
	return l.SetPage(ctx, l.page-1)
}

// SetSearch sets the filter, resets the page to 1, and reloads.
func (l *EventList) SetSearch(ctx context.Context, search string) error {
	l.search = search
	l.page = 1
	return l.Load(ctx)
}

// Events returns the rows of the current page.
func (l *EventList) Events() []models.Event {
	return l.events
}

// Page returns the current 1-based page number.
func (l *EventList) Page() int {
	return l.page
}

// Search returns the current search filter.
func (l *EventList) Search() string {
	return l.search
}

// Count returns the total number of matching events.
func (l *EventList) Count() int {
	return l.count
}

// TotalPages returns ceil(count / pageSize), with a floor of 1 so an empty
// list still reads "page 1 / 1".
func (l *EventList) TotalPages() int {
	n := (l.count + l.pageSize - 1) / l.pageSize
	if n < 1 {
		n = 1
	}
	return n
}

// HasPrev reports whether backward navigation is allowed.
func (l *EventList) HasPrev() bool {
	return l.page > 1
}

// HasNext reports whether forward navigation is allowed.
func (l *EventList) HasNext() bool {
	return l.page < l.TotalPages()
}
