package view

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rnakano/betboard/internal/models"
	"github.com/rnakano/betboard/internal/session"
)

func f(v float64) *float64 { return &v }

type stubAPI struct {
	bets map[string][]models.Bet
}

func (a *stubAPI) FetchBoard(ctx context.Context, eventID string) (*models.Board, error) {
	return nil, nil
}

func (a *stubAPI) FetchOptionBets(ctx context.Context, optionID string) ([]models.Bet, error) {
	return a.bets[optionID], nil
}

func (a *stubAPI) PlaceBet(ctx context.Context, optionID string, amount float64, username string) error {
	return nil
}

type stubLister struct {
	page *models.EventPage
}

func (l *stubLister) ListEvents(ctx context.Context, page int, search string) (*models.EventPage, error) {
	return l.page, nil
}

func TestFormatOdds(t *testing.T) {
	tests := []struct {
		odds *float64
		want string
	}{
		{odds: nil, want: "-"},
		{odds: f(1.5), want: "1.50"},
		{odds: f(2), want: "2.00"},
		{odds: f(10.125), want: "10.13"},
	}

	for _, tt := range tests {
		if got := FormatOdds(tt.odds); got != tt.want {
			t.Errorf("FormatOdds(%v) = %q, want %q", tt.odds, got, tt.want)
		}
	}
}

func TestFormatAmount(t *testing.T) {
	if got := FormatAmount(""); got != "-" {
		t.Errorf("FormatAmount(\"\") = %q, want -", got)
	}
	if got := FormatAmount("100.50"); got != "100.50" {
		t.Errorf("FormatAmount preserved value wrong: %q", got)
	}
}

func TestRenderEventListSinglePage(t *testing.T) {
	api := &stubLister{page: &models.EventPage{
		Results: []models.Event{{ID: "e1", Title: "Cup"}},
		Count:   1,
	}}
	list := session.NewEventList(api, 30)
	if err := list.Load(context.Background()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	var b strings.Builder
	RenderEventList(&b, list)
	out := b.String()

	if !strings.Contains(out, "Cup") {
		t.Errorf("Expected event row, got %q", out)
	}
	if !strings.Contains(out, "Page 1 / 1") {
		t.Errorf("Expected single-page footer, got %q", out)
	}
	// ceil(1/30) = 1: neither direction is navigable.
	if strings.Contains(out, "[prev]") || strings.Contains(out, "[next]") {
		t.Errorf("Expected no nav hints on a single page, got %q", out)
	}
}

func TestRenderEventListMiddlePage(t *testing.T) {
	api := &stubLister{page: &models.EventPage{Count: 90}}
	list := session.NewEventList(api, 30)
	if err := list.SetPage(context.Background(), 2); err != nil {
		t.Fatalf("SetPage failed: %v", err)
	}

	var b strings.Builder
	RenderEventList(&b, list)
	out := b.String()

	if !strings.Contains(out, "Page 2 / 3") {
		t.Errorf("Expected page 2 of 3, got %q", out)
	}
	if !strings.Contains(out, "[prev]") || !strings.Contains(out, "[next]") {
		t.Errorf("Expected both nav hints mid-range, got %q", out)
	}
}

func TestRenderBoardNilSnapshot(t *testing.T) {
	s := session.New(&stubAPI{}, "e1")

	var b strings.Builder
	RenderBoard(&b, s)

	if !strings.Contains(b.String(), "Loading") {
		t.Errorf("Expected loading line for nil snapshot, got %q", b.String())
	}
}

func TestRenderBoard(t *testing.T) {
	api := &stubAPI{bets: map[string][]models.Bet{
		"o1": {{ID: "b1", Option: "o1", Username: "ann", Amount: "100", CreatedAt: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)}},
	}}
	s := session.New(api, "e1")
	s.SetBoard(&models.Board{
		EventID:   "e1",
		Title:     "Cup",
		TotalPool: "150",
		Options: []models.Option{
			{OptionID: "o1", Name: "Red", TotalAmount: "100", Odds: f(1.5)},
			{OptionID: "o2", Name: "Blue", TotalAmount: "50", Odds: nil},
		},
	})
	s.ToggleForm("o2")
	if _, err := s.ToggleDetails(context.Background(), "o1"); err != nil {
		t.Fatalf("ToggleDetails failed: %v", err)
	}

	var b strings.Builder
	RenderBoard(&b, s)
	out := b.String()

	if !strings.Contains(out, "Cup (event e1)") {
		t.Errorf("Expected board header, got %q", out)
	}
	if !strings.Contains(out, "total pool: 150") {
		t.Errorf("Expected total pool line, got %q", out)
	}
	if !strings.Contains(out, "1.50") {
		t.Errorf("Expected formatted odds, got %q", out)
	}
	// Uncomputed odds render as a dash, not a zero.
	if strings.Contains(out, "0.00") {
		t.Errorf("Expected dash for nil odds, got %q", out)
	}
	if !strings.Contains(out, "bet form Blue") {
		t.Errorf("Expected open form section for Blue, got %q", out)
	}
	if !strings.Contains(out, "submit disabled") {
		t.Errorf("Expected gate hint on an empty draft, got %q", out)
	}
	if !strings.Contains(out, "bets on Red") || !strings.Contains(out, "ann") {
		t.Errorf("Expected open details section for Red, got %q", out)
	}
}

func TestRenderBetsEmpty(t *testing.T) {
	var b strings.Builder
	RenderBets(&b, nil)

	if !strings.Contains(b.String(), "no bets yet") {
		t.Errorf("Expected placeholder for empty bets, got %q", b.String())
	}
}

func TestRenderBets(t *testing.T) {
	bets := []models.Bet{
		{ID: "b1", Option: "o1", Username: "ann", Amount: "100", CreatedAt: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)},
		{ID: "b2", Option: "o1", Username: "bob", Amount: "50", CreatedAt: time.Date(2026, 8, 30, 13, 0, 0, 0, time.UTC)},
	}

	var b strings.Builder
	RenderBets(&b, bets)
	out := b.String()

	annIdx := strings.Index(out, "ann")
	bobIdx := strings.Index(out, "bob")
	if annIdx < 0 || bobIdx < 0 || annIdx > bobIdx {
		t.Errorf("Expected bets rendered in server order, got %q", out)
	}
	if !strings.Contains(out, "100") || !strings.Contains(out, "50") {
		t.Errorf("Expected amounts, got %q", out)
	}
}
