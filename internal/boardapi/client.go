// Package boardapi provides typed access to the betting-board REST API.
// Each exported method maps to exactly one endpoint and performs exactly one
// request: no retry, no caching, no deduplication of in-flight calls. The
// server is the sole arbiter of consistency; callers decide what to refetch
// and when.
package boardapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rnakano/betboard/internal/logger"
	"github.com/rnakano/betboard/internal/models"
)

// DefaultPageSize is the fixed page size the server applies to the event list.
const DefaultPageSize = 30

// Client provides access to the board API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new board API client
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// ListEvents retrieves one page of the event list, optionally filtered by a
// search string. Pages are 1-based.
func (c *Client) ListEvents(ctx context.Context, page int, search string) (*models.EventPage, error) {
	if page < 1 {
		return nil, fmt.Errorf("page must be >= 1, got %d", page)
	}

	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	if search != "" {
		params.Set("search", search)
	}

	resp, err := c.get(ctx, fmt.Sprintf("%s/events/?%s", c.baseURL, params.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch events: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch events: status %d", resp.StatusCode)
	}

	var result models.EventPage
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode events: %w", err)
	}
	return &result, nil
}

// FetchBoard retrieves the board snapshot for an event.
func (c *Client) FetchBoard(ctx context.Context, eventID string) (*models.Board, error) {
	if eventID == "" {
		return nil, fmt.Errorf("event ID must not be empty")
	}

	resp, err := c.get(ctx, fmt.Sprintf("%s/events/%s/board/", c.baseURL, url.PathEscape(eventID)))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch board: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch board: status %d", resp.StatusCode)
	}

	var board models.Board
	if err := json.NewDecoder(resp.Body).Decode(&board); err != nil {
		return nil, fmt.Errorf("failed to decode board: %w", err)
	}
	return &board, nil
}

// AddOptionStatus classifies the outcome of an AddOption call.
type AddOptionStatus int

const (
	// AddOptionOK means the server accepted the option.
	AddOptionOK AddOptionStatus = iota
	// AddOptionRejected means the server answered but refused the option,
	// either with a non-2xx status or with an error payload inside a 2xx
	// response. The server does both, so callers get a distinguishable
	// variant instead of a silent success.
	AddOptionRejected
)

// AddOptionResult is the resolved outcome of an AddOption call.
type AddOptionResult struct {
	Status AddOptionStatus
	Detail string // server-provided detail for rejections, may be empty
}

// addOptionBody is the subset of the add-option response the client inspects.
type addOptionBody struct {
	Error  string `json:"error"`
	Detail string `json:"detail"`
}

// AddOption adds an option to an event. A returned error means the request
// itself failed (transport failure); a resolved server refusal comes back as
// AddOptionRejected, not as an error.
func (c *Client) AddOption(ctx context.Context, eventID, name string) (AddOptionResult, error) {
	if eventID == "" {
		return AddOptionResult{}, fmt.Errorf("event ID must not be empty")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return AddOptionResult{}, fmt.Errorf("option name must not be empty")
	}

	endpoint := fmt.Sprintf("%s/events/%s/add_option/", c.baseURL, url.PathEscape(eventID))
	resp, err := c.postJSON(ctx, endpoint, map[string]string{"name": name})
	if err != nil {
		return AddOptionResult{}, fmt.Errorf("failed to add option: %w", err)
	}
	defer resp.Body.Close()

	var body addOptionBody
	// The response shape is implementation-defined; an undecodable body on a
	// 2xx status still counts as success.
	_ = json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&body)

	detail := body.Detail
	if detail == "" {
		detail = body.Error
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if detail == "" {
			detail = fmt.Sprintf("status %d", resp.StatusCode)
		}
		return AddOptionResult{Status: AddOptionRejected, Detail: detail}, nil
	}
	if body.Error != "" {
		return AddOptionResult{Status: AddOptionRejected, Detail: detail}, nil
	}
	return AddOptionResult{Status: AddOptionOK}, nil
}

// PlaceBet places a bet of amount on an option for username.
func (c *Client) PlaceBet(ctx context.Context, optionID string, amount float64, username string) error {
	if optionID == "" {
		return fmt.Errorf("option ID must not be empty")
	}
	if username == "" {
		return fmt.Errorf("username must not be empty")
	}

	payload := map[string]interface{}{
		"option":   optionID,
		"amount":   amount,
		"username": username,
	}
	resp, err := c.postJSON(ctx, c.baseURL+"/bets/", payload)
	if err != nil {
		return fmt.Errorf("failed to place bet: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("failed to place bet: status %d", resp.StatusCode)
	}
	return nil
}

// FetchOptionBets retrieves the bets placed on an option, in server order.
func (c *Client) FetchOptionBets(ctx context.Context, optionID string) ([]models.Bet, error) {
	if optionID == "" {
		return nil, fmt.Errorf("option ID must not be empty")
	}

	resp, err := c.get(ctx, fmt.Sprintf("%s/options/%s/bets/", c.baseURL, url.PathEscape(optionID)))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch option bets: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch option bets: status %d", resp.StatusCode)
	}

	var bets []models.Bet
	if err := json.NewDecoder(resp.Body).Decode(&bets); err != nil {
		return nil, fmt.Errorf("failed to decode option bets: %w", err)
	}
	return bets, nil
}

// CreateEvent creates a new event with the given title.
func (c *Client) CreateEvent(ctx context.Context, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return fmt.Errorf("event title must not be empty")
	}

	resp, err := c.postJSON(ctx, c.baseURL+"/events/", map[string]string{"title": title})
	if err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("failed to create event: status %d", resp.StatusCode)
	}
	return nil
}

// get performs a single GET request. No retry: a failed read is simply stale
// until the next poll or user action.
func (c *Client) get(ctx context.Context, endpoint string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())

	logger.Debug("GET %s (request_id=%s)", endpoint, req.Header.Get("X-Request-ID"))
	return c.httpClient.Do(req)
}

// postJSON performs a single POST request with a JSON body.
func (c *Client) postJSON(ctx context.Context, endpoint string, payload interface{}) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())

	logger.Debug("POST %s (request_id=%s)", endpoint, req.Header.Get("X-Request-ID"))
	return c.httpClient.Do(req)
}
