// Package client is a typed HTTP client for the trade-journal API. It
// unwraps the {data, message, error} envelope and separates HTTP
// failures (server responded non-2xx) from network failures (no
// response at all), so callers can tell which failures are worth
// retrying.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/dkarthick-works/sudden/src/models"
)

// APIError is a non-2xx response from the server. It carries the
// status code, so callers can react to specific statuses (404 on a
// stale edit link, for instance).
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
}

// NetworkError is a transport-level failure: the request never produced
// a response. These are the failures most likely to be transient.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %s", e.Err.Error())
}

func (e *NetworkError) Unwrap() error { return e.Err }

// IsNotFound reports whether err is an APIError with status 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

type envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   *string         `json:"error"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New returns a client for the journal API rooted at baseURL
// (e.g. "http://localhost:8080/api/v1").
func New(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// FetchTrades lists every trade in the journal.
func (c *Client) FetchTrades(ctx context.Context) ([]models.TradeEntry, error) {
	var trades []models.TradeEntry
	err := c.do(ctx, http.MethodGet, "/journal", nil, nil, &trades)
	return trades, err
}

// FetchTradeByID fetches one trade.
func (c *Client) FetchTradeByID(ctx context.Context, id string) (*models.TradeEntry, error) {
	var trade models.TradeEntry
	if err := c.do(ctx, http.MethodGet, "/journal/"+url.PathEscape(id), nil, nil, &trade); err != nil {
		return nil, err
	}
	return &trade, nil
}

// CreateTrade submits a new trade; the returned copy carries the id the
// backend assigned.
func (c *Client) CreateTrade(ctx context.Context, trade *models.TradeEntry) (*models.TradeEntry, error) {
	var created models.TradeEntry
	if err := c.do(ctx, http.MethodPost, "/journal", nil, trade, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateTrade overwrites the trade with the given id. Log collections
// should be merged beforehand with models.AppendLog; the server persists
// them as submitted.
func (c *Client) UpdateTrade(ctx context.Context, id string, trade *models.TradeEntry) (*models.TradeEntry, error) {
	var updated models.TradeEntry
	if err := c.do(ctx, http.MethodPut, "/journal/"+url.PathEscape(id), nil, trade, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// FetchDashboardData fetches aggregates for closed trades exiting in
// the inclusive [from, to] range.
func (c *Client) FetchDashboardData(ctx context.Context, from, to models.Date) (*models.DashboardData, error) {
	params := url.Values{
		"fromDate": {from.String()},
		"toDate":   {to.String()},
	}
	var data models.DashboardData
	if err := c.do(ctx, http.MethodGet, "/journal/dashboard", params, nil, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// do issues one request and unwraps the response envelope into target.
func (c *Client) do(ctx context.Context, method, path string, params url.Values, body, target any) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	var reqBody *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	var env envelope
	decodeErr := json.NewDecoder(resp.Body).Decode(&env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Prefer the server's own error message; fall back to the
		// status line when the body is not a decodable envelope.
		message := http.StatusText(resp.StatusCode)
		if decodeErr == nil && env.Error != nil && *env.Error != "" {
			message = *env.Error
		}
		return &APIError{StatusCode: resp.StatusCode, Message: message}
	}

	if decodeErr != nil {
		return fmt.Errorf("decoding response envelope: %w", decodeErr)
	}
	if target == nil || len(env.Data) == 0 {
		return nil
	}
	return json.Unmarshal(env.Data, target)
}
