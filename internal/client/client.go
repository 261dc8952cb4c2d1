// Package client is the typed HTTP client for the ledger API. The
// timeline TUI and the simulator both talk to the server through it.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mkarlsen/songrank/internal/domain/model"
)

// Default client configuration constants.
const (
	defaultTimeout = 10 * time.Second
)

// Client talks to one ledger server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// New creates a client for the server at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Ack mirrors the server's write acknowledgement.
type Ack struct {
	OK bool  `json:"ok"`
	ID int64 `json:"id,omitempty"`
}

// Songs fetches the seeded catalog.
func (c *Client) Songs(ctx context.Context) ([]model.Song, error) {
	var songs []model.Song
	if err := c.get(ctx, "/api/song/all", &songs); err != nil {
		return nil, err
	}
	return songs, nil
}

// Matches fetches the full match log.
func (c *Client) Matches(ctx context.Context) ([]model.Match, error) {
	var matches []model.Match
	if err := c.get(ctx, "/api/match/all", &matches); err != nil {
		return nil, err
	}
	return matches, nil
}

// Stats fetches every snapshot row.
func (c *Client) Stats(ctx context.Context) ([]model.StatRow, error) {
	var stats []model.StatRow
	if err := c.get(ctx, "/api/songstats/all", &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// SeedRoster installs the catalog and its baseline snapshot.
func (c *Client) SeedRoster(ctx context.Context, songs []model.SeedSong) error {
	var ack Ack
	return c.post(ctx, "/api/song/all", songs, &ack)
}

// RecordMatch submits one match outcome and returns its assigned id.
func (c *Client) RecordMatch(ctx context.Context, cmd model.MatchCommand) (int64, error) {
	payload := map[string]any{
		"winning_song":        cmd.WinnerID,
		"losing_song":         cmd.LoserID,
		"winning_song_rating": cmd.WinnerRating,
		"losing_song_rating":  cmd.LoserRating,
	}
	var ack Ack
	if err := c.post(ctx, "/api/match/one", payload, &ack); err != nil {
		return 0, err
	}
	return ack.ID, nil
}

// Reset clears the entire ledger.
func (c *Client) Reset(ctx context.Context) error {
	var ack Ack
	return c.post(ctx, "/api/delete/all", nil, &ack)
}

// Health probes the server's liveness endpoint.
func (c *Client) Health(ctx context.Context) error {
	var ack Ack
	return c.get(ctx, "/api/health", &ack)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, http.NoBody)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrRequest, path, err)
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrRequest, path, err)
		}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrRequest, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrRequest, req.URL.Path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrRequest, req.URL.Path, err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return newStatusError(req.URL.Path, resp.StatusCode, data)
	}
	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrRequest, req.URL.Path, err)
		}
	}
	return nil
}
