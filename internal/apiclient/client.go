// Package apiclient talks to the vocabulary backend over JSON/HTTP.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"worddee/internal/models"
)

const maxResponseBytes = 1 << 20

// Client is a typed client for the backend API. It does not retry,
// authenticate or cache.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
}

// New creates a client rooted at baseURL. A nil httpClient gets a default
// client with a 10 second timeout.
func New(baseURL string, httpClient *http.Client) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid base URL %q: scheme must be http or https", baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q: missing host", baseURL)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{baseURL: u, httpClient: httpClient}, nil
}

// BaseURL returns the configured base address
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// GetWord fetches the current word
func (c *Client) GetWord(ctx context.Context) (*models.Word, error) {
	var word models.Word
	if err := c.do(ctx, http.MethodGet, "word", nil, nil, &word); err != nil {
		return nil, fmt.Errorf("fetch word: %w", err)
	}
	if word.ID == 0 && word.Word == "" {
		return nil, fmt.Errorf("fetch word: %w: empty word", ErrMalformed)
	}
	return &word, nil
}

// ValidateSentence submits a sentence for the given word and returns the
// feedback
func (c *Client) ValidateSentence(ctx context.Context, wordID int64, sentence string) (*models.AIFeedback, error) {
	body := models.SentenceSubmission{WordID: wordID, Sentence: sentence}

	var feedback models.AIFeedback
	if err := c.do(ctx, http.MethodPost, "validate-sentence", nil, body, &feedback); err != nil {
		return nil, fmt.Errorf("validate sentence: %w", err)
	}
	return &feedback, nil
}

// GetHistory fetches at most limit recent practice entries, newest first
func (c *Client) GetHistory(ctx context.Context, limit int) ([]models.HistoryItem, error) {
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	var items []models.HistoryItem
	if err := c.do(ctx, http.MethodGet, "history", query, nil, &items); err != nil {
		return nil, fmt.Errorf("fetch history: %w", err)
	}
	if items == nil {
		items = []models.HistoryItem{}
	}
	return items, nil
}

// GetSummary fetches aggregate statistics
func (c *Client) GetSummary(ctx context.Context) (*models.SummaryStats, error) {
	var stats models.SummaryStats
	if err := c.do(ctx, http.MethodGet, "summary", nil, nil, &stats); err != nil {
		return nil, fmt.Errorf("fetch summary: %w", err)
	}
	return &stats, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload, out any) error {
	endpoint := c.baseURL.JoinPath(path)
	if len(query) > 0 {
		endpoint.RawQuery = query.Encode()
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("%w: failed to read response: %w", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{
			Method:     method,
			Path:       "/" + path,
			StatusCode: resp.StatusCode,
			Detail:     parseDetail(respBody),
		}
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return nil
}
