package bot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ShortenResult is the payload returned by the shortening API.
type ShortenResult struct {
	ShortURL    string `json:"short_url"`
	OriginalURL string `json:"original_url"`
	Existing    bool   `json:"existing"`
}

// APIError carries an error reported by the shortening API together with the
// HTTP status it was reported with.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: %d: %s", e.StatusCode, e.Message)
}

// Client is a thin client of the shortening HTTP API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Shorten submits the URL to POST /shorten and returns the short link.
// Errors reported by the API surface as *APIError.
func (c *Client) Shorten(ctx context.Context, rawURL string) (*ShortenResult, error) {
	const op = "bot.Client.Shorten"

	body, err := json.Marshal(map[string]string{"url": rawURL})
	if err != nil {
		return nil, fmt.Errorf("%s: failed to marshal request body: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/shorten", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to call api: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		var apiResp struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil || apiResp.Error == "" {
			apiResp.Error = "unexpected api response"
		}

		return nil, fmt.Errorf("%s: %w", op, &APIError{
			StatusCode: resp.StatusCode,
			Message:    apiResp.Error,
		})
	}

	var result ShortenResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%s: failed to decode api response: %w", op, err)
	}

	return &result, nil
}
