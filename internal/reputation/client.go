// Package reputation talks to the external global ban registry and caches
// its verdicts for a short window.
package reputation

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

// Checker answers whether a user identifier is globally flagged.
type Checker interface {
	Check(ctx context.Context, userID string) (bool, error)
}

// Client queries the reputation web service. Calls are rate limited on the
// client side; errors are returned unretried.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	limiter    *rate.Limiter
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    baseURL,
		token:      token,
		limiter:    rate.NewLimiter(rate.Every(time.Second), 5),
	}
}

func (c *Client) Check(ctx context.Context, userID string) (bool, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return false, err
	}

	reqURL := fmt.Sprintf("%s/bans/check?user=%s", c.baseURL, url.QueryEscape(userID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return false, fmt.Errorf("failed to build reputation request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("reputation service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("reputation service returned %s", resp.Status)
	}

	var body struct {
		IsBanned bool `json:"is_banned"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return false, fmt.Errorf("failed to decode reputation response: %w", err)
	}
	return body.IsBanned, nil
}
