// Package spotify is a minimal Spotify Web API client covering what the
// transfer workflow needs: track search, playlist creation, and adding
// tracks. Requests are paced with a local rate limiter so sequential calls
// stay under the provider's throttling window.
package spotify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultBaseURL     = "https://api.spotify.com/v1"
	defaultAccountsURL = "https://accounts.spotify.com"
	userAgent          = "tunebridge/0.1 (https://github.com/tunebridge/tunebridge)"
)

const (
	rateLimitRequests = 5
	rateLimitDuration = time.Second
)

type Client struct {
	httpClient  *http.Client
	baseURL     string
	accountsURL string
	userAgent   string
	rateLimiter *rate.Limiter
	creds       Credentials
	token       *Token
}

// NewClient creates a Spotify Web API client. Authenticate must be called
// before any API method.
func NewClient(creds Credentials) *Client {
	return &Client{
		httpClient:  &http.Client{},
		baseURL:     defaultBaseURL,
		accountsURL: defaultAccountsURL,
		userAgent:   userAgent,
		rateLimiter: rate.NewLimiter(rate.Every(rateLimitDuration/time.Duration(rateLimitRequests)), rateLimitRequests),
		creds:       creds,
	}
}

// doJSON performs a rate-limited API request and decodes the JSON response
// into out. Non-2xx responses are turned into errors carrying the API's
// error envelope when one is present.
func (c *Client) doJSON(ctx context.Context, method, endpoint string, params url.Values, body any, out any) error {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit error: %w", err)
	}

	fullURL := c.baseURL + endpoint
	if len(params) > 0 {
		fullURL += "?" + params.Encode()
	}

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, bodyReader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	if c.token != nil {
		req.Header.Set("Authorization", "Bearer "+c.token.AccessToken)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var envelope apiError
		if json.Unmarshal(b, &envelope) == nil && envelope.Error.Message != "" {
			return fmt.Errorf("api error (%d): %s", resp.StatusCode, envelope.Error.Message)
		}
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(b))
	}

	if out == nil || len(b) == 0 {
		return nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// CurrentUser returns the profile of the authenticated user.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	var u User
	if err := c.doJSON(ctx, http.MethodGet, "/me", nil, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}
