package arena

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"teambattles/config"
)

type Client struct {
	token  string
	http   *http.Client
	cfg    config.TournamentConfig
	dryRun bool
}

func New(token string, cfg config.TournamentConfig, opts ...Option) *Client {
	c := &Client{
		token: token,
		http:  &http.Client{Timeout: 30 * time.Second},
		cfg:   cfg,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// ValidToken rejects empty tokens and the placeholders left in sample configs.
func ValidToken(token string) bool {
	return token != "" && !strings.Contains(token, "***") && !strings.Contains(token, "YOUR_TOKEN")
}

func (c *Client) server() string {
	return strings.TrimRight(c.cfg.Server, "/")
}

// postForm sends an authenticated form POST. Non-2xx answers become *APIError.
func (c *Client) postForm(ctx context.Context, path string, form url.Values) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.server()+path, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("arena http: %w", err)
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		defer res.Body.Close()
		b, _ := io.ReadAll(io.LimitReader(res.Body, 4<<10))
		return nil, &APIError{Status: res.StatusCode, Body: strings.TrimSpace(string(b))}
	}
	return res, nil
}
