// Package client provides a typed HTTP client for the content API backing
// the reader: articles, users, bookmarks, categories and per-user
// preferences.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-newsreader/pkg/feed"
)

// ErrInvalidCredentials is returned by Login when no account matches.
var ErrInvalidCredentials = errors.New("invalid email or password")

// Client is a minimal content API client.
type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
	Timeout    time.Duration
}

// New creates a client with sane defaults.
func New(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Timeout: 10 * time.Second,
	}
}

// APIError wraps non-2xx responses. When the body carries a JSON "message"
// field, Error reports it directly.
type APIError struct {
	StatusCode int
	Message    string
	Body       string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("api error: status=%d body=%s", e.StatusCode, e.Body)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := strings.TrimRight(c.BaseURL, "/") + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("client: encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(data)),
		}
		var payload struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(data, &payload) == nil {
			apiErr.Message = payload.Message
		}
		return apiErr
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("client: decode response: %w", err)
	}
	return nil
}

// ArticleQuery scopes an article listing.
type ArticleQuery struct {
	CategoryID string
	Page       int
	Limit      int
}

// Articles lists articles, optionally scoped by category and paginated.
func (c *Client) Articles(ctx context.Context, q ArticleQuery) ([]feed.Article, error) {
	params := url.Values{}
	if q.CategoryID != "" {
		params.Set("categoryId", q.CategoryID)
	}
	if q.Page > 0 {
		params.Set("_page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		params.Set("_limit", strconv.Itoa(q.Limit))
	}
	var out []feed.Article
	if err := c.do(ctx, http.MethodGet, "/articles", params, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Article fetches a single article by id.
func (c *Client) Article(ctx context.Context, id string) (feed.Article, error) {
	var out feed.Article
	err := c.do(ctx, http.MethodGet, "/articles/"+url.PathEscape(id), nil, nil, &out)
	return out, err
}

// SearchArticles runs a server-side full text search.
func (c *Client) SearchArticles(ctx context.Context, query string) ([]feed.Article, error) {
	params := url.Values{}
	params.Set("q", query)
	var out []feed.Article
	if err := c.do(ctx, http.MethodGet, "/articles", params, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Categories lists all content categories.
func (c *Client) Categories(ctx context.Context) ([]feed.Category, error) {
	var out []feed.Category
	if err := c.do(ctx, http.MethodGet, "/categories", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
