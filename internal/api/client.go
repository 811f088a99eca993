// Package api provides the REST client for the notification backend.
package api

import (
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

	"github.com/sellerdash/sellertray/internal/domain"
	"github.com/sellerdash/sellertray/internal/logging"
	"github.com/sellerdash/sellertray/internal/ports"
)

// defaultTimeout bounds a single REST call. The event channel has its own
// lifecycle and is not affected.
const defaultTimeout = 15 * time.Second

// Client talks to the notification backend over HTTP. It implements
// ports.Backend.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     logging.Logger
}

var _ ports.Backend = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithToken sets the bearer token sent on every request.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithLogger sets the structured logger.
func WithLogger(l logging.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// NewClient creates a backend client for the given base URL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     logging.GetGlobal(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// pageResponse mirrors the backend's paginated notification payload.
type pageResponse struct {
	Data        []domain.Notification `json:"data"`
	TotalUnread int                   `json:"totalUnread"`
	TotalRead   int                   `json:"totalRead"`
	CurrentPage int                   `json:"currentPage"`
	TotalPages  int                   `json:"totalPages"`
	TotalItems  int                   `json:"totalItems"`
}

// unreadResponse mirrors the unread-only payload used for the badge backstop.
type unreadResponse struct {
	Data []domain.Notification `json:"data"`
}

// FetchPage requests one page of notifications filtered by the given criteria.
func (c *Client) FetchPage(ctx context.Context, query ports.PageQuery) (ports.PageResult, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(query.Page))
	params.Set("limit", strconv.Itoa(query.Limit))
	if query.Type != "" && query.Type != "all" {
		params.Set("type", query.Type)
	}
	if query.Status != "" && query.Status != "all" {
		params.Set("status", query.Status)
	}
	if len(query.MarketplaceIDs) > 0 {
		params.Set("marketplaceIds", strings.Join(query.MarketplaceIDs, ","))
	}

	var resp pageResponse
	if err := c.get(ctx, "/notifications?"+params.Encode(), &resp); err != nil {
		return ports.PageResult{}, fmt.Errorf("fetch notifications page %d: %w", query.Page, err)
	}

	return ports.PageResult{
		Data:        resp.Data,
		TotalUnread: resp.TotalUnread,
		TotalRead:   resp.TotalRead,
		CurrentPage: resp.CurrentPage,
		TotalPages:  resp.TotalPages,
		TotalItems:  resp.TotalItems,
	}, nil
}

// FetchUnread requests the unread notifications used for the badge count.
func (c *Client) FetchUnread(ctx context.Context) ([]domain.Notification, error) {
	var resp unreadResponse
	if err := c.get(ctx, "/notifications/unread", &resp); err != nil {
		return nil, fmt.Errorf("fetch unread notifications: %w", err)
	}
	return resp.Data, nil
}

// MarkRead marks a single notification as read.
func (c *Client) MarkRead(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("mark read: notification id cannot be empty")
	}
	if err := c.do(ctx, http.MethodPatch, "/notifications/"+url.PathEscape(id)+"/read"); err != nil {
		return fmt.Errorf("mark notification %s read: %w", id, err)
	}
	return nil
}

// MarkAllRead marks every notification as read.
func (c *Client) MarkAllRead(ctx context.Context) error {
	if err := c.do(ctx, http.MethodPatch, "/notifications/read-all"); err != nil {
		return fmt.Errorf("mark all notifications read: %w", err)
	}
	return nil
}

// DeleteRead deletes all read notifications. The caller must re-fetch the
// current page afterwards.
func (c *Client) DeleteRead(ctx context.Context) error {
	if err := c.do(ctx, http.MethodDelete, "/notifications/read"); err != nil {
		return fmt.Errorf("delete read notifications: %w", err)
	}
	return nil
}

// DeleteAll deletes all notifications. The caller must re-fetch the current
// page afterwards.
func (c *Client) DeleteAll(ctx context.Context) error {
	if err := c.do(ctx, http.MethodDelete, "/notifications"); err != nil {
		return fmt.Errorf("delete all notifications: %w", err)
	}
	return nil
}

// get performs a GET request and decodes the JSON response into out.
func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, path)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return statusError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// do performs a mutation request and discards the response body. The backend
// reports mutation results through the status code only.
func (c *Client) do(ctx context.Context, method, path string) error {
	req, err := c.newRequest(ctx, method, path)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return statusError(resp)
	}

	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// newRequest builds a request with auth and correlation headers.
func (c *Client) newRequest(ctx context.Context, method, path string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

// statusError builds an error from a non-success HTTP response, including a
// truncated body snippet when the backend sent one.
func statusError(resp *http.Response) error {
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
	body := strings.TrimSpace(string(snippet))
	if body == "" {
		return fmt.Errorf("backend returned %s", resp.Status)
	}
	return fmt.Errorf("backend returned %s: %s", resp.Status, body)
}
