// Package garmin talks to the activity-tracker API and normalizes golf
// scorecards into hole rows. The provider is a black box to the rest of
// the system: nothing outside this package sees its payload shapes.
package garmin

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/okian/fairway/pkg/logger"
)

// activitiesPath is the provider's activity search endpoint.
const activitiesPath = "/activitylist-service/activities/search/activities"

// defaultTimeout bounds a single API call.
const defaultTimeout = 30 * time.Second

// Client fetches activities from the tracker using a pre-acquired OAuth
// bearer token.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	logger  logger.Logger
}

// ClientOption applies a configuration option to the Client.
type ClientOption func(*Client)

// WithBaseURL overrides the API base URL.
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		if u != "" {
			c.baseURL = u
		}
	}
}

// WithToken sets the OAuth bearer token.
func WithToken(token string) ClientOption {
	return func(c *Client) {
		c.token = token
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithClientLogger sets a custom logger for the client.
func WithClientLogger(l logger.Logger) ClientOption {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient creates a tracker client with configuration options.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL: "https://connectapi.garmin.com",
		http:    &http.Client{Timeout: defaultTimeout},
		logger:  logger.Get().Named("garmin"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchActivities returns the caller's most recent activities, newest
// first, up to limit.
func (c *Client) FetchActivities(ctx context.Context, limit int) ([]Activity, error) {
	if c.token == "" {
		return nil, ErrNoToken
	}

	u, err := url.Parse(c.baseURL + activitiesPath)
	if err != nil {
		return nil, fmt.Errorf("build activities url: %w", err)
	}
	q := u.Query()
	q.Set("start", "0")
	q.Set("limit", strconv.Itoa(limit))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build activities request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, fmt.Errorf("%w: status %d", ErrUnauthorized, resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrFetch, resp.StatusCode)
	}

	activities, err := decodeActivities(resp.Body)
	if err != nil {
		return nil, err
	}

	c.logger.Info(ctx, "activities fetched", logger.Int("count", len(activities)))
	return activities, nil
}

// FetchGolfActivities returns only golf activities.
func (c *Client) FetchGolfActivities(ctx context.Context, limit int) ([]Activity, error) {
	activities, err := c.FetchActivities(ctx, limit)
	if err != nil {
		return nil, err
	}

	var golf []Activity
	for _, a := range activities {
		if a.IsGolf() {
			golf = append(golf, a)
		}
	}

	c.logger.Info(ctx, "golf activities filtered",
		logger.Int("golf", len(golf)),
		logger.Int("total", len(activities)),
	)
	return golf, nil
}

// decodeActivities accepts both response shapes the provider uses: a bare
// array, or an object wrapping the array under "activities".
func decodeActivities(body io.Reader) ([]Activity, error) {
	var raw json.RawMessage
	if err := json.NewDecoder(body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadResponse, err)
	}

	var list []Activity
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}

	var wrapped struct {
		Activities []Activity `json:"activities"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Activities != nil {
		return wrapped.Activities, nil
	}

	return nil, ErrBadResponse
}
