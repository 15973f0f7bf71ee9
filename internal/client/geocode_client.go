// Package geocode is a thin client for a Nominatim-style text search API.
// Lookups are best-effort: callers are expected to swallow failures and fall
// back to their own suggestions.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const defaultLimit = 8

type HTTPClient interface {
	Do(*http.Request) (*http.Response, error)
}

type Client struct {
	httpClient HTTPClient
	baseURL    string
	userAgent  string
}

type Option func(*Client)

type Place struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	Type        string `json:"type"`
}

var ErrBadStatusCode = errors.New("invalid status code from geocoding api")

func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = u
	}
}

func WithHTTPClient(httpClient HTTPClient) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

func NewClient(opts ...Option) *Client {
	client := &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    "https://nominatim.openstreetmap.org",
		userAgent:  "taxiresa/1.0",
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Search runs a free-text lookup scoped to the given ISO country code and
// returns at most eight candidate places.
func (c *Client) Search(ctx context.Context, query, countryCode string) ([]Place, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("countrycodes", countryCode)
	q.Set("format", "jsonv2")
	q.Set("limit", strconv.Itoa(defaultLimit))

	u := fmt.Sprintf("%s/search?%s", c.baseURL, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", ErrBadStatusCode, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	var places []Place
	if err := json.Unmarshal(body, &places); err != nil {
		return nil, err
	}
	return places, nil
}
