// Package reddit fetches top-post listing pages from the public reddit JSON
// endpoint.
package reddit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gianmaria/reddit-image-downloader/internal/fetch"
)

const (
	baseURL = "https://www.reddit.com"

	// PageLimit is the number of posts requested per listing page.
	PageLimit = 100
)

// Client pulls pages of a subreddit's top listing.
type Client struct {
	http    *fetch.Client
	baseURL string
}

// NewClient creates a listing client on top of the shared HTTP client.
func NewClient(http *fetch.Client) *Client {
	return &Client{http: http, baseURL: baseURL}
}

// NewClientWithBaseURL is used by tests to point the client at a local server.
func NewClientWithBaseURL(http *fetch.Client, base string) *Client {
	return &Client{http: http, baseURL: base}
}

// TopListing fetches one page of /r/{subreddit}/top.json for the given time
// window. An empty after starts from the first page. A non-2xx status,
// malformed JSON or a listing without data.children is an error; the caller
// treats all of these as fatal.
func (c *Client) TopListing(ctx context.Context, subreddit, when, after string) (*Listing, error) {
	url := fmt.Sprintf("%s/r/%s/top.json?t=%s&raw_json=1&limit=%d",
		c.baseURL, subreddit, when, PageLimit)
	if after != "" {
		url += "&after=" + after
	}

	resp, err := c.http.Get(ctx, url, nil)
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, fmt.Errorf("listing request for %s returned status %d", url, resp.StatusCode)
	}

	var listing Listing
	if err := json.Unmarshal(resp.Body, &listing); err != nil {
		return nil, fmt.Errorf("parse listing json: %w", err)
	}
	if listing.Data.Children == nil {
		return nil, fmt.Errorf("unexpected listing json: missing data.children")
	}

	return &listing, nil
}
