package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/corpix/uarand"
	"golang.org/x/time/rate"
)

const maxRedirects = 10

// Response carries everything callers need from one HTTP exchange.
type Response struct {
	StatusCode  int
	Body        []byte
	ContentType string
	Header      http.Header
}

// OK reports whether the status code is in the 2xx range.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Client performs single-shot GET/HEAD requests. It follows redirects up to a
// fixed cap and never retries; transport errors surface as errors, non-2xx
// statuses as a Response the caller inspects.
type Client struct {
	client    *http.Client
	limiter   *rate.Limiter
	userAgent string
}

// NewClient creates a client pacing requests to one per rateLimitMs
// milliseconds. An empty userAgent picks a random browser one per client.
func NewClient(rateLimitMs int, userAgent string) *Client {
	if rateLimitMs <= 0 {
		rateLimitMs = 100
	}
	if userAgent == "" {
		userAgent = uarand.GetRandom()
	}

	client := &http.Client{
		Timeout: 30 * time.Second,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("stopped after %d redirects", maxRedirects)
			}
			return nil
		},
	}

	rps := 1000.0 / float64(rateLimitMs)
	return &Client{
		client:    client,
		limiter:   rate.NewLimiter(rate.Limit(rps), 1),
		userAgent: userAgent,
	}
}

// Get fetches url with optional extra headers and returns status, body and
// response headers.
func (c *Client) Get(ctx context.Context, url string, header map[string]string) (*Response, error) {
	return c.do(ctx, http.MethodGet, url, header)
}

// Head is the headers-only variant of Get; the returned body is empty.
func (c *Client) Head(ctx context.Context, url string, header map[string]string) (*Response, error) {
	return c.do(ctx, http.MethodHead, url, header)
}

func (c *Client) do(ctx context.Context, method, url string, header map[string]string) (*Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	for k, v := range header {
		req.Header.Set(k, v)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, url, err)
	}
	defer resp.Body.Close()

	var body []byte
	if method != http.MethodHead {
		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("read body of %s: %w", url, err)
		}
	}

	return &Response{
		StatusCode:  resp.StatusCode,
		Body:        body,
		ContentType: resp.Header.Get("Content-Type"),
		Header:      resp.Header,
	}, nil
}
