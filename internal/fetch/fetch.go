package fetch

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// userAgent avoids the 403 responses the sanctions list service returns to
// anonymous clients.
const userAgent = "sanctionsfeed/1.0 (OFAC Compliance Tool)"

// Client downloads source documents with a bounded timeout and retry budget.
type Client struct {
	http    *http.Client
	retries int
}

// NewClient creates a download client. Timeout applies per attempt.
func NewClient(timeout time.Duration, retries int) *Client {
	if retries < 0 {
		retries = 0
	}
	return &Client{
		http:    &http.Client{Timeout: timeout},
		retries: retries,
	}
}

// Download fetches a URL, retrying transient failures with a doubling delay.
func (c *Client) Download(ctx context.Context, url string) ([]byte, error) {
	var lastErr error
	delay := time.Second

	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 {
			log.Printf("[fetch] retrying %s (attempt %d/%d)", url, attempt+1, c.retries+1)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			delay *= 2
		}

		data, err := c.download(ctx, url)
		if err == nil {
			return data, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}

	return nil, lastErr
}

func (c *Client) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download %s: unexpected status %d", url, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body of %s: %w", url, err)
	}

	log.Printf("[fetch] downloaded %d bytes from %s", len(data), url)
	return data, nil
}
