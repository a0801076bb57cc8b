// Package httputil provides a small retrying HTTP helper for the
// release check endpoint.
package httputil

import (
	"fmt"
	"net/http"
	"time"
)

// RetryBaseDelay is the base backoff between retries, a variable so tests
// can shorten it
var RetryBaseDelay = 2 * time.Second

// DoWithRetry performs a GET and retries on 429 and 5xx responses with
// linear backoff. The caller owns the returned body.
func DoWithRetry(client *http.Client, url string, maxRetries int) (*http.Response, error) {
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(RetryBaseDelay * time.Duration(attempt))
		}

		resp, err := client.Get(url)
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			resp.Body.Close()
			lastErr = fmt.Errorf("server returned %s", resp.Status)
			continue
		}

		return resp, nil
	}

	return nil, fmt.Errorf("request failed after %d attempts: %w", maxRetries+1, lastErr)
}
