// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared across components.
package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// MaxBodyBytes bounds how much of a response Get will read. Generated site
// indexes are small; anything larger is treated as an error.
var MaxBodyBytes int64 = 32 << 20

// StatusError reports a response whose status code was not 2xx.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s returned HTTP %d", e.URL, e.Code)
}

// Get fetches url once and returns the response body. Non-2xx responses
// produce a *StatusError. There is no retry: callers treat a failed fetch as
// final. A nil client uses http.DefaultClient.
func Get(ctx context.Context, client *http.Client, url, userAgent string) ([]byte, error) {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<16))
		return nil, &StatusError{URL: url, Code: resp.StatusCode}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	if int64(len(data)) > MaxBodyBytes {
		return nil, fmt.Errorf("response body exceeds %d bytes", MaxBodyBytes)
	}
	return data, nil
}
