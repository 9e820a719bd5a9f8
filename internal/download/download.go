// Copyright (c) 2025 sqlmcp contributors
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package download provides the HTTP transfer capability used to fetch the
// authentication-variant source file. It sits behind the Fetcher interface
// so tests can simulate transfer failures and empty responses.
package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Fetcher retrieves the contents of a remote URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// HTTP is the production Fetcher.
type HTTP struct {
	client *http.Client
}

// NewHTTP returns a Fetcher with a 60-second timeout, enough headroom for a
// single source file on a slow link.
func NewHTTP() *HTTP {
	return &HTTP{client: &http.Client{Timeout: 60 * time.Second}}
}

// Fetch downloads url and returns the response body. Any non-200 status is
// an error.
func (h *HTTP) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "sqlmcp-cli/1.0")

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("server returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return body, nil
}
