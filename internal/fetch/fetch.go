// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch retrieves transcript PDFs from the press conference archive
// with a bounded retry budget.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/meshintel/fedcorpus/pkg/types"
)

const defaultMaxRetries = 3

// Status classifies the outcome of a fetch.
type Status int

const (
	// Fetched means the document body was retrieved.
	Fetched Status = iota
	// NotFound means the archive has no document for the date. Terminal:
	// never retried.
	NotFound
	// Exhausted means every attempt in the budget failed.
	Exhausted
)

// Result is the explicit outcome of a fetch. Retry handling is visible
// control flow here rather than error unwinding in callers.
type Result struct {
	Status   Status
	Body     []byte
	Attempts int
	Err      error
}

// URL returns the archive URL for a date.
func URL(cfg types.FetchConfig, date string) string {
	return cfg.BaseURL + types.PDFName(date)
}

// Fetch retrieves the transcript PDF for a date. It makes up to
// cfg.MaxRetries attempts, pausing cfg.RetryDelay between them. A 404 is
// terminal on first sight; any other non-200 status or transport error is
// retried until the budget runs out. Per-attempt warnings go to w. If the
// context is cancelled during a retry pause the fetch ends as Exhausted
// with the context error.
func Fetch(ctx context.Context, client *http.Client, date string, cfg types.FetchConfig, w io.Writer) Result {
	url := URL(cfg, date)
	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		if attempt > 1 && cfg.RetryDelay > 0 {
			select {
			case <-ctx.Done():
				return Result{Status: Exhausted, Attempts: attempt - 1, Err: ctx.Err()}
			case <-time.After(cfg.RetryDelay):
			}
		}

		body, status, err := attemptOnce(ctx, client, url, cfg)
		if err != nil {
			lastErr = err
			fmt.Fprintf(w, "warning: %s attempt %d/%d: %v\n", date, attempt, maxRetries, err)
			continue
		}

		switch {
		case status == http.StatusOK:
			return Result{Status: Fetched, Body: body, Attempts: attempt}
		case status == http.StatusNotFound:
			return Result{Status: NotFound, Attempts: attempt}
		default:
			lastErr = fmt.Errorf("HTTP %d from %s", status, url)
			fmt.Fprintf(w, "warning: %s attempt %d/%d: %v\n", date, attempt, maxRetries, lastErr)
		}
	}

	return Result{Status: Exhausted, Attempts: maxRetries, Err: lastErr}
}

// attemptOnce performs a single GET. The body is read fully only for a 200;
// other responses are drained so the connection can be reused.
func attemptOnce(ctx context.Context, client *http.Client, url string, cfg types.FetchConfig) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)
	req.Header.Set("Accept", "application/pdf")

	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, resp.StatusCode, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("reading response body: %w", err)
	}
	return body, resp.StatusCode, nil
}
