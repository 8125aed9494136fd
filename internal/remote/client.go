// Package remote talks to the showlist backup server.
package remote

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/showlist/internal/codec"
	"github.com/mmcdole/showlist/internal/domain"
)

const (
	defaultTimeout = 30 * time.Second
	maxRetries     = 3
	baseRetryDelay = 500 * time.Millisecond

	// BackupPath is the backup document endpoint, relative to the server URL
	BackupPath = "/api/v1/backup"
)

// Client reads and writes backup documents over HTTP
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	retryDelay time.Duration
}

var _ domain.BackupClient = (*Client)(nil)

// NewClient creates a new backup server client
func NewClient(baseURL string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger:     logger,
		retryDelay: baseRetryDelay,
	}
}

// doRequest performs an authenticated request and returns the response body.
// 5xx responses are retried with exponential backoff.
func (c *Client) doRequest(ctx context.Context, method, token string, payload []byte) ([]byte, error) {
	if token == "" {
		return nil, domain.ErrNoSession
	}
	reqURL := c.baseURL + BackupPath

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		if attempt > 0 {
			delay := c.retryDelay * time.Duration(1<<(attempt-1)) // 500ms, 1s, 2s
			c.logger.Debug("retrying request", "attempt", attempt, "delay", delay, "url", reqURL)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		var body io.Reader
		if payload != nil {
			body = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		c.logger.Debug("backup request", "method", method, "url", reqURL, "attempt", attempt)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			c.logger.Error("backup request failed", "error", err)
			return nil, fmt.Errorf("%w: %v", domain.ErrServerOffline, err)
		}

		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read response: %w", err)
		}

		switch {
		case resp.StatusCode == http.StatusUnauthorized:
			return nil, domain.ErrAuthFailed
		case resp.StatusCode == http.StatusNotFound:
			return nil, domain.ErrBackupNotFound
		case resp.StatusCode >= 500:
			lastErr = fmt.Errorf("server error: %d - %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
			c.logger.Warn("backup server error, will retry",
				"status", resp.StatusCode,
				"attempt", attempt,
				"maxRetries", maxRetries,
			)
			continue
		case resp.StatusCode < 200 || resp.StatusCode > 299:
			c.logger.Error("backup request error", "status", resp.StatusCode, "body", string(respBody))
			return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		}

		return respBody, nil
	}

	c.logger.Error("backup request failed after retries", "error", lastErr, "url", reqURL)
	return nil, lastErr
}

// FetchBackup downloads the backup document for token.
// A server without a backup yields an empty collection.
func (c *Client) FetchBackup(ctx context.Context, token string) ([]domain.Show, error) {
	body, err := c.doRequest(ctx, http.MethodGet, token, nil)
	if errors.Is(err, domain.ErrBackupNotFound) {
		return []domain.Show{}, nil
	}
	if err != nil {
		return nil, err
	}

	shows, err := codec.DecodeBackup(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse backup: %w", err)
	}
	c.logger.Debug("fetched backup", "count", len(shows))
	return shows, nil
}

// PushBackup replaces the backup document for token with shows
func (c *Client) PushBackup(ctx context.Context, token string, shows []domain.Show) error {
	var buf bytes.Buffer
	if err := codec.EncodeBackup(&buf, shows); err != nil {
		return err
	}
	if _, err := c.doRequest(ctx, http.MethodPut, token, buf.Bytes()); err != nil {
		return err
	}
	c.logger.Debug("pushed backup", "count", len(shows))
	return nil
}

// Verify checks that the server accepts token
func (c *Client) Verify(ctx context.Context, token string) error {
	_, err := c.FetchBackup(ctx, token)
	return err
}
