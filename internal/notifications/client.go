package notifications

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// Client posts plain-text import summaries to an ntfy topic. Disabled
// clients are no-ops, so callers never need to branch on configuration.
type Client struct {
	httpClient *http.Client
	baseURL    string
	topic      string
	enabled    bool
}

func NewClient(baseURL, topic string, enabled bool) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: baseURL,
		topic:   topic,
		enabled: enabled,
	}
}

// NotifyImportSummary sends a one-line summary of a finished import.
// Notification failures are logged and swallowed; they never affect the
// import response.
func (c *Client) NotifyImportSummary(ctx context.Context, sheetName string, succeeded, failed, skipped int) {
	if !c.enabled {
		log.Debug().Msg("Notifications disabled, skipping")
		return
	}

	message := fmt.Sprintf("Sheet import %q: %d imported, %d failed, %d skipped", sheetName, succeeded, failed, skipped)
	if err := c.send(ctx, message); err != nil {
		log.Warn().Err(err).Msg("Failed to send import summary notification")
	}
}

func (c *Client) send(ctx context.Context, message string) error {
	url := fmt.Sprintf("%s/%s", c.baseURL, c.topic)

	log.Debug().
		Str("url", url).
		Str("message", message).
		Msg("Sending notification")

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBufferString(message))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "text/plain")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	return nil
}
