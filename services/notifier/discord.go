package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DiscordNotifier implements Notifier via a Discord webhook
type DiscordNotifier struct {
	webhookURL string
	client     *http.Client
}

// NewDiscordNotifier creates a new Discord webhook notifier
func NewDiscordNotifier(webhookURL string, opts ...DiscordOption) *DiscordNotifier {
	d := &DiscordNotifier{
		webhookURL: webhookURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DiscordOption configures a DiscordNotifier
type DiscordOption func(*DiscordNotifier)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(c *http.Client) DiscordOption {
	return func(d *DiscordNotifier) {
		d.client = c
	}
}

// discordWebhookPayload is the Discord webhook JSON structure
type discordWebhookPayload struct {
	Content string `json:"content"`
}

// Send posts one deal event to the webhook
func (d *DiscordNotifier) Send(ctx context.Context, event Event) error {
	payload := discordWebhookPayload{
		Content: formatContent(event),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling discord payload: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		d.webhookURL,
		bytes.NewReader(body),
	)
	if err != nil {
		return fmt.Errorf("creating discord request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending discord webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("discord rate limited (429)")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return fmt.Errorf("discord returned %d (body unreadable)", resp.StatusCode)
		}
		return fmt.Errorf("discord returned %d: %s", resp.StatusCode, respBody)
	}

	return nil
}

func formatContent(event Event) string {
	return fmt.Sprintf(
		"🚨 **GPU FOUND AT MSRP** 🚨\n"+
			"**Store:** %s\n"+
			"**Product:** %s\n"+
			"**Model:** %s\n"+
			"**Price:** $%d (reference $%d, saves $%d)\n"+
			"%s",
		event.Source,
		event.Title,
		event.Model,
		event.Price,
		event.ReferencePrice,
		event.Delta,
		event.Link,
	)
}
