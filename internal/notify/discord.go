package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	colorGreen  = 0x2ECC71 // order events
	colorBlue   = 0x3498DB // product and collection events
	colorOrange = 0xE67E22 // everything else
)

// DiscordNotifier implements Notifier via Discord webhook.
type DiscordNotifier struct {
	webhookURL string
	client     *http.Client
}

// NewDiscordNotifier creates a new DiscordNotifier.
func NewDiscordNotifier(webhookURL string, opts ...DiscordOption) *DiscordNotifier {
	d := &DiscordNotifier{
		webhookURL: webhookURL,
		client:     http.DefaultClient,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DiscordOption configures a DiscordNotifier.
type DiscordOption func(*DiscordNotifier)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) DiscordOption {
	return func(d *DiscordNotifier) {
		d.client = c
	}
}

// discordWebhookPayload is the Discord webhook JSON structure.
type discordWebhookPayload struct {
	Embeds []discordEmbed `json:"embeds"`
}

type discordEmbed struct {
	Title       string              `json:"title"`
	Color       int                 `json:"color"`
	Description string              `json:"description,omitempty"`
	Fields      []discordEmbedField `json:"fields,omitempty"`
}

type discordEmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

// SendEvent sends a single webhook delivery as a Discord embed.
func (d *DiscordNotifier) SendEvent(ctx context.Context, event *EventPayload) error {
	payload := discordWebhookPayload{
		Embeds: []discordEmbed{buildEmbed(event)},
	}
	return d.post(ctx, payload)
}

// SendBatch sends multiple deliveries as a single Discord message.
func (d *DiscordNotifier) SendBatch(ctx context.Context, events []EventPayload) error {
	embeds := make([]discordEmbed, 0, len(events))

	// Discord allows max 10 embeds per message.
	limit := min(len(events), 10)

	for i := 0; i < limit; i++ {
		embeds = append(embeds, buildEmbed(&events[i]))
	}

	if len(events) > 10 {
		embeds = append(embeds, discordEmbed{
			Title:       fmt.Sprintf("... and %d more events", len(events)-10),
			Color:       colorOrange,
			Description: "Check the listener logs for the full list.",
		})
	}

	payload := discordWebhookPayload{Embeds: embeds}
	return d.post(ctx, payload)
}

func buildEmbed(event *EventPayload) discordEmbed {
	embed := discordEmbed{
		Title: fmt.Sprintf("Webhook: %s", event.Topic),
		Color: topicColor(event.Topic),
		Fields: []discordEmbedField{
			{Name: "Shop", Value: event.Shop, Inline: true},
			{Name: "Size", Value: fmt.Sprintf("%d bytes", event.Bytes), Inline: true},
		},
	}

	if event.Summary != "" {
		embed.Description = event.Summary
	}

	return embed
}

func topicColor(topic string) int {
	switch {
	case strings.HasPrefix(topic, "orders/"):
		return colorGreen
	case strings.HasPrefix(topic, "products/"), strings.HasPrefix(topic, "collections/"):
		return colorBlue
	default:
		return colorOrange
	}
}

func (d *DiscordNotifier) post(ctx context.Context, payload discordWebhookPayload) error {
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
