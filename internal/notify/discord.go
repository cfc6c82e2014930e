package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/donaldgifford/markdown-pricer/internal/metrics"
	domain "github.com/donaldgifford/markdown-pricer/pkg/types"
)

const (
	colorRed    = 0xE74C3C // discount 50+, or expired loss
	colorOrange = 0xE67E22 // discount 25-49
	colorYellow = 0xF1C40F // discount below 25
)

// maxEmbeds is Discord's per-message embed limit.
const maxEmbeds = 10

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
	Content string         `json:"content,omitempty"`
	Embeds  []discordEmbed `json:"embeds"`
}

type discordEmbed struct {
	Title       string              `json:"title"`
	Color       int                 `json:"color"`
	Description string              `json:"description,omitempty"`
	Fields      []discordEmbedField `json:"fields,omitempty"`
	Timestamp   string              `json:"timestamp,omitempty"`
}

type discordEmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

// SendDigest sends the digest as a single Discord message: one embed per
// markdown and a closing embed for expired stock.
func (d *DiscordNotifier) SendDigest(ctx context.Context, digest *Digest) error {
	return d.post(ctx, buildPayload(digest))
}

func buildPayload(digest *Digest) discordWebhookPayload {
	hasLoss := digest.Loss != nil && digest.Loss.Count > 0

	room := maxEmbeds
	if hasLoss {
		room--
	}

	markdowns := digest.Markdowns
	var overflow int
	if len(markdowns) > room {
		// Reserve the last slot for the overflow notice.
		overflow = len(markdowns) - (room - 1)
		markdowns = markdowns[:room-1]
	}

	embeds := make([]discordEmbed, 0, maxEmbeds)
	for i := range markdowns {
		embeds = append(embeds, markdownEmbed(&markdowns[i]))
	}
	if overflow > 0 {
		embeds = append(embeds, discordEmbed{
			Title:       fmt.Sprintf("... and %d more markdowns", overflow),
			Color:       colorYellow,
			Description: "Run `mdp inventory --segment near_expiry` for the full list.",
		})
	}
	if hasLoss {
		embeds = append(embeds, lossEmbed(digest.Loss, digest.GeneratedAt))
	}

	return discordWebhookPayload{
		Content: fmt.Sprintf("Markdown digest (%s pricing): %d items to mark down",
			digest.Mode, len(digest.Markdowns)),
		Embeds: embeds,
	}
}

func markdownEmbed(it *domain.ScoredItem) discordEmbed {
	return discordEmbed{
		Title: fmt.Sprintf("%d%% off: %s", it.DiscountPercent, displayName(&it.InventoryItem)),
		Color: discountColor(it.DiscountPercent),
		Fields: []discordEmbedField{
			{Name: "Product", Value: it.ProductID, Inline: true},
			{Name: "Price", Value: fmt.Sprintf("$%.2f", it.UnitPrice), Inline: true},
			{Name: "Selling Price", Value: fmt.Sprintf("$%.2f", it.SellingPrice), Inline: true},
			{Name: "Days To Expiry", Value: fmt.Sprintf("%.0f", it.DaysToExpiry), Inline: true},
			{Name: "Quantity", Value: fmt.Sprintf("%d", it.StockQuantity), Inline: true},
			{Name: "Turnover", Value: orDash(it.TurnoverLabel), Inline: true},
		},
	}
}

func lossEmbed(r *domain.LossReport, at time.Time) discordEmbed {
	e := discordEmbed{
		Title:       "Expired stock",
		Color:       colorRed,
		Description: fmt.Sprintf("%d items expired unsold (%d units).", r.Count, r.TotalUnits),
		Fields: []discordEmbedField{
			{Name: "Total Loss", Value: fmt.Sprintf("$%.2f", r.TotalLoss), Inline: true},
		},
	}
	if !at.IsZero() {
		e.Timestamp = at.UTC().Format(time.RFC3339)
	}
	return e
}

func displayName(it *domain.InventoryItem) string {
	if it.ProductName != "" {
		return it.ProductName
	}
	return it.ProductID
}

// orDash keeps Discord from rejecting an embed with an empty field value.
func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func discountColor(discount int) int {
	switch {
	case discount >= 50:
		return colorRed
	case discount >= 25:
		return colorOrange
	default:
		return colorYellow
	}
}

func (d *DiscordNotifier) post(ctx context.Context, payload discordWebhookPayload) error {
	start := time.Now()
	defer func() {
		metrics.NotificationDuration.Observe(time.Since(start).Seconds())
	}()

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
