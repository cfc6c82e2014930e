package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/markdown-pricer/internal/metrics"
	domain "github.com/donaldgifford/markdown-pricer/pkg/types"
)

func testMarkdown(id string, discount int) domain.ScoredItem {
	return domain.ScoredItem{
		InventoryItem: domain.InventoryItem{
			ProductID:     id,
			ProductName:   "Greek Yogurt 500g",
			DaysToExpiry:  2,
			TurnoverLabel: "Slow",
			StockQuantity: 40,
			UnitPrice:     4,
		},
		DiscountPercent: discount,
		SellingPrice:    4 * float64(100-discount) / 100,
	}
}

func testLoss() *domain.LossReport {
	return &domain.LossReport{Count: 2, TotalUnits: 15, TotalLoss: 37.5}
}

func captureServer(t *testing.T, status int, received *discordWebhookPayload) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(received))
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestDiscordNotifier_SendDigest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		discount   int
		statusCode int
		wantErr    bool
		errMsg     string
		wantColor  int
	}{
		{
			name:       "deep discount uses red",
			discount:   70,
			statusCode: http.StatusNoContent,
			wantColor:  colorRed,
		},
		{
			name:       "mid discount uses orange",
			discount:   30,
			statusCode: http.StatusNoContent,
			wantColor:  colorOrange,
		},
		{
			name:       "shallow discount uses yellow",
			discount:   12,
			statusCode: http.StatusNoContent,
			wantColor:  colorYellow,
		},
		{
			name:       "discord returns 429 rate limited",
			discount:   30,
			statusCode: http.StatusTooManyRequests,
			wantErr:    true,
			errMsg:     "rate limited",
		},
		{
			name:       "discord returns 400 error",
			discount:   30,
			statusCode: http.StatusBadRequest,
			wantErr:    true,
			errMsg:     "discord returned 400",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var received discordWebhookPayload
			srv := captureServer(t, tt.statusCode, &received)

			item := testMarkdown("SKU-1", tt.discount)
			d := NewDiscordNotifier(srv.URL)
			err := d.SendDigest(context.Background(), &Digest{
				Mode:      domain.ModeGreedy,
				Markdowns: []domain.ScoredItem{item},
			})

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}

			require.NoError(t, err)
			require.Len(t, received.Embeds, 1)
			assert.Contains(t, received.Content, "greedy pricing")

			embed := received.Embeds[0]
			assert.Equal(t, tt.wantColor, embed.Color)
			assert.Equal(t, fmt.Sprintf("%d%% off: Greek Yogurt 500g", tt.discount), embed.Title)

			fieldMap := make(map[string]string)
			for _, f := range embed.Fields {
				fieldMap[f.Name] = f.Value
			}
			assert.Equal(t, "SKU-1", fieldMap["Product"])
			assert.Equal(t, "$4.00", fieldMap["Price"])
			assert.Equal(t, fmt.Sprintf("$%.2f", item.SellingPrice), fieldMap["Selling Price"])
			assert.Equal(t, "Slow", fieldMap["Turnover"])
		})
	}
}

func TestDiscordNotifier_SendDigest_WithLoss(t *testing.T) {
	t.Parallel()

	var received discordWebhookPayload
	srv := captureServer(t, http.StatusNoContent, &received)

	at := time.Date(2026, 3, 1, 6, 0, 0, 0, time.UTC)
	d := NewDiscordNotifier(srv.URL)
	err := d.SendDigest(context.Background(), &Digest{
		Mode:        domain.ModeML,
		Markdowns:   []domain.ScoredItem{testMarkdown("SKU-1", 25)},
		Loss:        testLoss(),
		GeneratedAt: at,
	})
	require.NoError(t, err)

	require.Len(t, received.Embeds, 2)
	loss := received.Embeds[1]
	assert.Equal(t, "Expired stock", loss.Title)
	assert.Equal(t, colorRed, loss.Color)
	assert.Equal(t, "2026-03-01T06:00:00Z", loss.Timestamp)
	require.Len(t, loss.Fields, 1)
	assert.Equal(t, "$37.50", loss.Fields[0].Value)
}

func TestBuildPayload_Overflow(t *testing.T) {
	t.Parallel()

	markdowns := make([]domain.ScoredItem, 14)
	for i := range markdowns {
		markdowns[i] = testMarkdown(fmt.Sprintf("SKU-%d", i), 40)
	}

	tests := []struct {
		name         string
		loss         *domain.LossReport
		wantItems    int
		wantOverflow string
	}{
		{"without loss", nil, 9, "... and 5 more markdowns"},
		{"with loss", testLoss(), 8, "... and 6 more markdowns"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := buildPayload(&Digest{Mode: domain.ModeGreedy, Markdowns: markdowns, Loss: tt.loss})
			assert.Len(t, p.Embeds, maxEmbeds)
			assert.Equal(t, tt.wantOverflow, p.Embeds[tt.wantItems].Title)
		})
	}
}

func TestBuildPayload_NameFallsBackToID(t *testing.T) {
	t.Parallel()

	it := testMarkdown("SKU-9", 20)
	it.ProductName = ""
	it.TurnoverLabel = ""

	p := buildPayload(&Digest{Markdowns: []domain.ScoredItem{it}})
	require.Len(t, p.Embeds, 1)
	assert.Equal(t, "20% off: SKU-9", p.Embeds[0].Title)
	for _, f := range p.Embeds[0].Fields {
		assert.NotEmpty(t, f.Value, "field %s", f.Name)
	}
}

func TestDiscordNotifier_NetworkError(t *testing.T) {
	t.Parallel()

	d := NewDiscordNotifier("http://127.0.0.1:1") // nothing listening
	err := d.SendDigest(context.Background(), &Digest{Markdowns: []domain.ScoredItem{testMarkdown("SKU-1", 30)}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sending discord webhook")
}

func TestDiscordNotifier_InvalidWebhookURL(t *testing.T) {
	t.Parallel()

	d := NewDiscordNotifier("://not-a-valid-url")
	err := d.SendDigest(context.Background(), &Digest{Loss: testLoss()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "creating discord request")
}

func TestWithHTTPClient(t *testing.T) {
	t.Parallel()

	custom := &http.Client{}
	d := NewDiscordNotifier("https://example.com", WithHTTPClient(custom))
	assert.Same(t, custom, d.client)
}

func getNotificationHistogramSampleCount() uint64 {
	ch := make(chan prometheus.Metric, 1)
	metrics.NotificationDuration.Collect(ch)
	m := <-ch
	pb := &dto.Metric{}
	_ = m.Write(pb)
	return pb.GetHistogram().GetSampleCount()
}

func TestSendDigest_ObservesNotificationDuration(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	before := getNotificationHistogramSampleCount()

	d := NewDiscordNotifier(srv.URL)
	err := d.SendDigest(context.Background(), &Digest{Loss: testLoss()})
	require.NoError(t, err)

	after := getNotificationHistogramSampleCount()
	assert.Greater(t, after, before, "NotificationDuration histogram sample count should increase")
}
