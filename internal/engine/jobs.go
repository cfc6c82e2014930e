package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/donaldgifford/markdown-pricer/internal/inventory"
	"github.com/donaldgifford/markdown-pricer/internal/metrics"
	"github.com/donaldgifford/markdown-pricer/internal/notify"
	domain "github.com/donaldgifford/markdown-pricer/pkg/types"
)

// ErrNoSource is returned by RunImport when no inventory source is configured.
var ErrNoSource = errors.New("no inventory source configured")

// ErrNoNotifier is returned by RunDigest when no notifier is configured.
var ErrNoNotifier = errors.New("no notifier configured")

// RunImport reads the configured source and replaces the stored inventory
// with its rows. A malformed file fails the import and leaves the stored
// inventory untouched.
func (eng *Engine) RunImport(ctx context.Context) (_ int, err error) {
	if eng.source == nil {
		return 0, ErrNoSource
	}
	if eng.store == nil {
		return 0, ErrNoStore
	}

	ctx, span := eng.tracer.Start(ctx, "engine.RunImport", trace.WithAttributes(
		attribute.String("source", eng.source.Name()),
	))
	defer func() { endSpan(span, err) }()

	start := time.Now()
	defer func() {
		metrics.ImportDuration.Observe(time.Since(start).Seconds())
		if err != nil {
			metrics.ImportErrorsTotal.Inc()
		}
	}()

	items, err := inventory.Load(ctx, eng.source)
	if err != nil {
		return 0, fmt.Errorf("loading inventory from %s: %w", eng.source.Name(), err)
	}

	n, err := eng.store.ReplaceInventory(ctx, items)
	if err != nil {
		return 0, fmt.Errorf("replacing inventory: %w", err)
	}

	metrics.ImportRowsTotal.Add(float64(n))
	metrics.ImportLastSuccessTimestamp.SetToCurrentTime()
	if eng.importRows != nil {
		eng.importRows.Add(ctx, int64(n),
			metric.WithAttributes(attribute.String("source", eng.source.Name())))
	}
	span.SetAttributes(attribute.Int("rows", n))

	eng.log.Info("inventory imported", "source", eng.source.Name(), "rows", n)

	if syncErr := eng.SyncInventoryMetrics(ctx); syncErr != nil {
		eng.log.Warn("syncing inventory metrics", "error", syncErr)
	}

	return n, nil
}

// RunExpiryRefresh recomputes days to expiry and the expired flag for every
// dated item as of the engine clock.
func (eng *Engine) RunExpiryRefresh(ctx context.Context) (int, error) {
	if eng.store == nil {
		return 0, ErrNoStore
	}

	n, err := eng.store.RefreshExpiry(ctx, eng.nowFunc())
	if err != nil {
		return 0, fmt.Errorf("refreshing expiry: %w", err)
	}

	metrics.ExpiryRefreshRowsTotal.Add(float64(n))
	eng.log.Info("expiry refreshed", "rows", n)

	if syncErr := eng.SyncInventoryMetrics(ctx); syncErr != nil {
		eng.log.Warn("syncing inventory metrics", "error", syncErr)
	}

	return n, nil
}

// SyncInventoryMetrics sets the per-segment inventory gauges from the store.
func (eng *Engine) SyncInventoryMetrics(ctx context.Context) error {
	if eng.store == nil {
		return ErrNoStore
	}

	stats, err := eng.store.GetInventoryStats(ctx)
	if err != nil {
		return fmt.Errorf("getting inventory stats: %w", err)
	}

	metrics.InventoryItems.WithLabelValues(string(domain.SegmentAll)).Set(float64(stats.Total - stats.Expired))
	metrics.InventoryItems.WithLabelValues(string(domain.SegmentExpired)).Set(float64(stats.Expired))
	metrics.InventoryItems.WithLabelValues(string(domain.SegmentNearExpiry)).Set(float64(stats.NearExpiry))
	metrics.InventoryItems.WithLabelValues(string(domain.SegmentLowTurnover)).Set(float64(stats.LowTurnover))
	metrics.InventoryItems.WithLabelValues(string(domain.SegmentHighPressure)).Set(float64(stats.HighPressure))

	return nil
}

// RunDigest sends the deepest near-expiry markdowns and the expired stock
// report to the configured notifier. Items priced at zero are left out, and
// nothing is sent when there is nothing to report. It returns the number of
// markdowns sent.
func (eng *Engine) RunDigest(ctx context.Context) (_ int, err error) {
	if eng.notifier == nil {
		return 0, ErrNoNotifier
	}

	ctx, span := eng.tracer.Start(ctx, "engine.RunDigest", trace.WithAttributes(
		attribute.String("mode", string(eng.digestMode)),
	))
	defer func() { endSpan(span, err) }()

	scored, err := eng.Inventory(ctx, domain.SegmentNearExpiry, eng.digestMode)
	if err != nil {
		return 0, fmt.Errorf("pricing near-expiry inventory: %w", err)
	}

	markdowns := make([]domain.ScoredItem, 0, eng.digestSize)
	for i := range scored {
		if len(markdowns) == eng.digestSize {
			break
		}
		if scored[i].DiscountPercent > 0 {
			markdowns = append(markdowns, scored[i])
		}
	}

	loss, err := eng.ExpiredLoss(ctx)
	if err != nil {
		return 0, fmt.Errorf("building loss report: %w", err)
	}

	digest := &notify.Digest{
		Mode:        eng.digestMode,
		Markdowns:   markdowns,
		Loss:        loss,
		GeneratedAt: eng.nowFunc(),
	}
	if digest.Empty() {
		eng.log.Info("digest skipped, nothing to report")
		return 0, nil
	}

	if err := eng.notifier.SendDigest(ctx, digest); err != nil {
		metrics.NotificationFailuresTotal.Inc()
		return 0, fmt.Errorf("sending digest: %w", err)
	}

	span.SetAttributes(attribute.Int("markdowns", len(markdowns)))
	eng.log.Info("digest sent", "markdowns", len(markdowns), "expired", loss.Count)
	return len(markdowns), nil
}
