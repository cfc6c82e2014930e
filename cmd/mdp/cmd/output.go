package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/donaldgifford/markdown-pricer/internal/engine"
	domain "github.com/donaldgifford/markdown-pricer/pkg/types"
)

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

func printScoredTable(w io.Writer, items []domain.ScoredItem) error {
	tw := newTabWriter(w)
	tw.writef("PRODUCT\tNAME\tDAYS\tTURNOVER\tPRESSURE\tQTY\tPRICE\tDISCOUNT\tSELLING\n")
	for i := range items {
		it := &items[i]
		tw.writef("%s\t%s\t%.0f\t%s\t%.2f\t%d\t$%.2f\t%d%%\t$%.2f\n",
			it.ProductID,
			truncate(it.ProductName, 30),
			it.DaysToExpiry,
			it.TurnoverLabel,
			it.StockPressure,
			it.StockQuantity,
			it.UnitPrice,
			it.DiscountPercent,
			it.SellingPrice,
		)
	}
	return tw.finish()
}

func printItemDetail(w io.Writer, it *domain.ScoredItem) error {
	tw := newTabWriter(w)
	tw.writef("Product:\t%s\n", it.ProductID)
	tw.writef("Name:\t%s\n", it.ProductName)
	if it.ExpirationDate != nil {
		tw.writef("Expires:\t%s\n", it.ExpirationDate.Format("2006-01-02"))
	}
	tw.writef("Days To Expiry:\t%.0f\n", it.DaysToExpiry)
	tw.writef("Expired:\t%v\n", it.IsExpired)
	tw.writef("Turnover:\t%s\n", it.TurnoverLabel)
	tw.writef("Stock Pressure:\t%.2f\n", it.StockPressure)
	tw.writef("Quantity:\t%d\n", it.StockQuantity)
	tw.writef("Unit Price:\t$%.2f\n", it.UnitPrice)
	tw.writef("Discount:\t%d%%\n", it.DiscountPercent)
	tw.writef("Selling Price:\t$%.2f\n", it.SellingPrice)
	return tw.finish()
}

func printLossReport(w io.Writer, r *domain.LossReport) error {
	tw := newTabWriter(w)
	tw.writef("PRODUCT\tNAME\tDAYS\tQTY\tPRICE\tLOSS\n")
	for i := range r.Items {
		l := &r.Items[i]
		tw.writef("%s\t%s\t%.0f\t%d\t$%.2f\t$%.2f\n",
			l.ProductID,
			truncate(l.ProductName, 30),
			l.DaysToExpiry,
			l.StockQuantity,
			l.UnitPrice,
			l.Loss,
		)
	}
	tw.writef("\nTOTAL\t%d items\t\t%d\t\t$%.2f\n", r.Count, r.TotalUnits, r.TotalLoss)
	return tw.finish()
}

func printStats(w io.Writer, s *domain.InventoryStats) error {
	tw := newTabWriter(w)
	tw.writef("Total:\t%d\n", s.Total)
	tw.writef("Expired:\t%d\n", s.Expired)
	tw.writef("Near Expiry:\t%d\n", s.NearExpiry)
	tw.writef("Low Turnover:\t%d\n", s.LowTurnover)
	tw.writef("High Pressure:\t%d\n", s.HighPressure)
	return tw.finish()
}

func printSimulation(w io.Writer, r *engine.SimulationResult) error {
	tw := newTabWriter(w)
	tw.writef("Mode:\t%s\n", r.Mode)
	tw.writef("Discount:\t%d%%\n", r.Discount)
	tw.writef("Final Price:\t$%.2f\n", r.FinalPrice)
	tw.writef("Turnover Slow:\t%v\n", r.TurnoverSlow)
	tw.writef("Greedy Factors:\texpiry %.2f, turnover %.2f, pressure %.2f\n",
		r.Greedy.Expiry, r.Greedy.Turnover, r.Greedy.Pressure)
	if r.ModelError != "" {
		tw.writef("Model Error:\t%s (safe default used)\n", r.ModelError)
	}
	return tw.finish()
}

func printComparison(w io.Writer, r *engine.ComparisonReport) error {
	tw := newTabWriter(w)
	tw.writef("PRODUCT\tPRICE\tGREEDY\tML\tGREEDY MARGIN\tML MARGIN\n")
	for i := range r.Items {
		c := &r.Items[i]
		tw.writef("%s\t$%.2f\t%d%%\t%d%%\t%.1f%%\t%.1f%%\n",
			c.ProductID,
			c.UnitPrice,
			c.GreedyDiscount,
			c.MLDiscount,
			c.GreedyMargin*100,
			c.MLMargin*100,
		)
	}
	s := r.Summary
	tw.writef("\nMEAN (%d items)\t\t%.1f%%\t%.1f%%\t%.1f%%\t%.1f%%\n",
		s.Count, s.MeanGreedyDiscount, s.MeanMLDiscount, s.MeanGreedyMargin*100, s.MeanMLMargin*100)
	tw.writef("Agreement:\t%.0f%%\n", s.Agreement*100)
	return tw.finish()
}

func printModel(w io.Writer, info *engine.ModelInfo) error {
	tw := newTabWriter(w)
	tw.writef("Model:\t%s\n", info.Name)
	tw.writef("Loaded:\t%v\n", info.Loaded)
	tw.writef("Features:\t%s\n", strings.Join(info.Features, ", "))
	for _, fi := range info.Importance {
		tw.writef("  %s\t%.4f\n", fi.Feature, fi.Importance)
	}
	return tw.finish()
}

func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
