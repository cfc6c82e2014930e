package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/markdown-pricer/internal/config"
	"github.com/donaldgifford/markdown-pricer/internal/engine"
	"github.com/donaldgifford/markdown-pricer/internal/inventory"
	"github.com/donaldgifford/markdown-pricer/pkg/logger"
	domain "github.com/donaldgifford/markdown-pricer/pkg/types"
)

var scoreFlags struct {
	file      string
	segment   string
	mode      string
	output    string
	limit     int
	modelKind string
	modelPath string
}

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Price an inventory file offline",
	Long: "Reads an inventory CSV, selects a segment and prices it with the greedy scorer or the model,\n" +
		"without touching the database. The config file is optional for this command.",
	RunE: runScore,
}

func init() {
	f := scoreCmd.Flags()
	f.StringVar(&scoreFlags.file, "file", "", "inventory CSV to price (required)")
	f.StringVar(&scoreFlags.segment, "segment", "all", "expired, near_expiry, low_turnover, high_pressure, all")
	f.StringVar(&scoreFlags.mode, "mode", "greedy", "greedy or ml")
	f.StringVarP(&scoreFlags.output, "output", "o", "table", "output format (table, json)")
	f.IntVar(&scoreFlags.limit, "limit", 0, "show at most this many items (0 for all)")
	f.StringVar(&scoreFlags.modelKind, "model-kind", "", "override model.kind (xgboost, linear)")
	f.StringVar(&scoreFlags.modelPath, "model-path", "", "override model.path")
	cobra.CheckErr(scoreCmd.MarkFlagRequired("file"))
}

func runScore(cmd *cobra.Command, _ []string) error {
	cfg, log, err := loadConfigOrDefault()
	if err != nil {
		return err
	}
	if scoreFlags.modelKind != "" {
		cfg.Model.Kind = scoreFlags.modelKind
	}
	if scoreFlags.modelPath != "" {
		cfg.Model.Path = scoreFlags.modelPath
	}

	pred, err := newPredictor(&cfg.Model, log)
	if err != nil {
		return err
	}

	items, err := inventory.Load(cmd.Context(), inventory.NewFileSource(scoreFlags.file))
	if err != nil {
		return fmt.Errorf("loading inventory: %w", err)
	}

	eng := newEngine(cfg, nil, pred, nil, log)
	seg := domain.ParseSegment(scoreFlags.segment)
	mode := domain.ParseMode(scoreFlags.mode)

	scored := eng.GetFilteredInventory(cmd.Context(), items, seg, mode)
	engine.SortByDiscount(scored)
	if scoreFlags.limit > 0 && len(scored) > scoreFlags.limit {
		scored = scored[:scoreFlags.limit]
	}

	w := cmd.OutOrStdout()
	if scoreFlags.output == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(scored)
	}
	return printScoredTable(w, scored)
}

// loadConfigOrDefault loads --config, falling back to defaults when the file
// does not exist.
func loadConfigOrDefault() (*config.Config, *slog.Logger, error) {
	if _, err := os.Stat(cfgFile); errors.Is(err, fs.ErrNotExist) {
		cfg := config.Default()
		log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
		return cfg, log, nil
	}
	return loadConfig()
}

func printScoredTable(w io.Writer, items []domain.ScoredItem) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PRODUCT\tNAME\tDAYS\tTURNOVER\tPRESSURE\tPRICE\tDISCOUNT\tSELLING")
	for i := range items {
		it := &items[i]
		fmt.Fprintf(tw, "%s\t%s\t%.0f\t%s\t%.2f\t%.2f\t%d%%\t%.2f\n",
			it.ProductID,
			it.ProductName,
			it.DaysToExpiry,
			it.TurnoverLabel,
			it.StockPressure,
			it.UnitPrice,
			it.DiscountPercent,
			it.SellingPrice,
		)
	}
	return tw.Flush()
}
