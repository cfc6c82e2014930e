package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/markdown-pricer/internal/inventory"
	"github.com/donaldgifford/markdown-pricer/internal/store"
)

var importFile string

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import inventory into the database",
	Long: "Reads inventory from --file, or the configured source, and replaces the stored inventory.\n" +
		"A malformed file is rejected and the stored inventory is left untouched.",
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVar(&importFile, "file", "", "inventory CSV to import (overrides the configured source)")
}

func runImport(cmd *cobra.Command, _ []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	var src inventory.Source
	if importFile != "" {
		src = inventory.NewFileSource(importFile)
	} else if src, err = newSource(&cfg.Source); err != nil {
		return err
	}

	st, err := store.NewPostgresStore(ctx, cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer st.Close()

	eng := newEngine(cfg, st, nil, src, log)
	n, err := eng.RunImport(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "imported %d items\n", n)
	return nil
}
