package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func inventoryCmd() *cobra.Command {
	var segment, mode string

	cmd := &cobra.Command{
		Use:   "inventory [product_id]",
		Short: "List priced inventory or price one item",
		Long: "Lists a segment of the stored inventory priced with the chosen strategy,\n" +
			"highest discount first. With a product ID, prices that single item.",
		Args: cobra.MaximumNArgs(1),
		Example: `  mdp inventory --segment near_expiry
  mdp inventory --segment low_turnover --mode ml
  mdp inventory SKU-1042 --mode ml --output json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := newClient()
			w := cmd.OutOrStdout()

			if len(args) == 1 {
				it, err := c.Item(cmd.Context(), args[0], mode)
				if err != nil {
					return err
				}
				if jsonOutput() {
					return outputJSON(w, it)
				}
				return printItemDetail(w, it)
			}

			page, err := c.Inventory(cmd.Context(), segment, mode)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(w, page)
			}
			if len(page.Items) == 0 {
				fmt.Fprintf(w, "No items in segment %s.\n", page.Segment)
				return nil
			}
			return printScoredTable(w, page.Items)
		},
	}

	cmd.Flags().StringVar(&segment, "segment", "",
		"expired, near_expiry, low_turnover, high_pressure, all (default all)")
	cmd.Flags().StringVar(&mode, "mode", "", "greedy or ml (default greedy)")
	return cmd
}

func expiredCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "expired",
		Short: "Show the expired stock loss report",
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, err := newClient().Expired(cmd.Context())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if jsonOutput() {
				return outputJSON(w, report)
			}
			if report.Count == 0 {
				fmt.Fprintln(w, "No expired stock.")
				return nil
			}
			return printLossReport(w, report)
		},
	}
}

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show inventory counts per segment",
		RunE: func(cmd *cobra.Command, _ []string) error {
			stats, err := newClient().Stats(cmd.Context())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if jsonOutput() {
				return outputJSON(w, stats)
			}
			return printStats(w, stats)
		},
	}
}
