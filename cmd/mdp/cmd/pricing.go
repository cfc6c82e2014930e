package cmd

import (
	"github.com/spf13/cobra"

	"github.com/donaldgifford/markdown-pricer/internal/engine"
)

func simulateCmd() *cobra.Command {
	var (
		in   engine.SimulationInput
		mode string
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Price a hypothetical item",
		Long: "Asks the server what discount it would give an item with these inputs.\n" +
			"A turnover ratio below 1.0 counts as slow.",
		Example: `  mdp simulate --days 3 --pressure 1.5 --turnover 0.4 --price 10
  mdp simulate --days 3 --pressure 1.5 --turnover 0.4 --price 10 --mode ml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := newClient().Simulate(cmd.Context(), in, mode)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if jsonOutput() {
				return outputJSON(w, res)
			}
			return printSimulation(w, res)
		},
	}

	f := cmd.Flags()
	f.Float64Var(&in.DaysToExpiry, "days", 0, "days to expiry")
	f.Float64Var(&in.StockPressure, "pressure", 0, "stock pressure")
	f.Float64Var(&in.TurnoverRatio, "turnover", 1, "turnover ratio")
	f.Float64Var(&in.UnitPrice, "price", 0, "unit price")
	f.IntVar(&in.StockQuantity, "quantity", 0, "units on hand")
	f.StringVar(&mode, "mode", "", "greedy or ml (default greedy)")
	cobra.CheckErr(cmd.MarkFlagRequired("price"))
	return cmd
}

func compareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compare",
		Short: "Compare greedy and ml pricing on active inventory",
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, err := newClient().Compare(cmd.Context())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if jsonOutput() {
				return outputJSON(w, report)
			}
			return printComparison(w, report)
		},
	}
}

func modelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "model",
		Short: "Describe the server's model",
		RunE: func(cmd *cobra.Command, _ []string) error {
			info, err := newClient().Model(cmd.Context())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if jsonOutput() {
				return outputJSON(w, info)
			}
			return printModel(w, info)
		},
	}
}
