package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import",
		Short: "Trigger an inventory import",
		Long:  "Triggers an import from the server's configured inventory source.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := newClient().Import(cmd.Context())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if jsonOutput() {
				return outputJSON(w, res)
			}
			fmt.Fprintf(w, "Import complete: %d items.\n", res.Rows)
			return nil
		},
	}
}

func refreshExpiryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh-expiry",
		Short: "Trigger an expiry refresh",
		Long:  "Recomputes days to expiry and the expired flag for every stored item.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := newClient().RefreshExpiry(cmd.Context())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if jsonOutput() {
				return outputJSON(w, res)
			}
			fmt.Fprintf(w, "Expiry refreshed: %d items.\n", res.Rows)
			return nil
		},
	}
}
