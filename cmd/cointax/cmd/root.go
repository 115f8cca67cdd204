package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cointax",
	Short: "Build per-asset ledgers from cryptocurrency exchange exports",
	Long: `Cointax ingests a cryptocurrency exchange's transaction export and builds
a per-asset ledger: running holdings plus a timestamp-ordered transaction
history, the raw material for cost-basis and tax analysis.

It provides tools for:
  - Importing exchange CSV exports (coinbase)
  - Rendering balances and histories as text or CSV
  - Persisting import runs to a SQLite store
  - Querying stored balances and histories`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}
