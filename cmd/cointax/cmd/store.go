package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/cointax/report"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Query stored import runs",
	Long: `Query the SQLite store of past import runs.

Subcommands:
  imports   - List stored import runs
  balances  - Show per-asset balances of one run
  history   - Show one asset's transaction history within a run

Examples:
  cointax store imports
  cointax store balances <import-id>
  cointax store history <import-id> BTC`,
}

var storeImportsCmd = &cobra.Command{
	Use:   "imports",
	Short: "List stored import runs",
	Args:  cobra.NoArgs,
	RunE:  runStoreImports,
}

var storeBalancesCmd = &cobra.Command{
	Use:   "balances <import-id>",
	Short: "Show per-asset balances of an import run",
	Args:  cobra.ExactArgs(1),
	RunE:  runStoreBalances,
}

var storeHistoryCmd = &cobra.Command{
	Use:   "history <import-id> <asset>",
	Short: "Show one asset's transaction history within an import run",
	Args:  cobra.ExactArgs(2),
	RunE:  runStoreHistory,
}

var storeDBPath string

func init() {
	rootCmd.AddCommand(storeCmd)
	storeCmd.AddCommand(storeImportsCmd)
	storeCmd.AddCommand(storeBalancesCmd)
	storeCmd.AddCommand(storeHistoryCmd)

	storeCmd.PersistentFlags().StringVarP(&storeDBPath, "db", "d", "./cointax.sqlite", "path to SQLite store")
}

func openStore() (*report.SQLite, error) {
	s, err := report.NewSQLite(storeDBPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return s, nil
}

func runStoreImports(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	imports, err := s.ListImports()
	if err != nil {
		return fmt.Errorf("list imports: %w", err)
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "IMPORT\tEXCHANGE\tSOURCE\tCREATED")
	for _, rec := range imports {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			rec.ImportID, rec.Exchange, rec.Source, rec.CreatedAt.Format(time.RFC3339))
	}
	return tw.Flush()
}

func runStoreBalances(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	balances, err := s.GetBalances(args[0])
	if err != nil {
		return fmt.Errorf("get balances: %w", err)
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ASSET\tQUANTITY")
	for _, b := range balances {
		fmt.Fprintf(tw, "%s\t%.8f\n", b.Asset, b.Quantity)
	}
	return tw.Flush()
}

func runStoreHistory(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	txs, err := s.ListTransactions(args[0], args[1])
	if err != nil {
		return fmt.Errorf("list transactions: %w", err)
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TIME\tACTION\tQUANTITY\tPRICE\tCONVERT")
	for _, tx := range txs {
		conv := ""
		if tx.Conversion != nil {
			conv = fmt.Sprintf("%.8f %s", tx.Conversion.Quantity, tx.Conversion.Name)
		}
		fmt.Fprintf(tw, "%s\t%s\t%.8f\t%.2f\t%s\n",
			tx.Time().Format(time.RFC3339), tx.Action, tx.Quantity, tx.Price, conv)
	}
	return tw.Flush()
}
