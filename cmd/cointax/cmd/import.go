package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rustyeddy/cointax/config"
	"github.com/rustyeddy/cointax/exchange"
	"github.com/rustyeddy/cointax/pipeline"
	"github.com/rustyeddy/cointax/report"
)

var importCmd = &cobra.Command{
	Use:   "import <export-file>",
	Short: "Import an exchange export and report the resulting ledger",
	Long: `Import a transaction export, build the per-asset ledger and hand it to the
chosen report sink. Any malformed row aborts the whole run: no partial
ledger is ever reported.

Examples:
  cointax import export.csv
  cointax import export.csv --report csv --balances balances.csv
  cointax import export.csv --report sqlite --db ./cointax.sqlite
  cointax import --config run.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runImport,
}

var (
	importConfigPath string
	importExchange   string
	importReport     string
	importBalances   string
	importHistory    string
	importDB         string
	importDebug      bool
)

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringVarP(&importConfigPath, "config", "f", "", "path to config file (YAML or JSON); overrides the other flags")
	importCmd.Flags().StringVarP(&importExchange, "exchange", "e", "coinbase", "exchange that produced the export")
	importCmd.Flags().StringVarP(&importReport, "report", "r", "text", "report sink: text, csv or sqlite")
	importCmd.Flags().StringVar(&importBalances, "balances", "balances.csv", "balances output path (csv report)")
	importCmd.Flags().StringVar(&importHistory, "history", "history.csv", "history output path (csv report)")
	importCmd.Flags().StringVarP(&importDB, "db", "d", "./cointax.sqlite", "path to SQLite store (sqlite report)")
	importCmd.Flags().BoolVarP(&importDebug, "verbose", "v", false, "log every applied transaction")
}

func importConfig(args []string) (*config.Config, error) {
	if importConfigPath != "" {
		return config.LoadFromFile(importConfigPath)
	}

	if len(args) != 1 {
		return nil, fmt.Errorf("an export file argument is required when no --config is given")
	}

	cfg := config.Default()
	cfg.Input.File = args[0]
	cfg.Input.Exchange = importExchange
	cfg.Report.Type = importReport
	cfg.Report.BalancesFile = importBalances
	cfg.Report.HistoryFile = importHistory
	cfg.Report.DBPath = importDB
	if importDebug {
		cfg.Log.Level = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := importConfig(args)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.Log.Level)
	if err != nil {
		return err
	}
	defer logger.Sync()

	feed, err := exchange.Open(cfg.Input.Exchange, cfg.Input.File)
	if err != nil {
		return fmt.Errorf("open export: %w", err)
	}
	defer feed.Close()

	l, err := pipeline.Run(feed, logger)
	if err != nil {
		return fmt.Errorf("import %s: %w", cfg.Input.File, err)
	}

	switch cfg.Report.Type {
	case "text":
		return report.Text(os.Stdout, l)
	case "csv":
		if cfg.Report.BalancesFile != "" {
			if err := report.WriteBalancesCSV(cfg.Report.BalancesFile, l); err != nil {
				return fmt.Errorf("write balances: %w", err)
			}
		}
		if cfg.Report.HistoryFile != "" {
			if err := report.WriteHistoryCSV(cfg.Report.HistoryFile, l); err != nil {
				return fmt.Errorf("write history: %w", err)
			}
		}
		return nil
	case "sqlite":
		store, err := report.NewSQLite(cfg.Report.DBPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer store.Close()

		importID, err := store.SaveLedger(l, cfg.Input.Exchange, cfg.Input.File)
		if err != nil {
			return fmt.Errorf("save ledger: %w", err)
		}
		fmt.Println(importID)
		return nil
	default:
		return fmt.Errorf("unknown report type %q", cfg.Report.Type)
	}
}

func newLogger(level string) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	switch level {
	case "debug":
		zcfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "", "info":
		zcfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "error":
		zcfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		return nil, fmt.Errorf("unknown log level %q", level)
	}
	return zcfg.Build()
}
