// Package cmd implements the journalctl command tree.
package cmd

import (
	"fmt"

	"crypto-trade-journal/internal/calc"
	"crypto-trade-journal/internal/config"
	"crypto-trade-journal/internal/database"
	"crypto-trade-journal/internal/journal"
	"crypto-trade-journal/internal/logger"
	"crypto-trade-journal/internal/store"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// options are the flags shared by every subcommand.
type options struct {
	configDir string
	dbPath    string
	verbose   bool
	noColor   bool
}

// NewRootCmd builds the full command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "journalctl",
		Short: "Work with the crypto trade journal from the terminal",
		Long: `journalctl sizes positions, reports statistics and runs maintenance
tasks against the trade journal database.

Examples:
  journalctl calc --balance 5000 --risk 2 --direction Long --entry 50000 --stop 49000 --tp 52000
  journalctl stats --user alice --group session --sort count
  journalctl export --user alice --out trades.csv
  journalctl alerts check`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.noColor {
				color.NoColor = true
			}
		},
	}

	root.PersistentFlags().StringVarP(&opts.configDir, "config", "c", "./configs", "directory holding config.yml")
	root.PersistentFlags().StringVarP(&opts.dbPath, "db", "d", "", "SQLite journal path (overrides database.dsn)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log at the configured level instead of warn")
	root.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "disable colored output")

	root.AddCommand(newCalcCmd())
	root.AddCommand(newStatsCmd(opts))
	root.AddCommand(newExportCmd(opts))
	root.AddCommand(newAlertsCmd(opts))
	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

// load reads the configuration, falling back to defaults when no file exists.
func (o *options) load() (config.Config, error) {
	cfg, err := config.LoadConfig(o.configDir)
	if err != nil {
		if !config.IsNotFound(err) {
			return config.Config{}, err
		}
		cfg = config.Defaults()
	}
	if o.dbPath != "" {
		cfg.Database.DSN = o.dbPath
	}
	return cfg, nil
}

func (o *options) logger(cfg config.Config) (*zap.Logger, error) {
	level := "warn"
	if o.verbose {
		level = cfg.Logger.Level
	}
	return logger.NewLogger(config.Logger{Level: level, Format: cfg.Logger.Format})
}

// env is what the database backed subcommands run against.
type env struct {
	cfg     config.Config
	log     *zap.Logger
	store   *store.Store
	journal *journal.Service
}

func (o *options) open() (*env, error) {
	cfg, err := o.load()
	if err != nil {
		return nil, err
	}
	log, err := o.logger(cfg)
	if err != nil {
		return nil, err
	}
	db, err := database.NewDatabase(cfg.Database.DSN)
	if err != nil {
		return nil, err
	}

	st := store.New(db)
	svc := journal.NewService(log, st,
		calc.NewCalculator(cfg.Journal.BreakEvenTolerance),
		calc.NewValidator(cfg.Journal.RiskPercents))
	return &env{cfg: cfg, log: log, store: st, journal: svc}, nil
}

func (e *env) close() {
	if sqlDB, err := e.store.DB().DB(); err == nil {
		_ = sqlDB.Close()
	}
	_ = e.log.Sync()
}

// money renders a P/L figure green when positive and red when negative.
func money(v float64) string {
	switch {
	case v > 0:
		return color.GreenString("%+.2f", v)
	case v < 0:
		return color.RedString("%.2f", v)
	}
	return fmt.Sprintf("%.2f", v)
}
