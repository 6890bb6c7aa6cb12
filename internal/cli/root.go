package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"asset-dashboard/internal/config"
	"asset-dashboard/internal/data"
	"asset-dashboard/internal/logging"
)

var ErrLogHandlerFailed = errors.New("log handler failed")

// RootArgs are the flags shared by every subcommand.
type RootArgs struct {
	configPath string
	dataPath   string
	sheet      string
	logLevel   string
	logFormat  string
}

// NewRootCmd returns the assetdash command tree.
func NewRootCmd(name, shortDesc string) *cobra.Command {
	args := &RootArgs{}

	cmd := &cobra.Command{
		Use:           name,
		Short:         shortDesc,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&args.configPath, "config", os.Getenv("DASH_CONFIG"), "Path to YAML config")
	cmd.PersistentFlags().StringVar(&args.dataPath, "data", "", "Dataset file (.xlsx, .csv, .json); overrides the config")
	cmd.PersistentFlags().StringVar(&args.sheet, "sheet", "", "Worksheet to read from an xlsx dataset")
	cmd.PersistentFlags().StringVar(&args.logLevel, "log_level", "warn", "Set the log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&args.logFormat, "log_format", "text", "Set the log format (text, json)")

	if err := cmd.MarkPersistentFlagFilename("config", "yaml", "yml"); err != nil {
		panic(err)
	}
	if err := cmd.MarkPersistentFlagFilename("data", "xlsx", "xlsm", "csv", "json"); err != nil {
		panic(err)
	}

	cmd.PersistentPreRunE = func(cc *cobra.Command, _ []string) error {
		h, err := logging.CreateHandler(cc.ErrOrStderr(), args.logLevel, args.logFormat)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrLogHandlerFailed, err)
		}
		slog.SetDefault(slog.New(h))
		return nil
	}

	cmd.AddCommand(NewOptionsCmd(args))
	cmd.AddCommand(NewSummaryCmd(args))
	cmd.AddCommand(NewRankCmd(args))

	return cmd
}

// load resolves config plus flags and reads the dataset once.
func (a *RootArgs) load() (*config.Config, *data.Table, error) {
	cfg, err := config.LoadUnchecked(a.configPath)
	if err != nil {
		return nil, nil, err
	}
	cfg.ApplyEnv(os.Getenv)
	if a.dataPath != "" {
		cfg.Dataset.Path = a.dataPath
	}
	if a.sheet != "" {
		cfg.Dataset.Sheet = a.sheet
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	tbl, stats, err := data.Load(cfg.Dataset.Path, cfg.Dataset.Sheet)
	if err != nil {
		return nil, nil, err
	}
	slog.Debug("dataset loaded", "path", cfg.Dataset.Path, "rows", stats.RowsKept, "dropped", stats.RowsDropped)
	return cfg, tbl, nil
}
