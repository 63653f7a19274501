package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/nao1215/loanqa/internal/config"
	"github.com/nao1215/loanqa/internal/log"
	"github.com/spf13/cobra"
)

// addGenerateFlags registers the flags of the generator stage.
func addGenerateFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("data", "d", config.DefaultDataPath,
		"Dataset file to write (.csv or .db)")
	cmd.Flags().IntP("records", "n", config.DefaultNumRecords,
		"Number of records to generate")
	cmd.Flags().Int64P("seed", "s", config.DefaultSeed,
		"Random seed; the same seed and record count give the same dataset")
}

// addReportFlags registers the flags of the reporter stage.
func addReportFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("title", "t", config.DefaultReportTitle,
		"Report and profile title")
	cmd.Flags().StringP("profile", "p", config.DefaultProfilePath,
		"Profiling report path (.html, .xlsx or .md); empty disables profiling")
	cmd.Flags().StringSlice("missing-columns", nil,
		"Columns counted by the missing-values check (default: demographic columns)")
	cmd.Flags().StringSlice("histogram", nil,
		"Numeric columns whose distributions are charted after the report")
	cmd.Flags().Int("bins", config.DefaultHistogramBins,
		"Number of bins per histogram")
	cmd.Flags().String("charts-dir", "",
		"Directory receiving one SVG file per chart")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Also write the report to the specified file path (creates directories if needed)")
}

// buildConfig loads the layered configuration and applies the flags the user set.
// Flags left at their defaults never override the file or the environment.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	// --config is a root flag and is absent when a subcommand runs on its own
	var configPath string
	if flag := cmd.Flags().Lookup("config"); flag != nil {
		configPath = flag.Value.String()
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := applyFlags(cmd, cfg); err != nil {
		return nil, err
	}

	// A positional argument names the dataset
	if len(args) > 0 {
		cfg.DataPath = args[0]
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}
	return cfg, nil
}

// changed reports whether the named flag exists on cmd and was set by the user.
func changed(cmd *cobra.Command, name string) bool {
	flag := cmd.Flags().Lookup(name)
	return flag != nil && flag.Changed
}

// applyFlags overrides cfg with every flag the user set.
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	var err error
	flags := cmd.Flags()

	if changed(cmd, "data") {
		if cfg.DataPath, err = flags.GetString("data"); err != nil {
			return err
		}
	}
	if changed(cmd, "records") {
		if cfg.NumRecords, err = flags.GetInt("records"); err != nil {
			return err
		}
	}
	if changed(cmd, "seed") {
		if cfg.Seed, err = flags.GetInt64("seed"); err != nil {
			return err
		}
	}
	if changed(cmd, "title") {
		if cfg.ReportTitle, err = flags.GetString("title"); err != nil {
			return err
		}
	}
	if changed(cmd, "profile") {
		if cfg.ProfilePath, err = flags.GetString("profile"); err != nil {
			return err
		}
	}
	if changed(cmd, "missing-columns") {
		if cfg.MissingColumns, err = flags.GetStringSlice("missing-columns"); err != nil {
			return err
		}
	}
	if changed(cmd, "histogram") {
		if cfg.HistogramColumns, err = flags.GetStringSlice("histogram"); err != nil {
			return err
		}
	}
	if changed(cmd, "bins") {
		if cfg.HistogramBins, err = flags.GetInt("bins"); err != nil {
			return err
		}
	}
	if changed(cmd, "charts-dir") {
		if cfg.ChartsDir, err = flags.GetString("charts-dir"); err != nil {
			return err
		}
	}
	if changed(cmd, "json") {
		if cfg.JSONReport, err = flags.GetBool("json"); err != nil {
			return err
		}
	}
	if changed(cmd, "markdown") {
		if cfg.MarkdownReport, err = flags.GetBool("markdown"); err != nil {
			return err
		}
	}
	if changed(cmd, "output") {
		if cfg.ReportFile, err = flags.GetString("output"); err != nil {
			return err
		}
	}
	if changed(cmd, "verbose") {
		if cfg.Verbose, err = flags.GetBool("verbose"); err != nil {
			return err
		}
	}
	if changed(cmd, "log-json") {
		if cfg.LogJSON, err = flags.GetBool("log-json"); err != nil {
			return err
		}
	}
	return nil
}

// setupLogger creates the masking logger for the configured verbosity and format.
func setupLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	logger := log.NewSecureLogger(w, cfg.Verbose, log.WithJSON(cfg.LogJSON))
	slog.SetDefault(logger)
	return logger
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
