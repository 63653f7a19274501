package main

import (
	"github.com/spf13/cobra"
)

// NewRunCmd creates the run command.
func NewRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Generate a dataset and report on its quality",
		Long: `Run executes the generator and then the reporter with one configuration.
The dataset written by the generator is the dataset read by the reporter.

It accepts the flags of both 'loanqa generate' and 'loanqa report'.

Examples:
  # Generate 5000 records and write data_quality_report.html
  loanqa run

  # Small reproducible run with a Markdown profile
  loanqa run -n 100 -s 42 -p profile.md`,
		Args: cobra.NoArgs,
		RunE: runRunCmd,
	}

	addGenerateFlags(cmd)
	addReportFlags(cmd)

	return cmd
}

// runRunCmd executes the run command.
func runRunCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	logger := setupLogger(cmd.ErrOrStderr(), cfg)

	ctx, cancel := signalContext()
	defer cancel()

	if err := runGenerate(ctx, cfg, logger, cmd.ErrOrStderr()); err != nil {
		return err
	}
	return runReport(ctx, cfg, logger, cmd.OutOrStdout(), cmd.ErrOrStderr())
}
