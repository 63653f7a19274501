// Package main provides the entry point for the loanqa CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for loanqa.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "loanqa",
		Short: "Synthetic loan dataset generator and data-quality reporter",
		Long: `loanqa synthesizes a tabular loan-application dataset and assesses its quality.

The generator draws a reproducible dataset from a seed and writes it as CSV or
SQLite. The reporter loads the dataset, checks it for duplicate records, mixed
value types and missing values, and writes a profiling report (HTML, XLSX or
Markdown) with per-column statistics and distributions.

Settings are read from .loanqa (see 'loanqa init'), LOANQA_* environment
variables and flags, in increasing precedence.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().Bool("log-json", false, "Write log records as JSON")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: .loanqa in current or home directory)")

	// Add subcommands
	cmd.AddCommand(NewGenerateCmd())
	cmd.AddCommand(NewReportCmd())
	cmd.AddCommand(NewRunCmd())
	cmd.AddCommand(NewValidateCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
