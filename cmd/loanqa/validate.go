package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/nao1215/loanqa/internal/config"
	"github.com/nao1215/loanqa/internal/dataset"
	"github.com/nao1215/loanqa/internal/model"
	"github.com/nao1215/loanqa/internal/quality"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// errDomainViolations is returned when a dataset has values outside their domain.
var errDomainViolations = errors.New("domain violations found")

// maxViolationRows is the number of violations listed without --verbose.
const maxViolationRows = 20

// NewValidateCmd creates the validate command.
func NewValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [data-path]",
		Short: "Check every value of a dataset against its declared domain",
		Long: `Validate loads a dataset and checks each present value against the loan
application schema:
- Categorical columns hold one of their allowed values
- Numeric columns hold integers within their range or allowed set
- Loan_ID matches LP followed by digits and is unique

Missing cells are not violations; 'loanqa report' counts them.
The command exits with status 1 when a violation is found.

Examples:
  # Validate loan_applications.csv
  loanqa validate

  # Validate a SQLite dataset and list every violation
  loanqa validate loans.db -v`,
		Args: cobra.MaximumNArgs(1),
		RunE: runValidateCmd,
	}

	return cmd
}

// runValidateCmd executes the validate command.
func runValidateCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	logger := setupLogger(cmd.ErrOrStderr(), cfg)

	ctx, cancel := signalContext()
	defer cancel()

	return runValidate(ctx, cfg, logger, cmd.OutOrStdout())
}

// runValidate checks cfg.DataPath against the loan schema and prints the result to out.
func runValidate(ctx context.Context, cfg *config.Config, logger *slog.Logger, out io.Writer) error {
	table, err := dataset.Load(ctx, cfg.DataPath)
	if err != nil {
		return err
	}

	violations := quality.DomainViolations(table, model.LoanSchema())
	for _, v := range violations {
		// The value is keyed by its column so the logger masks financial fields.
		logger.Debug("domain violation", "row", v.Row, "column", v.Column, "reason", v.Reason, v.Column, v.Value)
	}
	logger.Debug("validation completed", "path", cfg.DataPath, "violations", len(violations))

	if len(violations) == 0 {
		color.New(color.FgGreen, color.Bold).Fprint(out, "PASS")
		fmt.Fprintf(out, " %s: %s rows, every value within its domain\n",
			cfg.DataPath, humanize.Comma(int64(table.NumRows())))
		return nil
	}

	if err := writeViolations(out, violations, cfg.Verbose); err != nil {
		return err
	}

	color.New(color.FgRed, color.Bold).Fprint(out, "FAIL")
	fmt.Fprintf(out, " %s: %s violations in %s rows\n",
		cfg.DataPath, humanize.Comma(int64(len(violations))), humanize.Comma(int64(table.NumRows())))

	return fmt.Errorf("%w: %d", errDomainViolations, len(violations))
}

// writeViolations prints violations as a table, truncated unless verbose.
func writeViolations(out io.Writer, violations []quality.Violation, verbose bool) error {
	shown := violations
	if !verbose && len(shown) > maxViolationRows {
		shown = shown[:maxViolationRows]
	}

	rows := make([][]string, len(shown))
	for i, v := range shown {
		row := "-"
		if v.Row >= 0 {
			row = fmt.Sprintf("%d", v.Row)
		}
		rows[i] = []string{row, v.Column, v.Value, v.Reason}
	}

	table := tablewriter.NewWriter(out)
	table.Header("Row", "Column", "Value", "Reason")
	if err := table.Bulk(rows); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if rest := len(violations) - len(shown); rest > 0 {
		fmt.Fprintf(out, "... and %d more (use --verbose to list all)\n", rest)
	}
	return nil
}
