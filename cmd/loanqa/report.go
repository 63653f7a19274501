package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/nao1215/loanqa/internal/chart"
	"github.com/nao1215/loanqa/internal/config"
	"github.com/nao1215/loanqa/internal/dataset"
	"github.com/nao1215/loanqa/internal/model"
	"github.com/nao1215/loanqa/internal/pipeline"
	"github.com/nao1215/loanqa/internal/profile"
	"github.com/nao1215/loanqa/internal/report"
	"github.com/spf13/cobra"
)

// missingChartFile is the SVG file name of the missing-data chart.
const missingChartFile = "missing_data.svg"

// NewReportCmd creates the report command.
func NewReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report [data-path]",
		Short: "Assess the quality of a loan application dataset",
		Long: `Report loads a dataset and runs the data-quality checks over it:
- Dataset Summary: descriptive statistics per column
- Duplicate Records: rows identical to an earlier row
- Missing Data Visualization: missing cells per column
- Data Type Consistency Check: columns mixing numbers and text
- Missing Values in Columns Check: missing counts of selected columns

The report is printed to stdout and a profiling report is written to the
profile path. The profile format follows its extension (.html, .xlsx or .md).

Examples:
  # Report on loan_applications.csv
  loanqa report

  # Report on a SQLite dataset and write an Excel profile
  loanqa report loans.db -p profile.xlsx

  # Output a Markdown report and save it to a file
  loanqa report --markdown -o reports/quality.md

  # Chart income distributions and save every chart as SVG
  loanqa report --histogram ApplicantIncome,CoapplicantIncome --charts-dir charts`,
		Args: cobra.MaximumNArgs(1),
		RunE: runReportCmd,
	}

	addReportFlags(cmd)

	return cmd
}

// runReportCmd executes the report command.
func runReportCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	logger := setupLogger(cmd.ErrOrStderr(), cfg)

	ctx, cancel := signalContext()
	defer cancel()

	return runReport(ctx, cfg, logger, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// runReport loads cfg.DataPath, runs the quality checks and writes every
// configured output. The report goes to out; progress messages go to status
// so that a JSON report on stdout stays parseable.
func runReport(ctx context.Context, cfg *config.Config, logger *slog.Logger, out, status io.Writer) error {
	logger.Info("starting report",
		"path", cfg.DataPath,
		"profile", cfg.ProfilePath,
		"histograms", cfg.HistogramColumns,
	)

	table, err := dataset.Load(ctx, cfg.DataPath)
	if err != nil {
		return err
	}

	fingerprint, err := dataset.Fingerprint(table)
	if err != nil {
		return err
	}

	meta := model.ReportMetadata{
		Title:       cfg.ReportTitle,
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now(),
		Source:      cfg.DataPath,
		Fingerprint: fingerprint,
	}

	qualityReport, err := pipeline.GenerateDataQualityReport(ctx, table, meta,
		pipeline.WithPipelineSchema(model.LoanSchema()),
		pipeline.WithPipelineMissingColumns(cfg.MissingColumns),
		pipeline.WithPipelineHistograms(cfg.HistogramBins, cfg.HistogramColumns),
		pipeline.WithPipelineLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("quality checks failed: %w", err)
	}

	if err := outputReport(cfg, qualityReport, out); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if cfg.ChartsDir != "" {
		paths, err := saveCharts(cfg.ChartsDir, qualityReport)
		if err != nil {
			return err
		}
		fmt.Fprintf(status, "Charts written: %s\n", strings.Join(paths, ", "))
	}

	if cfg.ProfilePath != "" {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := profile.WriteFile(cfg.ProfilePath, table, cfg.ReportTitle); err != nil {
			return err
		}
		fmt.Fprintf(status, "Profile written: %s\n", describeFile(cfg.ProfilePath))
	}

	if cfg.ReportFile != "" {
		fmt.Fprintf(status, "Report written: %s\n", describeFile(cfg.ReportFile))
	}

	logger.Debug("report completed", "run_id", meta.RunID, "clean", qualityReport.IsClean())
	return nil
}

// newFormatWriter returns the writer for the report format selected in cfg.
func newFormatWriter(cfg *config.Config, w io.Writer) report.Writer {
	switch {
	case cfg.JSONReport:
		return report.NewJSONWriter(w, report.WithPrettyPrint(), report.WithVersion(getVersion()))
	case cfg.MarkdownReport:
		return report.NewMarkdownWriter(w)
	default:
		return report.NewSimpleWriter(w, report.WithVerbose(cfg.Verbose))
	}
}

// outputReport writes the report in the requested format.
// Without a report file, the selected format goes to out. With one, the file
// receives the selected format and out keeps the console rendering.
func outputReport(cfg *config.Config, qualityReport *model.QualityReport, out io.Writer) error {
	if cfg.ReportFile == "" {
		_, err := newFormatWriter(cfg, out).Write(qualityReport)
		return err
	}

	// Create directories if they don't exist
	if dir := filepath.Dir(cfg.ReportFile); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	// Reports list applicant rows, so the file is readable by the owner only
	f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	writer := report.NewMultiWriter(
		report.NewSimpleWriter(out, report.WithVerbose(cfg.Verbose)),
		newFormatWriter(cfg, f),
	)
	if _, err := writer.Write(qualityReport); err != nil {
		return err
	}
	return f.Close()
}

// saveCharts writes the missing-data chart and every histogram as SVG files
// under dir and returns the written paths.
func saveCharts(dir string, qualityReport *model.QualityReport) ([]string, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create charts directory: %w", err)
	}

	var paths []string
	if qualityReport.MissingChart != nil {
		path := filepath.Join(dir, missingChartFile)
		if err := writeSVG(path, qualityReport.MissingChart); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	for i := range qualityReport.Histograms {
		h := &qualityReport.Histograms[i]
		path := filepath.Join(dir, histogramFile(h.Column))
		if err := writeSVG(path, h.BarChart()); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// histogramFile returns the SVG file name of a column's histogram.
func histogramFile(column string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			return r
		default:
			return '_'
		}
	}, column)
	return "histogram_" + name + ".svg"
}

// writeSVG renders c into a new SVG file at path.
func writeSVG(path string, c *model.BarChart) (err error) {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close chart file: %w", cerr)
		}
	}()

	if err := chart.SVG(f, c); err != nil {
		return fmt.Errorf("failed to render chart %q: %w", c.Title, err)
	}
	return nil
}

// describeFile formats a path with its size for status messages.
func describeFile(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		return path
	}
	return fmt.Sprintf("%s (%s)", path, humanize.Bytes(uint64(info.Size()))) //nolint:gosec // file sizes are never negative
}
