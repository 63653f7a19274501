package pipeline

import (
	"context"
	"log/slog"

	"github.com/nao1215/loanqa/internal/model"
	"github.com/nao1215/loanqa/internal/quality"
)

// SummaryStep computes per-column descriptive statistics.
type SummaryStep struct{}

// NewSummaryStep creates a new dataset summary step.
func NewSummaryStep() *SummaryStep {
	return &SummaryStep{}
}

// Name returns the step name.
func (s *SummaryStep) Name() string {
	return "dataset_summary"
}

// Do executes the summary step.
func (s *SummaryStep) Do(_ context.Context, table *model.Table, report *model.QualityReport) error {
	report.Summary = quality.Summary(table)
	return nil
}

// DuplicatesStep counts exact full-row duplicates.
type DuplicatesStep struct{}

// NewDuplicatesStep creates a new duplicate record step.
func NewDuplicatesStep() *DuplicatesStep {
	return &DuplicatesStep{}
}

// Name returns the step name.
func (s *DuplicatesStep) Name() string {
	return "duplicate_records"
}

// Do executes the duplicate record step.
func (s *DuplicatesStep) Do(_ context.Context, table *model.Table, report *model.QualityReport) error {
	report.Duplicates = quality.DuplicateRecords(table)
	return nil
}

// MissingChartStep builds the missing-data percentage chart.
type MissingChartStep struct{}

// NewMissingChartStep creates a new missing-data visualization step.
func NewMissingChartStep() *MissingChartStep {
	return &MissingChartStep{}
}

// Name returns the step name.
func (s *MissingChartStep) Name() string {
	return "missing_data_visualization"
}

// Do executes the missing-data visualization step.
func (s *MissingChartStep) Do(_ context.Context, table *model.Table, report *model.QualityReport) error {
	report.MissingChart = quality.MissingDataChart(table)
	return nil
}

// TypeConsistencyStep checks that each column holds a single kind of value.
type TypeConsistencyStep struct {
	// schema declares the expected kind of each column.
	schema *model.Schema
}

// NewTypeConsistencyStep creates a new type consistency step.
// A nil schema checks observed kinds only.
func NewTypeConsistencyStep(schema *model.Schema) *TypeConsistencyStep {
	return &TypeConsistencyStep{schema: schema}
}

// Name returns the step name.
func (s *TypeConsistencyStep) Name() string {
	return "data_type_consistency"
}

// Do executes the type consistency step.
func (s *TypeConsistencyStep) Do(_ context.Context, table *model.Table, report *model.QualityReport) error {
	report.TypeIssues = quality.TypeConsistency(table, s.schema)
	return nil
}

// MissingValuesStep counts missing entries in selected columns.
type MissingValuesStep struct {
	// columns are the columns to count; empty means the demographic columns.
	columns []string
}

// NewMissingValuesStep creates a new missing-values step.
func NewMissingValuesStep(columns ...string) *MissingValuesStep {
	return &MissingValuesStep{columns: columns}
}

// Name returns the step name.
func (s *MissingValuesStep) Name() string {
	return "missing_values_in_columns"
}

// Do executes the missing-values step.
// A checked column that is absent from the table fails the step.
func (s *MissingValuesStep) Do(_ context.Context, table *model.Table, report *model.QualityReport) error {
	lines, err := quality.MissingValues(table, s.columns...)
	if err != nil {
		return err
	}
	report.MissingValues = lines
	return nil
}

// HistogramStep bins numeric columns for the distribution charts.
// It is not one of the five report sections and is only added on request.
type HistogramStep struct {
	columns []string
	bins    int
}

// NewHistogramStep creates a histogram step for the given columns.
// A bin count below one falls back to quality.DefaultBins.
func NewHistogramStep(bins int, columns ...string) *HistogramStep {
	if bins <= 0 {
		bins = quality.DefaultBins
	}
	return &HistogramStep{columns: columns, bins: bins}
}

// Name returns the step name.
func (s *HistogramStep) Name() string {
	return "distribution_histograms"
}

// Do executes the histogram step.
func (s *HistogramStep) Do(_ context.Context, table *model.Table, report *model.QualityReport) error {
	for _, col := range s.columns {
		h, err := quality.Histogram(table, col, s.bins)
		if err != nil {
			return err
		}
		report.Histograms = append(report.Histograms, *h)
	}
	return nil
}

// DefaultPipelineConfig holds configuration for the default pipeline.
type DefaultPipelineConfig struct {
	// Schema declares the expected column kinds for the type consistency check.
	Schema *model.Schema

	// MissingColumns are the columns counted by the missing-values check.
	MissingColumns []string

	// HistogramColumns are numeric columns to bin after the report sections.
	HistogramColumns []string

	// HistogramBins is the bin count of each histogram.
	HistogramBins int

	// Logger receives step progress.
	Logger *slog.Logger
}

// DefaultPipelineOption configures a DefaultPipelineConfig.
type DefaultPipelineOption func(*DefaultPipelineConfig)

// WithPipelineSchema sets the declared schema.
func WithPipelineSchema(schema *model.Schema) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.Schema = schema
	}
}

// WithPipelineMissingColumns sets the columns counted by the missing-values check.
func WithPipelineMissingColumns(columns []string) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.MissingColumns = columns
	}
}

// WithPipelineHistograms requests distribution histograms for the given columns.
func WithPipelineHistograms(bins int, columns []string) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.HistogramBins = bins
		c.HistogramColumns = columns
	}
}

// WithPipelineLogger sets the logger used by the pipeline.
func WithPipelineLogger(logger *slog.Logger) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.Logger = logger
	}
}

// DefaultPipeline creates a pipeline with the five report checks in report order,
// followed by a histogram step when histogram columns are configured.
//
// Design decision: We provide a default pipeline because:
// 1. Every report needs all five sections
// 2. Reduces boilerplate in CLI
// 3. Ensures consistent ordering
func DefaultPipeline(configOpts ...DefaultPipelineOption) *Pipeline {
	cfg := &DefaultPipelineConfig{
		Schema:         model.LoanSchema(),
		MissingColumns: model.DemographicColumns(),
		HistogramBins:  quality.DefaultBins,
	}
	for _, opt := range configOpts {
		opt(cfg)
	}

	var pipelineOpts []Option
	if cfg.Logger != nil {
		pipelineOpts = append(pipelineOpts, WithLogger(cfg.Logger))
	}
	p := New(pipelineOpts...)

	p.AddSteps(
		NewSummaryStep(),
		NewDuplicatesStep(),
		NewMissingChartStep(),
		NewTypeConsistencyStep(cfg.Schema),
		NewMissingValuesStep(cfg.MissingColumns...),
	)
	if len(cfg.HistogramColumns) > 0 {
		p.AddStep(NewHistogramStep(cfg.HistogramBins, cfg.HistogramColumns...))
	}

	return p
}

// GenerateDataQualityReport runs the default pipeline over table and returns the
// assembled report. The first failing check aborts the run and its error is
// returned with a nil report.
func GenerateDataQualityReport(
	ctx context.Context,
	table *model.Table,
	meta model.ReportMetadata,
	opts ...DefaultPipelineOption,
) (*model.QualityReport, error) {
	meta.Rows = table.NumRows()
	meta.Columns = table.NumColumns()
	report := model.NewQualityReport(meta)

	if err := DefaultPipeline(opts...).Execute(ctx, table, report); err != nil {
		return nil, err
	}
	return report, nil
}
