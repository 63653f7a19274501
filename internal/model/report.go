package model

import "time"

// Section names of a quality report, in report order.
const (
	SectionDatasetSummary  = "Dataset Summary"
	SectionDuplicates      = "Duplicate Records"
	SectionMissingChart    = "Missing Data Visualization"
	SectionTypeConsistency = "Data Type Consistency Check"
	SectionMissingValues   = "Missing Values in Columns Check"
)

// SectionNames returns the five report section names in report order.
func SectionNames() []string {
	return []string{
		SectionDatasetSummary,
		SectionDuplicates,
		SectionMissingChart,
		SectionTypeConsistency,
		SectionMissingValues,
	}
}

// ColumnStats holds the descriptive statistics of one column.
// Text columns fill Unique, Top and Freq; numeric columns fill the moments
// and quantiles. Fields that do not apply to a column are nil.
type ColumnStats struct {
	Name  string `json:"name"`
	Kind  Kind   `json:"kind"`
	Count int    `json:"count"`

	Unique *int    `json:"unique,omitempty"`
	Top    *string `json:"top,omitempty"`
	Freq   *int    `json:"freq,omitempty"`

	Mean *float64 `json:"mean,omitempty"`
	Std  *float64 `json:"std,omitempty"`
	Min  *float64 `json:"min,omitempty"`
	P25  *float64 `json:"25%,omitempty"`
	P50  *float64 `json:"50%,omitempty"`
	P75  *float64 `json:"75%,omitempty"`
	Max  *float64 `json:"max,omitempty"`
}

// IsNumeric reports whether the stats describe a numeric column.
func (s ColumnStats) IsNumeric() bool {
	return s.Kind.IsNumeric()
}

// SummaryTable is the per-column descriptive statistics of a table, in column order.
type SummaryTable struct {
	Rows    int           `json:"rows"`
	Columns []ColumnStats `json:"columns"`
}

// DuplicateRow is one row that repeats an earlier row.
type DuplicateRow struct {
	// Index is the zero-based row position in the table.
	Index int `json:"index"`

	// FirstIndex is the position of the first occurrence of the same content.
	FirstIndex int `json:"first_index"`

	// Cells holds the row content.
	Cells []Cell `json:"cells"`
}

// DuplicateResult is the outcome of the duplicate-record check.
type DuplicateResult struct {
	Columns []string       `json:"columns"`
	Count   int            `json:"count"`
	Message string         `json:"message"`
	Rows    []DuplicateRow `json:"rows"`
}

// ReportMetadata describes a single report run.
type ReportMetadata struct {
	Title       string    `json:"title"`
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`
	Source      string    `json:"source,omitempty"`
	Rows        int       `json:"rows"`
	Columns     int       `json:"columns"`
	Fingerprint string    `json:"fingerprint,omitempty"`
}

// QualityReport aggregates the results of all quality checks.
// It is built fresh each run and never persisted between runs.
type QualityReport struct {
	Metadata ReportMetadata `json:"metadata"`

	// Dataset Summary
	Summary *SummaryTable `json:"summary,omitempty"`

	// Duplicate Records
	Duplicates *DuplicateResult `json:"duplicates,omitempty"`

	// Missing Data Visualization
	MissingChart *BarChart `json:"missing_chart,omitempty"`

	// Data Type Consistency Check
	TypeIssues []string `json:"type_issues"`

	// Missing Values in Columns Check
	MissingValues []string `json:"missing_values"`

	// Histograms holds optional distribution charts requested by the caller.
	// They are presentation extras and not report sections.
	Histograms []Histogram `json:"histograms,omitempty"`
}

// NewQualityReport creates an empty report with the given metadata.
func NewQualityReport(meta ReportMetadata) *QualityReport {
	return &QualityReport{
		Metadata:      meta,
		TypeIssues:    []string{},
		MissingValues: []string{},
	}
}

// Section is one named entry of a quality report.
type Section struct {
	Name  string
	Value any
}

// Sections returns the five report sections in report order.
// A section whose check has not run yet carries a nil value.
func (r *QualityReport) Sections() []Section {
	sections := []Section{
		{Name: SectionDatasetSummary},
		{Name: SectionDuplicates},
		{Name: SectionMissingChart},
		{Name: SectionTypeConsistency, Value: r.TypeIssues},
		{Name: SectionMissingValues, Value: r.MissingValues},
	}
	if r.Summary != nil {
		sections[0].Value = r.Summary
	}
	if r.Duplicates != nil {
		sections[1].Value = r.Duplicates
	}
	if r.MissingChart != nil {
		sections[2].Value = r.MissingChart
	}
	return sections
}

// IsClean reports whether the report found no duplicates, no type issues and no missing values.
func (r *QualityReport) IsClean() bool {
	if r.Duplicates != nil && r.Duplicates.Count > 0 {
		return false
	}
	if len(r.TypeIssues) > 0 {
		return false
	}
	if r.MissingChart != nil {
		for _, b := range r.MissingChart.Bars {
			if b.Value > 0 {
				return false
			}
		}
	}
	return true
}
