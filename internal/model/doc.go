// Package model defines the core data structures used throughout loanqa.
//
// This package contains the following main types:
//   - Table, Column, Cell: the column-oriented in-memory dataset
//   - Schema, ColumnSpec: the declared kind and domain of every column
//   - LoanApplication: one synthetic loan application record
//   - QualityReport: the result of the data-quality checks
//   - BarChart, Histogram: chart specifications rendered by the presentation layer
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. The generator, dataset, quality, pipeline, report and profile
// packages all use these types, so centralizing them prevents import cycles.
package model
