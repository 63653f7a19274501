// Package quality implements the data-quality checks run over a loan application table.
//
// Every check is a pure function of its inputs. None of them modifies the table, so
// the checks can run in any order and the same table can be checked repeatedly.
//
// The checks are:
//   - Summary: per-column descriptive statistics
//   - DuplicateRecords: exact full-row duplicates
//   - TypeConsistency: columns whose values do not share the declared kind
//   - MissingValues: missing-entry counts of the demographic columns
//   - MissingDataChart: missing percentage of every column as a bar chart
//   - Histogram: the distribution of one numeric column
//   - DomainViolations: values outside their enumeration, range or set
package quality
