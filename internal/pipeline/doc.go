// Package pipeline provides a framework for executing quality checks in sequence.
//
// A data-quality run passes one loaded table through a fixed list of checks:
// dataset summary, duplicate records, missing-data visualization, type consistency
// and missing values in the demographic columns. Each check is implemented as a
// Step that reads the table and writes its section into the report.
//
// Design decision: We use a pipeline pattern instead of direct function calls
// because:
// 1. It allows easy addition/removal of checks without modifying core logic
// 2. It provides consistent error handling and logging across checks
// 3. It supports cancellation via context between checks
//
// The first failing step aborts the run. No partial report is returned.
package pipeline
