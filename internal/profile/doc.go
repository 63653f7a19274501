// Package profile builds a descriptive profile of a whole table and renders it
// as a standalone artifact.
//
// A Profile is computed once by Build and handed to a Backend. Three backends
// ship with loanqa:
//   - HTMLBackend: a single self-contained HTML page with inline SVG charts
//   - XLSXBackend: an Excel workbook with one sheet per profile part
//   - MarkdownBackend: Markdown with mermaid charts
//
// Design decision: Computing the profile is separated from rendering it so
// that every backend shows the same numbers and new formats only need a
// renderer. WriteFile picks the backend from the output file extension.
package profile
