// Package report renders a model.QualityReport for people and tools.
//
// Three writers share the Writer interface:
//   - SimpleWriter prints the title, run information and each section under
//     its label, with tables for the summary and duplicate rows and ASCII bars
//     for the missing-data chart
//   - MarkdownWriter emits GitHub Flavored Markdown with alerts, tables and
//     mermaid charts
//   - JSONWriter emits the sections as one object keyed by section name
//
// MultiWriter sends one report to several writers, for example the console
// and a report file in another format.
package report
