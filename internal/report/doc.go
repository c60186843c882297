// Package report renders a model.Report.
//
// Three formats are available:
//   - SimpleWriter: the plain "fileName = <name> count = <n>" listing
//   - MarkdownWriter: a Markdown document with tables and a mermaid pie chart
//   - JSONWriter: the full report as JSON
//
// All of them implement Writer, and MultiWriter fans one report out to
// several of them.
package report
