package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/jsrank/internal/model"
)

// SimpleWriter prints the ranking as plain text, one line per script in
// the form "fileName = <name> count = <n>".
type SimpleWriter struct {
	baseWriter

	// verbose adds a header block and the list of failed pages.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables the header block and failed-page list.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the report.
func (w *SimpleWriter) Write(report *model.Report) (int, error) {
	var sb strings.Builder

	if w.verbose {
		w.writeHeader(&sb, report)
	}
	w.writeSummary(&sb, report)
	w.writeRanking(&sb, report)
	if w.verbose {
		w.writeFailures(&sb, report)
	}

	return io.WriteString(w.output, sb.String())
}

func (w *SimpleWriter) writeHeader(sb *strings.Builder, report *model.Report) {
	sb.WriteString(strings.Repeat("=", 60))
	sb.WriteString("\n")
	fmt.Fprintf(sb, "Query:        %s\n", report.Query)
	fmt.Fprintf(sb, "Search URL:   %s\n", report.SearchURL)
	fmt.Fprintf(sb, "Scan Date:    %s\n", report.DateScanned.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(sb, "Status:       %s\n", statusText(report))
	sb.WriteString(strings.Repeat("=", 60))
	sb.WriteString("\n")
}

// writeSummary writes the one-line summary that precedes the ranking.
func (w *SimpleWriter) writeSummary(sb *strings.Builder, report *model.Report) {
	fmt.Fprintf(sb, "Scanned %d of %d result pages, %d script references, %d distinct files\n",
		report.PagesScanned(), len(report.ResultURLs), report.TotalOccurrences, report.DistinctScripts)
}

func (w *SimpleWriter) writeRanking(sb *strings.Builder, report *model.Report) {
	if !report.HasScripts() {
		sb.WriteString("No JavaScript files found.\n")
		return
	}
	for _, sc := range report.TopScripts {
		fmt.Fprintf(sb, "fileName = %s count = %d\n", sc.Filename, sc.Count)
	}
}

func (w *SimpleWriter) writeFailures(sb *strings.Builder, report *model.Report) {
	failed := report.FailedPages()
	if len(failed) == 0 {
		return
	}
	sb.WriteString(strings.Repeat("-", 60))
	sb.WriteString("\n")
	fmt.Fprintf(sb, "Failed pages (%d):\n", len(failed))
	for _, p := range failed {
		fmt.Fprintf(sb, "  %s: %s\n", p.URL, p.Error)
	}
}
