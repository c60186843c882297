package report

import (
	"io"

	"github.com/nao1215/jsrank/internal/model"
)

// Writer renders a Report to some destination.
type Writer interface {
	// Write outputs the report and returns the number of bytes written.
	Write(report *model.Report) (int, error)
}

// MultiWriter writes the same report through several Writers.
// It is used by the CLI to print the ranking to the terminal while a
// formatted copy goes to the --output file.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the report to all configured Writers.
// It stops on the first error.
func (m *MultiWriter) Write(report *model.Report) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(report)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter holds the destination shared by all writers.
type baseWriter struct {
	output io.Writer
}

func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// statusText describes how the run ended.
func statusText(report *model.Report) string {
	switch {
	case report.TimedOut:
		return "Cancelled (partial results)"
	case report.ErrorMessage != "":
		return "Error - " + report.ErrorMessage
	case report.PagesFailed() > 0:
		return "Complete with page errors"
	default:
		return "Complete"
	}
}

// truncateString shortens s to maxLen bytes, marking the cut with "...".
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
