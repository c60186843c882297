package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/jsrank/internal/model"
	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// maxURLWidth limits URLs in the failed-page table.
const maxURLWidth = 80

// MarkdownWriter outputs reports as GitHub-flavored Markdown.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the report in Markdown format.
func (w *MarkdownWriter) Write(report *model.Report) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeSummary(md, report)
	w.writeRanking(md, report)
	w.writeFailures(md, report)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.Report) {
	md.H1("JavaScript Ranking: " + report.Query)
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Search Term", "`" + report.Query + "`"},
			{"Search URL", report.SearchURL},
			{"Scan Date", report.DateScanned.Format("2006-01-02 15:04:05 MST")},
			{"Status", statusText(report)},
			{"Steps", stepsText(report.PerformedSteps)},
		},
	})
	md.PlainText("")
}

// stepsText renders step names as a title-cased list, e.g. "Search, Scan, Rank".
func stepsText(steps []string) string {
	if len(steps) == 0 {
		return "-"
	}
	caser := cases.Title(language.English)
	titled := make([]string, len(steps))
	for i, s := range steps {
		titled[i] = caser.String(s)
	}
	return strings.Join(titled, ", ")
}

func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, report *model.Report) {
	md.H2("Summary")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Result Links", strconv.Itoa(len(report.ResultURLs))},
			{"Pages Scanned", strconv.Itoa(report.PagesScanned())},
			{"Pages Failed", strconv.Itoa(report.PagesFailed())},
			{"Script References", strconv.Itoa(report.TotalOccurrences)},
			{"Distinct Scripts", strconv.Itoa(report.DistinctScripts)},
		},
	})
	md.PlainText("")

	w.writeAlert(md, report)
}

// writeAlert picks one alert for the overall outcome of the run.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, report *model.Report) {
	switch {
	case report.TimedOut:
		md.Cautionf("The run was cancelled. Only %d of %d pages were scanned.",
			report.PagesScanned(), len(report.ResultURLs))
	case report.ErrorMessage != "":
		md.Warningf("The search failed: %s", report.ErrorMessage)
	case report.PagesFailed() > 0:
		md.Importantf("%d result page(s) could not be scanned.", report.PagesFailed())
	case !report.HasScripts():
		md.Note("No JavaScript files were referenced by the scanned pages.")
	default:
		md.Tip("All result pages were scanned.")
	}
	md.PlainText("")
}

func (w *MarkdownWriter) writeRanking(md *markdown.Markdown, report *model.Report) {
	md.H2("Top Scripts")
	md.PlainText("")

	if !report.HasScripts() {
		md.PlainText("No JavaScript files found.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(report.TopScripts))
	for i, sc := range report.TopScripts {
		rows[i] = []string{strconv.Itoa(i + 1), "`" + sc.Filename + "`", strconv.Itoa(sc.Count)}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Rank", "File", "Count"},
		Rows:   rows,
	})
	md.PlainText("")

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Script Occurrences"),
		piechart.WithShowData(true),
	)
	for _, sc := range report.TopScripts {
		chart.LabelAndIntValue(sc.Filename, uint64(sc.Count)) //nolint:gosec // counts are never negative
	}
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

func (w *MarkdownWriter) writeFailures(md *markdown.Markdown, report *model.Report) {
	failed := report.FailedPages()
	if len(failed) == 0 {
		return
	}

	md.H2("Failed Pages")
	md.PlainText("")

	items := make([]string, len(failed))
	for i, p := range failed {
		items[i] = truncateString(p.URL, maxURLWidth)
	}
	md.BulletList(items...)
	md.PlainText("")

	for _, p := range failed {
		md.Details(truncateString(p.URL, maxURLWidth), p.Error)
	}
	md.PlainText("")
}

func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [jsrank](https://github.com/nao1215/jsrank)*")
}
