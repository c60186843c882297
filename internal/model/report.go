package model

import "time"

// Report is the result of one run: the search that was performed, the
// result pages that were visited, and the ranked script filenames.
type Report struct {
	// Query is the search term as entered by the user.
	Query string `json:"query"`

	// SearchURL is the search-results page that was fetched.
	SearchURL string `json:"search_url"`

	// DateScanned is the time the run started.
	DateScanned time.Time `json:"date_scanned"`

	// ResultURLs are the result links extracted from the search page,
	// in page order, duplicates included.
	ResultURLs []string `json:"result_urls"`

	// Pages holds one entry per scanned result URL, in the same order
	// as ResultURLs.
	Pages []PageResult `json:"pages"`

	// TopScripts is the ranking, highest count first.
	TopScripts []ScriptCount `json:"top_scripts"`

	// DistinctScripts is the number of distinct filenames observed.
	DistinctScripts int `json:"distinct_scripts"`

	// TotalOccurrences is the number of script references observed.
	TotalOccurrences int `json:"total_occurrences"`

	// PerformedSteps lists the pipeline steps that ran.
	PerformedSteps []string `json:"performed_steps,omitempty"`

	// Error is the last step error, if any. It is not serialized; see
	// ErrorMessage.
	Error error `json:"-"`

	// ErrorMessage is the text of Error.
	ErrorMessage string `json:"error,omitempty"`

	// TimedOut is set when the run was cancelled before finishing.
	TimedOut bool `json:"timed_out,omitempty"`
}

// NewReport creates an empty report for the given search term.
func NewReport(query string) *Report {
	return &Report{
		Query:       query,
		DateScanned: time.Now(),
		ResultURLs:  make([]string, 0),
		Pages:       make([]PageResult, 0),
		TopScripts:  make([]ScriptCount, 0),
	}
}

// SetError records a step failure on the report.
func (r *Report) SetError(err error) {
	r.Error = err
	if err != nil {
		r.ErrorMessage = err.Error()
	} else {
		r.ErrorMessage = ""
	}
}

// PagesScanned returns the number of result pages that were fetched and parsed.
func (r *Report) PagesScanned() int {
	n := 0
	for _, p := range r.Pages {
		if !p.Failed() {
			n++
		}
	}
	return n
}

// PagesFailed returns the number of result pages that could not be scanned.
func (r *Report) PagesFailed() int {
	return len(r.Pages) - r.PagesScanned()
}

// FailedPages returns the pages that could not be scanned, in order.
func (r *Report) FailedPages() []PageResult {
	failed := make([]PageResult, 0)
	for _, p := range r.Pages {
		if p.Failed() {
			failed = append(failed, p)
		}
	}
	return failed
}

// HasScripts reports whether any script filename was ranked.
func (r *Report) HasScripts() bool {
	return len(r.TopScripts) > 0
}

// PageResult is the outcome of scanning a single result page.
type PageResult struct {
	// URL is the result page address.
	URL string `json:"url"`

	// Scripts is the number of .js references found on the page.
	Scripts int `json:"scripts"`

	// Error describes why the page could not be scanned. Empty on success.
	Error string `json:"error,omitempty"`
}

// Failed reports whether the page could not be scanned.
func (p PageResult) Failed() bool {
	return p.Error != ""
}

// ScriptCount is a script filename and how many times it was referenced.
type ScriptCount struct {
	// Filename is the last path segment of the script source.
	Filename string `json:"filename"`

	// Count is the number of occurrences across all scanned pages.
	Count int `json:"count"`
}
