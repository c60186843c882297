package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nao1215/jsrank/internal/config"
	"github.com/nao1215/jsrank/internal/extract"
	"github.com/nao1215/jsrank/internal/fetcher"
	"github.com/nao1215/jsrank/internal/markup"
	"github.com/nao1215/jsrank/internal/model"
	"github.com/nao1215/jsrank/internal/tally"
)

// SearchStep fetches the search-results page for the report's query and
// stores the extracted result links in the report.
type SearchStep struct {
	// fetcher retrieves the search page.
	fetcher fetcher.Fetcher

	// pageURL builds the search-results URL for a term.
	pageURL func(term string) string

	extractor *extract.Extractor
	logger    *slog.Logger
}

// SearchStepOption configures a SearchStep.
type SearchStepOption func(*SearchStep)

// WithSearchLogger sets a custom logger for the search step.
func WithSearchLogger(logger *slog.Logger) SearchStepOption {
	return func(s *SearchStep) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSearchStep creates a search step. pageURL maps the query term to the
// address of the search-results page.
func NewSearchStep(f fetcher.Fetcher, pageURL func(term string) string, opts ...SearchStepOption) *SearchStep {
	s := &SearchStep{
		fetcher: f,
		pageURL: pageURL,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.extractor = extract.New(extract.WithLogger(s.logger))
	return s
}

// Name returns the step name.
func (s *SearchStep) Name() string {
	return "search"
}

// Do executes the search step. A page that cannot be parsed yields zero
// links; only a failed fetch is an error.
func (s *SearchStep) Do(ctx context.Context, report *model.Report) error {
	report.SearchURL = s.pageURL(report.Query)

	body, err := s.fetcher.Fetch(ctx, report.SearchURL)
	if err != nil {
		return fmt.Errorf("failed to fetch search page: %w", err)
	}

	root, err := markup.Parse(body)
	if err != nil {
		s.logger.Warn("search page is not parseable",
			"url", report.SearchURL,
			"error", err,
		)
		return nil
	}

	report.ResultURLs = s.extractor.ResultLinks(root.All())

	s.logger.Info("search results extracted",
		"url", report.SearchURL,
		"results", len(report.ResultURLs),
	)

	return nil
}

// ScanStep fetches every result page and counts the script filenames they
// reference.
type ScanStep struct {
	// fetcher retrieves result pages. It is shared by all workers.
	fetcher fetcher.Fetcher

	// aggregator receives every script filename found.
	aggregator *tally.Aggregator

	// concurrency is the maximum number of pages fetched at once.
	concurrency int

	extractor *extract.Extractor
	logger    *slog.Logger
}

// ScanStepOption configures a ScanStep.
type ScanStepOption func(*ScanStep)

// WithScanConcurrency sets the maximum number of concurrent page scans.
func WithScanConcurrency(n int) ScanStepOption {
	return func(s *ScanStep) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// WithScanLogger sets a custom logger for the scan step.
func WithScanLogger(logger *slog.Logger) ScanStepOption {
	return func(s *ScanStep) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewScanStep creates a scan step that adds to agg.
func NewScanStep(f fetcher.Fetcher, agg *tally.Aggregator, opts ...ScanStepOption) *ScanStep {
	s := &ScanStep{
		fetcher:     f,
		aggregator:  agg,
		concurrency: config.DefaultConcurrency,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.extractor = extract.New(extract.WithLogger(s.logger))
	return s
}

// Name returns the step name.
func (s *ScanStep) Name() string {
	return "scan"
}

// Do executes the scan step. It returns an error only when ctx ended
// before every page was scanned.
func (s *ScanStep) Do(ctx context.Context, report *model.Report) error {
	bp := NewBatchProcessor(s.scanPage,
		WithConcurrency(s.concurrency),
		WithBatchLogger(s.logger),
	)

	pages, err := bp.ProcessBatch(ctx, report.ResultURLs)
	report.Pages = pages
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			report.TimedOut = true
		}
		return fmt.Errorf("page scan interrupted: %w", err)
	}

	return nil
}

// scanPage fetches one result page and adds its script filenames to the
// aggregator. A page that cannot be parsed contributes nothing.
func (s *ScanStep) scanPage(ctx context.Context, url string) (int, error) {
	body, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return 0, err
	}

	root, err := markup.Parse(body)
	if err != nil {
		s.logger.Debug("page is not parseable", "url", url, "error", err)
		return 0, nil
	}

	refs := s.extractor.ScriptRefs(root.All())
	s.aggregator.Add(refs)

	return len(refs), nil
}

// RankStep copies the highest-counted script filenames into the report.
type RankStep struct {
	aggregator *tally.Aggregator

	// top is the number of entries reported.
	top int
}

// NewRankStep creates a rank step reporting the top entries of agg.
func NewRankStep(agg *tally.Aggregator, top int) *RankStep {
	return &RankStep{aggregator: agg, top: top}
}

// Name returns the step name.
func (s *RankStep) Name() string {
	return "rank"
}

// Do executes the rank step.
func (s *RankStep) Do(_ context.Context, report *model.Report) error {
	report.TopScripts = s.aggregator.TopN(s.top)
	report.DistinctScripts = s.aggregator.Len()
	report.TotalOccurrences = s.aggregator.Total()
	return nil
}

// DefaultPipeline creates the search, scan and rank pipeline for cfg.
// The steps share one aggregator. The pipeline continues past a failed
// search so the report is always ranked.
func DefaultPipeline(f fetcher.Fetcher, cfg *config.Config, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}

	agg := tally.New()
	return New(
		WithLogger(logger),
		WithContinueOnError(true),
		WithSteps(
			NewSearchStep(f, cfg.SearchPageURL, WithSearchLogger(logger)),
			NewScanStep(f, agg,
				WithScanConcurrency(cfg.Concurrency),
				WithScanLogger(logger),
			),
			NewRankStep(agg, cfg.Top),
		),
	)
}
