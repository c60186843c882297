package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nao1215/jsrank/internal/model"
	"golang.org/x/sync/errgroup"
)

// defaultConcurrency is used when WithConcurrency is not given.
const defaultConcurrency = 8

// ScanFunc scans one page and returns the number of script references found.
type ScanFunc func(ctx context.Context, url string) (int, error)

// BatchProcessor scans many pages concurrently.
// It uses errgroup to manage goroutines and respect the concurrency limit.
type BatchProcessor struct {
	// scan is called once per URL.
	scan ScanFunc

	// concurrency is the maximum number of concurrent scans.
	concurrency int

	// logger is used for batch-level logging.
	logger *slog.Logger
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent scans.
// Non-positive values are ignored.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchProcessor creates a new BatchProcessor that calls scan for
// every URL it is given.
func NewBatchProcessor(scan ScanFunc, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		scan:        scan,
		concurrency: defaultConcurrency,
	}

	for _, opt := range opts {
		opt(bp)
	}

	if bp.logger == nil {
		bp.logger = slog.Default()
	}

	return bp
}

// ProcessBatch scans all urls and returns one result per URL, in input
// order. Failed scans are recorded in their PageResult and do not stop the
// others. Pages not scanned because ctx ended carry the context error, and
// ProcessBatch returns it.
func (bp *BatchProcessor) ProcessBatch(ctx context.Context, urls []string) ([]model.PageResult, error) {
	bp.logger.Info("starting batch processing",
		"pages", len(urls),
		"concurrency", bp.concurrency,
	)

	startTime := time.Now()

	// Each goroutine writes only its own index.
	results := make([]model.PageResult, len(urls))
	scanned := make([]bool, len(urls))

	err := bp.ProcessBatchWithCallback(ctx, urls, func(result model.PageResult, index int) {
		results[index] = result
		scanned[index] = true
	})

	for i, u := range urls {
		if !scanned[i] {
			results[i] = model.PageResult{URL: u, Error: fmt.Sprintf("not scanned: %v", err)}
		}
	}

	bp.logger.Info("batch processing complete",
		"pages", len(urls),
		"elapsed", time.Since(startTime),
	)

	return results, err
}

// ProcessBatchWithCallback scans all urls and calls callback for each
// completed scan with the result and the URL's index. The callback runs on
// the worker goroutine, so it must be safe for concurrent use unless every
// call touches distinct state.
func (bp *BatchProcessor) ProcessBatchWithCallback(
	ctx context.Context,
	urls []string,
	callback func(result model.PageResult, index int),
) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, u := range urls {
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			bp.logger.Debug("scanning page",
				"url", u,
				"index", i+1,
				"total", len(urls),
			)

			n, err := bp.scan(gctx, u)
			result := model.PageResult{URL: u, Scripts: n}
			if err != nil {
				bp.logger.Warn("page scan failed",
					"url", u,
					"error", err,
				)
				result.Error = err.Error()
			}

			callback(result, i)

			// A page failure is not a batch failure.
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	// The group context is always done after Wait; only the caller's
	// context says whether the batch was cut short.
	return ctx.Err()
}
