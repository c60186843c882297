package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nao1215/jsrank/internal/model"
)

// TestBatchProcessorNew tests the BatchProcessor constructor.
func TestBatchProcessorNew(t *testing.T) {
	t.Parallel()

	noop := func(context.Context, string) (int, error) { return 0, nil }

	t.Run("creates processor with defaults", func(t *testing.T) {
		t.Parallel()

		bp := NewBatchProcessor(noop)
		if bp.concurrency != defaultConcurrency {
			t.Errorf("expected default concurrency %d, got %d", defaultConcurrency, bp.concurrency)
		}
		if bp.logger == nil {
			t.Error("expected non-nil logger")
		}
	})

	t.Run("applies WithConcurrency option", func(t *testing.T) {
		t.Parallel()

		if bp := NewBatchProcessor(noop, WithConcurrency(5)); bp.concurrency != 5 {
			t.Errorf("expected concurrency 5, got %d", bp.concurrency)
		}
	})

	t.Run("ignores non-positive concurrency", func(t *testing.T) {
		t.Parallel()

		if bp := NewBatchProcessor(noop, WithConcurrency(0)); bp.concurrency != defaultConcurrency {
			t.Errorf("expected concurrency %d, got %d", defaultConcurrency, bp.concurrency)
		}
	})

	t.Run("nil logger falls back to default", func(t *testing.T) {
		t.Parallel()

		if bp := NewBatchProcessor(noop, WithBatchLogger(nil)); bp.logger == nil {
			t.Error("expected non-nil logger")
		}
	})
}

// TestBatchProcessorProcessBatch tests batch processing.
func TestBatchProcessorProcessBatch(t *testing.T) {
	t.Parallel()

	t.Run("scans every page and keeps input order", func(t *testing.T) {
		t.Parallel()

		var scanned atomic.Int32
		bp := NewBatchProcessor(func(_ context.Context, url string) (int, error) {
			scanned.Add(1)
			return len(url), nil
		})

		urls := []string{"https://a.example/", "https://bb.example/", "https://ccc.example/"}
		results, err := bp.ProcessBatch(context.Background(), urls)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if scanned.Load() != 3 {
			t.Errorf("expected 3 scans, got %d", scanned.Load())
		}
		for i, r := range results {
			if r.URL != urls[i] {
				t.Errorf("result[%d]: got %q, expected %q", i, r.URL, urls[i])
			}
			if r.Scripts != len(urls[i]) {
				t.Errorf("result[%d]: expected %d scripts, got %d", i, len(urls[i]), r.Scripts)
			}
		}
	})

	t.Run("respects concurrency limit", func(t *testing.T) {
		t.Parallel()

		var current, peak atomic.Int32
		bp := NewBatchProcessor(func(context.Context, string) (int, error) {
			n := current.Add(1)
			for {
				old := peak.Load()
				if n <= old || peak.CompareAndSwap(old, n) {
					break
				}
			}
			time.Sleep(20 * time.Millisecond)
			current.Add(-1)
			return 0, nil
		}, WithConcurrency(2))

		urls := make([]string, 10)
		for i := range urls {
			urls[i] = fmt.Sprintf("https://example.com/%d", i)
		}

		if _, err := bp.ProcessBatch(context.Background(), urls); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if peak.Load() > 2 {
			t.Errorf("max concurrent was %d, expected <= 2", peak.Load())
		}
	})

	t.Run("continues after individual page failure", func(t *testing.T) {
		t.Parallel()

		bp := NewBatchProcessor(func(_ context.Context, url string) (int, error) {
			if strings.Contains(url, "fail") {
				return 0, errors.New("simulated fetch failure")
			}
			return 1, nil
		})

		urls := []string{"https://first.example/", "https://fail.example/", "https://third.example/"}
		results, err := bp.ProcessBatch(context.Background(), urls)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if results[1].Error == "" {
			t.Error("expected error in second result")
		}
		if results[0].Failed() || results[2].Failed() {
			t.Error("expected other pages to succeed")
		}
	})

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()

		results, err := NewBatchProcessor(func(context.Context, string) (int, error) {
			t.Error("scan should not be called")
			return 0, nil
		}).ProcessBatch(context.Background(), nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(results) != 0 {
			t.Errorf("expected no results, got %v", results)
		}
	})

	t.Run("handles context cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		var started atomic.Int32
		bp := NewBatchProcessor(func(ctx context.Context, _ string) (int, error) {
			started.Add(1)
			select {
			case <-ctx.Done():
				return 0, ctx.Err()
			case <-time.After(time.Second):
				return 0, nil
			}
		}, WithConcurrency(2))

		urls := make([]string, 10)
		for i := range urls {
			urls[i] = fmt.Sprintf("https://example.com/%d", i)
		}

		go func() {
			time.Sleep(50 * time.Millisecond)
			cancel()
		}()

		results, err := bp.ProcessBatch(ctx, urls)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
		if started.Load() >= int32(len(urls)) {
			t.Errorf("expected some pages to be skipped, %d started", started.Load())
		}
		if len(results) != len(urls) {
			t.Fatalf("expected %d results, got %d", len(urls), len(results))
		}
		for i, r := range results {
			if r.URL != urls[i] {
				t.Errorf("result[%d]: got URL %q", i, r.URL)
			}
			if !r.Failed() {
				t.Errorf("result[%d]: expected cancelled page to be marked failed", i)
			}
		}
	})
}

// TestProcessBatchWithCallback tests the streaming variant.
func TestProcessBatchWithCallback(t *testing.T) {
	t.Parallel()

	bp := NewBatchProcessor(func(context.Context, string) (int, error) { return 2, nil })

	var calls, total atomic.Int32
	err := bp.ProcessBatchWithCallback(context.Background(), []string{"a", "b", "c"}, func(result model.PageResult, _ int) {
		calls.Add(1)
		total.Add(int32(result.Scripts))
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls.Load() != 3 || total.Load() != 6 {
		t.Errorf("expected 3 calls totalling 6 scripts, got %d calls and %d", calls.Load(), total.Load())
	}
}
