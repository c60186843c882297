package pipeline

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/nao1215/jsrank/internal/model"
)

// mockStep is a test helper that implements the Step interface.
type mockStep struct {
	name      string
	doFunc    func(ctx context.Context, report *model.Report) error
	callCount int
}

// Do implements Step.Do.
func (m *mockStep) Do(ctx context.Context, report *model.Report) error {
	m.callCount++
	if m.doFunc != nil {
		return m.doFunc(ctx, report)
	}
	return nil
}

// Name implements Step.Name.
func (m *mockStep) Name() string {
	return m.name
}

// TestPipelineNew tests the Pipeline constructor.
func TestPipelineNew(t *testing.T) {
	t.Parallel()

	t.Run("creates pipeline with default settings", func(t *testing.T) {
		t.Parallel()

		p := New()
		if len(p.steps) != 0 {
			t.Errorf("expected 0 steps, got %d", len(p.steps))
		}
		if p.continueOnError {
			t.Error("expected continueOnError to default to false")
		}
		if p.logger == nil {
			t.Error("expected default logger")
		}
	})

	t.Run("applies WithContinueOnError option", func(t *testing.T) {
		t.Parallel()

		p := New(WithContinueOnError(true))
		if !p.continueOnError {
			t.Error("expected continueOnError to be true")
		}
	})

	t.Run("nil logger falls back to default", func(t *testing.T) {
		t.Parallel()

		p := New(WithLogger(nil))
		if p.logger == nil {
			t.Error("expected default logger")
		}
	})
}

// TestPipelineExecute tests pipeline execution.
func TestPipelineExecute(t *testing.T) {
	t.Parallel()

	t.Run("executes all steps in order", func(t *testing.T) {
		t.Parallel()

		executionOrder := make([]string, 0)
		record := func(name string) func(context.Context, *model.Report) error {
			return func(context.Context, *model.Report) error {
				executionOrder = append(executionOrder, name)
				return nil
			}
		}

		p := New(WithSteps(
			&mockStep{name: "step-1", doFunc: record("step-1")},
			&mockStep{name: "step-2", doFunc: record("step-2")},
		))

		report := model.NewReport("golang")
		if err := p.Execute(context.Background(), report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !slices.Equal(executionOrder, []string{"step-1", "step-2"}) {
			t.Errorf("wrong execution order: %v", executionOrder)
		}
		if !slices.Equal(report.PerformedSteps, []string{"step-1", "step-2"}) {
			t.Errorf("expected performed steps to be recorded, got %v", report.PerformedSteps)
		}
	})

	t.Run("stops on first error by default", func(t *testing.T) {
		t.Parallel()

		expectedErr := errors.New("step failed")
		second := &mockStep{name: "should-not-run"}

		p := New(WithSteps(
			&mockStep{
				name:   "failing-step",
				doFunc: func(context.Context, *model.Report) error { return expectedErr },
			},
			second,
		))

		report := model.NewReport("golang")
		err := p.Execute(context.Background(), report)

		if !errors.Is(err, expectedErr) {
			t.Errorf("expected error %v, got %v", expectedErr, err)
		}
		if second.callCount != 0 {
			t.Error("second step should not have been called")
		}
		if report.ErrorMessage != expectedErr.Error() {
			t.Errorf("expected error message %q, got %q", expectedErr.Error(), report.ErrorMessage)
		}
	})

	t.Run("continues on error when configured", func(t *testing.T) {
		t.Parallel()

		second := &mockStep{name: "should-run"}

		p := New(WithContinueOnError(true), WithSteps(
			&mockStep{
				name:   "failing-step",
				doFunc: func(context.Context, *model.Report) error { return errors.New("step failed") },
			},
			second,
		))

		report := model.NewReport("golang")
		if err := p.Execute(context.Background(), report); err != nil {
			t.Errorf("expected nil error with continueOnError, got %v", err)
		}
		if second.callCount != 1 {
			t.Error("second step should have been called")
		}
		if report.Error == nil {
			t.Error("expected error to be recorded in report")
		}
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		step := &mockStep{name: "should-not-run"}
		p := New(WithSteps(step))

		report := model.NewReport("golang")
		err := p.Execute(ctx, report)

		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
		if step.callCount != 0 {
			t.Error("step should not have been called")
		}
		if !report.TimedOut {
			t.Error("report.TimedOut should be true")
		}
	})

	t.Run("stops when a step is cancelled even if continuing on error", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		after := &mockStep{name: "after"}
		p := New(WithContinueOnError(true), WithSteps(
			&mockStep{
				name: "cancelling",
				doFunc: func(ctx context.Context, _ *model.Report) error {
					cancel()
					return ctx.Err()
				},
			},
			after,
		))

		report := model.NewReport("golang")
		err := p.Execute(ctx, report)

		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
		if after.callCount != 0 {
			t.Error("step after cancellation should not run")
		}
		if !report.TimedOut {
			t.Error("report.TimedOut should be true")
		}
	})
}

// TestWithSteps tests step registration.
func TestWithSteps(t *testing.T) {
	t.Parallel()

	t.Run("appends across options in order", func(t *testing.T) {
		t.Parallel()

		p := New(
			WithSteps(&mockStep{name: "alpha"}, &mockStep{name: "beta"}),
			WithSteps(&mockStep{name: "gamma"}),
		)

		names := make([]string, 0, len(p.steps))
		for _, s := range p.steps {
			names = append(names, s.Name())
		}
		if !slices.Equal(names, []string{"alpha", "beta", "gamma"}) {
			t.Errorf("unexpected names: %v", names)
		}
	})

	t.Run("failed step is still recorded as performed", func(t *testing.T) {
		t.Parallel()

		p := New(WithSteps(&mockStep{
			name:   "broken",
			doFunc: func(context.Context, *model.Report) error { return errors.New("boom") },
		}))

		report := model.NewReport("golang")
		_ = p.Execute(context.Background(), report)
		if !slices.Equal(report.PerformedSteps, []string{"broken"}) {
			t.Errorf("expected [broken], got %v", report.PerformedSteps)
		}
	})
}
